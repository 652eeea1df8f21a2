package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireUser_MissingHeader(t *testing.T) {
	called := false
	handler := RequireUser(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l/transfers", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected next handler not to be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRequireUser_PutsUserInContext(t *testing.T) {
	var gotUser string
	handler := RequireUser(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUser, _ = actingUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l/transfers", nil)
	req.Header.Set("X-User-ID", "user-alice")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if gotUser != "user-alice" {
		t.Fatalf("expected acting user user-alice, got %q", gotUser)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		provided   string
		wantCode   int
		wantNext   bool
	}{
		{name: "valid token", configured: "job-secret", provided: "job-secret", wantCode: http.StatusOK, wantNext: true},
		{name: "wrong token", configured: "job-secret", provided: "nope", wantCode: http.StatusForbidden},
		{name: "missing token", configured: "job-secret", provided: "", wantCode: http.StatusForbidden},
		{name: "unconfigured", configured: "", provided: "job-secret", wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := RequireInternalJobToken(tc.configured, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/points/process", nil)
			if tc.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tc.provided)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			if called != tc.wantNext {
				t.Fatalf("expected next called=%v, got %v", tc.wantNext, called)
			}
		})
	}
}
