package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmlarios/fantasy-football-tracker/internal/platform/logging"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/resilience"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

func TestWebhookPublisher_PublishSummary(t *testing.T) {
	var (
		gotAuth string
		gotBody string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL:       server.URL,
		AuthToken: "secret",
	}, logging.NewNop())

	err := publisher.PublishSummary(t.Context(), usecase.ProcessingSummary{
		LeagueID:         "league-1",
		Season:           "2025/2026",
		MatchdayNumber:   3,
		PointsCalculated: 12,
	})
	if err != nil {
		t.Fatalf("publish summary: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, "league-1") {
		t.Fatalf("expected league id in payload, got %s", gotBody)
	}
}

func TestWebhookPublisher_CircuitOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		URL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := publisher.PublishSummary(t.Context(), usecase.ProcessingSummary{}); err == nil {
			t.Fatalf("expected failure on attempt %d", i+1)
		}
	}
	err := publisher.PublishSummary(t.Context(), usecase.ProcessingSummary{})
	if err == nil || !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected circuit rejection, got %v", err)
	}
}

func TestWebhookPublisher_RejectsBadURL(t *testing.T) {
	publisher := NewWebhookPublisher(WebhookPublisherConfig{URL: "ftp://example.com"}, logging.NewNop())
	if err := publisher.PublishSummary(t.Context(), usecase.ProcessingSummary{}); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}
