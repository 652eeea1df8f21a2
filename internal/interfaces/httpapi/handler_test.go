package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/scoring"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/memory"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.SeedStore()
	playerRepo := memory.NewPlayerRepository(store)
	squadRepo := memory.NewSquadRepository(store)
	matchdayRepo := memory.NewMatchdayRepository(store)
	transferRepo := memory.NewTransferRepository(store)
	statsRepo := memory.NewStatsRepository(store)

	matchdaySvc := usecase.NewMatchdayService(matchdayRepo)
	freeAgentSvc := usecase.NewFreeAgentService(playerRepo, squadRepo, transferRepo, matchdaySvc)
	offerSvc := usecase.NewOfferService(squadRepo, transferRepo, transferRepo, matchdaySvc, id.NewRandomGenerator())
	pointsSvc := usecase.NewPointsService(matchdayRepo, playerRepo, squadRepo, statsRepo, scoring.DefaultRuleTable(), nil, nil)
	squadSvc := usecase.NewSquadService(squadRepo, transferRepo)

	handler := NewHandler(matchdaySvc, freeAgentSvc, offerSvc, pointsSvc, squadSvc, nil)
	return NewRouter(handler, nil, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := dataObject(t, body)["status"]; got != "ok" {
		t.Fatalf("expected status ok, got %v", got)
	}
}

func TestRouter_SquadDetail(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.SeedLeagueID+"/squads/lsq-alice", nil)
	rec, body := doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataObject(t, body)
	if got := data["budget_used"]; got != float64(513) {
		t.Fatalf("expected budget_used 513, got %v", got)
	}
	if got := data["remaining_budget"]; got != float64(487) {
		t.Fatalf("expected remaining_budget 487, got %v", got)
	}
}

func TestRouter_SquadDetail_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.SeedLeagueID+"/squads/lsq-ghost", nil)
	rec, body := doRequest(t, router, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if got := errObj["status"]; got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", got)
	}
}

func TestRouter_PlayerAvailability(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.SeedLeagueID+"/players/pl-mid-01/availability", nil)
	rec, body := doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if got := data["available"]; got != false {
		t.Fatalf("expected pl-mid-01 unavailable, got %v", got)
	}
	if got := data["owned_by"]; got != "Alice FC" {
		t.Fatalf("expected owner Alice FC, got %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.SeedLeagueID+"/players/pl-fwd-05/availability", nil)
	rec, body = doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := dataObject(t, body)["available"]; got != true {
		t.Fatalf("expected pl-fwd-05 available, got %v", got)
	}
}

func TestRouter_MatchdayStatusRequiresSeason(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/v1/matchdays/2", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without season, got %d", rec.Code)
	}

	target := "/v1/matchdays/2?season=" + url.QueryEscape(memory.SeedSeason)
	rec, body := doRequest(t, router, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataObject(t, body)
	if got := data["number"]; got != float64(2) {
		t.Fatalf("expected matchday number 2, got %v", got)
	}
}

func TestRouter_TransferRequiresUser(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"squad_id":"lsq-alice","player_in_id":"pl-fwd-05"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/"+memory.SeedLeagueID+"/transfers", strings.NewReader(payload))
	rec, _ := doRequest(t, router, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 without user header, got %d", rec.Code)
	}
}

func TestRouter_InternalPointsProcess(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"league_id":"` + memory.SeedLeagueID + `","season":"` + memory.SeedSeason + `","matchday_number":1}`

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/points/process", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", "wrong-token")
	rec, _ := doRequest(t, router, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for wrong token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/points/process", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec, body := doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataObject(t, body)
	if got := data["matches_processed"]; got != float64(1) {
		t.Fatalf("expected 1 match processed, got %v", got)
	}
	calculated, _ := data["points_calculated"].(float64)
	if calculated < 1 {
		t.Fatalf("expected points to be calculated, got %v", data["points_calculated"])
	}
}
