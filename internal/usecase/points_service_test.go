package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/scoring"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/memory"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/logging"
)

type capturingPublisher struct {
	mu        sync.Mutex
	summaries []ProcessingSummary
}

func (p *capturingPublisher) PublishSummary(_ context.Context, summary ProcessingSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summaries = append(p.summaries, summary)
	return nil
}

func newPointsFixture(t *testing.T) (*PointsService, *memory.Store, *capturingPublisher) {
	t.Helper()

	store := memory.SeedStore()
	publisher := &capturingPublisher{}
	service := NewPointsService(
		memory.NewMatchdayRepository(store),
		memory.NewPlayerRepository(store),
		memory.NewSquadRepository(store),
		memory.NewStatsRepository(store),
		scoring.DefaultRuleTable(),
		publisher,
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC) }
	return service, store, publisher
}

func TestPointsService_ProcessMatchday(t *testing.T) {
	service, store, publisher := newPointsFixture(t)

	summary, err := service.ProcessMatchday(t.Context(), memory.SeedLeagueID, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("process matchday failed: %v", err)
	}

	if summary.MatchesProcessed != 1 {
		t.Fatalf("expected 1 match processed, got %d", summary.MatchesProcessed)
	}
	if summary.StatsProcessed != 6 || summary.PointsCalculated != 6 {
		t.Fatalf("expected 6 stat lines scored, got stats=%d points=%d", summary.StatsProcessed, summary.PointsCalculated)
	}
	if summary.SquadsUpdated != 2 {
		t.Fatalf("expected 2 squads updated, got %d", summary.SquadsUpdated)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", summary.Errors)
	}

	// Pedri: appearance 1 + goal 5 + assist 3 + mid clean sheet 1 = 10,
	// doubled as captain. Lewandowski: 1 + 4 + 1 = 6. Koundé: 1 + 4 + 2 = 7.
	squadRepo := memory.NewSquadRepository(store)
	alice, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-alice")
	if alice.Points != 33 {
		t.Fatalf("expected alice total 33, got %d", alice.Points)
	}

	// Courtois: 1 + saves 1 - conceded 1 = 1. Bellingham (captain): 1 - 1 = 0
	// doubled is still 0. Vinícius: 1 - 2 = -1.
	bruno, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-bruno")
	if bruno.Points != 0 {
		t.Fatalf("expected bruno total 0, got %d", bruno.Points)
	}

	if alice.Rank != 1 || bruno.Rank != 2 {
		t.Fatalf("expected ranks 1 and 2, got %d and %d", alice.Rank, bruno.Rank)
	}

	md, _, _ := memory.NewMatchdayRepository(store).GetByNumber(t.Context(), memory.SeedSeason, 1)
	if !md.PointsCalculated {
		t.Fatalf("expected matchday flagged as calculated")
	}

	publisher.mu.Lock()
	published := len(publisher.summaries)
	publisher.mu.Unlock()
	if published != 1 {
		t.Fatalf("expected 1 published summary, got %d", published)
	}
}

func TestPointsService_ProcessMatchday_Idempotent(t *testing.T) {
	service, store, _ := newPointsFixture(t)

	if _, err := service.ProcessMatchday(t.Context(), memory.SeedLeagueID, memory.SeedSeason, 1); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := service.ProcessMatchday(t.Context(), memory.SeedLeagueID, memory.SeedSeason, 1); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	alice, _, _ := memory.NewSquadRepository(store).GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-alice")
	if alice.Points != 33 {
		t.Fatalf("re-running a matchday must not double-count, got %d", alice.Points)
	}
}

func TestPointsService_ProcessMatchday_PlayerPointsBreakdown(t *testing.T) {
	service, store, _ := newPointsFixture(t)

	if _, err := service.ProcessMatchday(t.Context(), memory.SeedLeagueID, memory.SeedSeason, 1); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	statsRepo := memory.NewStatsRepository(store)
	points, err := statsRepo.GetPoints(t.Context(), "pl-mid-01", "match-001")
	if err != nil {
		t.Fatalf("get points: %v", err)
	}
	if points == nil || points.TotalPoints != 10 {
		t.Fatalf("expected Pedri on 10 points, got %+v", points)
	}
	if points.Breakdown[scoring.CategoryGoals] != 5 || points.Breakdown[scoring.CategoryCleanSheet] != 1 {
		t.Fatalf("unexpected breakdown: %v", points.Breakdown)
	}

	// Vinícius plays for the conceding side, so no clean sheet, and his
	// missed penalty costs two.
	points, err = statsRepo.GetPoints(t.Context(), "pl-fwd-02", "match-001")
	if err != nil {
		t.Fatalf("get points: %v", err)
	}
	if points == nil || points.TotalPoints != -1 {
		t.Fatalf("expected Vinícius on -1 points, got %+v", points)
	}
}

func TestPointsService_ProcessMatchday_UnknownMatchday(t *testing.T) {
	service, _, _ := newPointsFixture(t)

	if _, err := service.ProcessMatchday(t.Context(), memory.SeedLeagueID, memory.SeedSeason, 42); err == nil {
		t.Fatalf("expected error for unknown matchday")
	}
}
