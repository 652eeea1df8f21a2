package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/scoring"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/logging"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/resilience"
)

const defaultPointsWorkerCount = 8

// SummaryPublisher receives the outcome of a completed processing run.
// Publishing is best-effort: failures are logged, never propagated.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, summary ProcessingSummary) error
}

// PointsService turns raw match statistics into player and squad points for
// one matchday. Runs are idempotent: player points upsert on (player, match)
// and squad totals are recomputed from per-matchday rows, so re-running a
// round never double-counts.
type PointsService struct {
	matchdayRepo matchday.Repository
	playerRepo   player.Repository
	squadRepo    squad.Repository
	statsRepo    stats.Repository
	rules        scoring.RuleTable
	publisher    SummaryPublisher
	logger       *logging.Logger
	flight       resilience.SingleFlight
	workerCount  int
	now          func() time.Time
}

func NewPointsService(
	matchdayRepo matchday.Repository,
	playerRepo player.Repository,
	squadRepo squad.Repository,
	statsRepo stats.Repository,
	rules scoring.RuleTable,
	publisher SummaryPublisher,
	logger *logging.Logger,
) *PointsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PointsService{
		matchdayRepo: matchdayRepo,
		playerRepo:   playerRepo,
		squadRepo:    squadRepo,
		statsRepo:    statsRepo,
		rules:        rules,
		publisher:    publisher,
		logger:       logger,
		workerCount:  defaultPointsWorkerCount,
		now:          time.Now,
	}
}

// SetWorkerCount overrides the fan-out width used when scoring players.
// Values below 1 are ignored.
func (s *PointsService) SetWorkerCount(n int) {
	if n >= 1 {
		s.workerCount = n
	}
}

// ProcessingSummary reports one processing run. Errors carries every per-item
// failure; the run keeps going past them.
type ProcessingSummary struct {
	LeagueID         string    `json:"league_id"`
	Season           string    `json:"season"`
	MatchdayNumber   int       `json:"matchday_number"`
	MatchesProcessed int       `json:"matches_processed"`
	StatsProcessed   int       `json:"stats_processed"`
	PointsCalculated int       `json:"points_calculated"`
	SquadsUpdated    int       `json:"squads_updated"`
	Errors           []string  `json:"errors,omitempty"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}

// ProcessMatchday scores a completed matchday for one league. Concurrent calls
// for the same round share a single run through single-flight.
func (s *PointsService) ProcessMatchday(ctx context.Context, leagueID, season string, number int) (ProcessingSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ProcessMatchday")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	season = strings.TrimSpace(season)
	if leagueID == "" || season == "" {
		return ProcessingSummary{}, fmt.Errorf("%w: league id and season are required", ErrInvalidInput)
	}
	if number <= 0 {
		return ProcessingSummary{}, fmt.Errorf("%w: matchday number must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("points:%s:%s:%d", leagueID, season, number)
	value, err, shared := s.flight.Do(key, func() (any, error) {
		return s.processOnce(ctx, leagueID, season, number)
	})
	if err != nil {
		return ProcessingSummary{}, err
	}
	summary, ok := value.(ProcessingSummary)
	if !ok {
		return ProcessingSummary{}, fmt.Errorf("unexpected processing result type")
	}
	if shared {
		s.logger.InfoContext(ctx, "points processing deduplicated", "league_id", leagueID, "matchday", number)
	}
	return summary, nil
}

func (s *PointsService) processOnce(ctx context.Context, leagueID, season string, number int) (ProcessingSummary, error) {
	summary := ProcessingSummary{
		LeagueID:       leagueID,
		Season:         season,
		MatchdayNumber: number,
		Errors:         []string{},
		StartedAt:      s.now().UTC(),
	}

	md, found, err := s.matchdayRepo.GetByNumber(ctx, season, number)
	if err != nil {
		return ProcessingSummary{}, fmt.Errorf("get matchday: %w", err)
	}
	if !found {
		return ProcessingSummary{}, fmt.Errorf("%w: matchday %d not found in season %s", ErrNotFound, number, season)
	}

	matches, err := s.statsRepo.ListFinishedMatches(ctx, season, number)
	if err != nil {
		return ProcessingSummary{}, fmt.Errorf("list finished matches: %w", err)
	}
	summary.MatchesProcessed = len(matches)

	squads, err := s.squadRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return ProcessingSummary{}, fmt.Errorf("list squads by league: %w", err)
	}

	ownedIDs := make([]string, 0)
	ownedSet := make(map[string]struct{})
	for _, sq := range squads {
		for _, m := range sq.Members {
			if _, seen := ownedSet[m.PlayerID]; seen {
				continue
			}
			ownedSet[m.PlayerID] = struct{}{}
			ownedIDs = append(ownedIDs, m.PlayerID)
		}
	}

	playersByID := make(map[string]player.Player, len(ownedIDs))
	if len(ownedIDs) > 0 {
		players, err := s.playerRepo.GetByIDs(ctx, ownedIDs)
		if err != nil {
			return ProcessingSummary{}, fmt.Errorf("get owned players: %w", err)
		}
		for _, p := range players {
			playersByID[p.ID] = p
		}
	}

	for _, match := range matches {
		lines, err := s.statsRepo.ListStatsByMatch(ctx, match.ID)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("match %s: list stats: %v", match.ID, err))
			continue
		}

		for _, line := range lines {
			p, owned := playersByID[line.PlayerID]
			if !owned {
				continue
			}
			summary.StatsProcessed++

			conceded, played := match.GoalsConcededBy(p.Team)
			if !played {
				conceded = 0
			}
			breakdown := scoring.ComputePoints(s.rules, line, p.Position, conceded)

			if err := s.statsRepo.UpsertPoints(ctx, stats.PlayerMatchPoints{
				PlayerID:     line.PlayerID,
				MatchID:      match.ID,
				Breakdown:    breakdown.Categories,
				TotalPoints:  breakdown.Total,
				CalculatedAt: s.now().UTC(),
			}); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("player %s match %s: upsert points: %v", line.PlayerID, match.ID, err))
				continue
			}
			summary.PointsCalculated++
		}
	}

	pointsByPlayer, err := s.statsRepo.ListPointsByMatchday(ctx, season, number)
	if err != nil {
		return ProcessingSummary{}, fmt.Errorf("list points by matchday: %w", err)
	}

	updated, squadErrors, err := s.updateSquadPoints(ctx, leagueID, number, squads, pointsByPlayer)
	if err != nil {
		return ProcessingSummary{}, err
	}
	summary.SquadsUpdated = updated
	summary.Errors = append(summary.Errors, squadErrors...)

	if len(squads) > 0 {
		if err := s.squadRepo.UpdateRanks(ctx, leagueID); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("update ranks: %v", err))
		}
	}

	if err := s.matchdayRepo.MarkPointsCalculated(ctx, md.ID); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("mark matchday calculated: %v", err))
	}

	summary.FinishedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "matchday points processed",
		"league_id", leagueID,
		"matchday", number,
		"stats_processed", summary.StatsProcessed,
		"points_calculated", summary.PointsCalculated,
		"squads_updated", summary.SquadsUpdated,
		"errors", len(summary.Errors),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishSummary(ctx, summary); err != nil {
			s.logger.WarnContext(ctx, "publish processing summary failed", "error", err)
		}
	}

	return summary, nil
}

// SquadMatchdayPoints sums a squad's member points for the round, counting the
// captain twice.
func SquadMatchdayPoints(sq squad.Squad, pointsByPlayer map[string]int) int {
	total := 0
	for _, m := range sq.Members {
		points := pointsByPlayer[m.PlayerID]
		total += points
		if m.IsCaptain {
			total += points
		}
	}
	return total
}

func (s *PointsService) updateSquadPoints(
	ctx context.Context,
	leagueID string,
	number int,
	squads []squad.Squad,
	pointsByPlayer map[string]int,
) (int, []string, error) {
	if len(squads) == 0 {
		return 0, nil, nil
	}

	workerCount := s.workerCount
	if workerCount < 1 {
		workerCount = 1
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return 0, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	updated := 0
	errs := make([]string, 0)

	var workers sync.WaitGroup
	for _, sq := range squads {
		sq := sq
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			total := SquadMatchdayPoints(sq, pointsByPlayer)
			if err := s.squadRepo.SetMatchdayPoints(ctx, leagueID, sq.ID, number, total); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("squad %s: set matchday points: %v", sq.ID, err))
				mu.Unlock()
				return
			}
			mu.Lock()
			updated++
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return 0, nil, fmt.Errorf("submit squad to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.Strings(errs)
	return updated, errs, nil
}

// MatchdayPlayerPoints returns every player's summed points for one round.
func (s *PointsService) MatchdayPlayerPoints(ctx context.Context, season string, number int) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.MatchdayPlayerPoints")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if number <= 0 {
		return nil, fmt.Errorf("%w: matchday number must be greater than zero", ErrInvalidInput)
	}

	points, err := s.statsRepo.ListPointsByMatchday(ctx, season, number)
	if err != nil {
		return nil, fmt.Errorf("list points by matchday: %w", err)
	}
	return points, nil
}

// PlayerMatchBreakdown returns the stored per-category scoring outcome for
// one (player, match) pair.
func (s *PointsService) PlayerMatchBreakdown(ctx context.Context, playerID, matchID string) (stats.PlayerMatchPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.PlayerMatchBreakdown")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	matchID = strings.TrimSpace(matchID)
	if playerID == "" || matchID == "" {
		return stats.PlayerMatchPoints{}, fmt.Errorf("%w: player id and match id are required", ErrInvalidInput)
	}

	points, err := s.statsRepo.GetPoints(ctx, playerID, matchID)
	if err != nil {
		return stats.PlayerMatchPoints{}, fmt.Errorf("get player match points: %w", err)
	}
	if points == nil {
		return stats.PlayerMatchPoints{}, fmt.Errorf("%w: no points stored for player %s in match %s", ErrNotFound, playerID, matchID)
	}
	return *points, nil
}
