package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/cache"
)

// SquadService serves squad reads: detail with budget and formation state,
// league standings, and transfer history.
type SquadService struct {
	squadRepo    squad.Repository
	transferRepo transfer.Repository
	rules        squad.FormationRules
	cache        *cache.Store
}

func NewSquadService(squadRepo squad.Repository, transferRepo transfer.Repository) *SquadService {
	return &SquadService{
		squadRepo:    squadRepo,
		transferRepo: transferRepo,
		rules:        squad.DefaultFormationRules(),
	}
}

// SetCache enables short-TTL caching of the standings read. Standings are the
// hottest read and tolerate briefly stale ranks.
func (s *SquadService) SetCache(store *cache.Store) {
	s.cache = store
}

type SquadDetail struct {
	Squad           squad.Squad
	BudgetUsed      int64
	RemainingBudget int64
	Formation       squad.FormationCheck
}

func (s *SquadService) Get(ctx context.Context, leagueID, squadID string) (SquadDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Get")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	squadID = strings.TrimSpace(squadID)
	if leagueID == "" || squadID == "" {
		return SquadDetail{}, fmt.Errorf("%w: league id and squad id are required", ErrInvalidInput)
	}

	sq, found, err := s.squadRepo.GetLeagueSquad(ctx, leagueID, squadID)
	if err != nil {
		return SquadDetail{}, fmt.Errorf("get league squad: %w", err)
	}
	if !found {
		return SquadDetail{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, squadID, leagueID)
	}

	return SquadDetail{
		Squad:           sq,
		BudgetUsed:      sq.BudgetUsed(),
		RemainingBudget: sq.RemainingBudget(),
		Formation:       squad.ValidateFormation(sq.Members, s.rules),
	}, nil
}

// Standings lists a league's squads ordered by rank, points as tiebreaker.
func (s *SquadService) Standings(ctx context.Context, leagueID string) ([]squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Standings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if s.cache != nil {
		value, err := s.cache.GetOrLoad(ctx, "standings:"+leagueID, func(ctx context.Context) (any, error) {
			return s.loadStandings(ctx, leagueID)
		})
		if err != nil {
			return nil, err
		}
		return value.([]squad.Squad), nil
	}

	return s.loadStandings(ctx, leagueID)
}

func (s *SquadService) loadStandings(ctx context.Context, leagueID string) ([]squad.Squad, error) {
	squads, err := s.squadRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list squads by league: %w", err)
	}

	sort.SliceStable(squads, func(i, j int) bool {
		if squads[i].Rank != squads[j].Rank {
			if squads[i].Rank == 0 {
				return false
			}
			if squads[j].Rank == 0 {
				return true
			}
			return squads[i].Rank < squads[j].Rank
		}
		if squads[i].Points != squads[j].Points {
			return squads[i].Points > squads[j].Points
		}
		return squads[i].ID < squads[j].ID
	})
	return squads, nil
}

// History returns a squad's completed transfers, newest first.
func (s *SquadService) History(ctx context.Context, leagueID, squadID string) ([]transfer.History, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.History")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	squadID = strings.TrimSpace(squadID)
	if leagueID == "" || squadID == "" {
		return nil, fmt.Errorf("%w: league id and squad id are required", ErrInvalidInput)
	}

	rows, err := s.transferRepo.ListHistoryBySquad(ctx, leagueID, squadID)
	if err != nil {
		return nil, fmt.Errorf("list transfer history: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}
