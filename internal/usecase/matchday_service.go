package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
)

// MatchdayService answers "are transfers open right now" and keeps the
// date-driven active/finished flags current.
type MatchdayService struct {
	matchdayRepo matchday.Repository
	now          func() time.Time
}

func NewMatchdayService(matchdayRepo matchday.Repository) *MatchdayService {
	return &MatchdayService{
		matchdayRepo: matchdayRepo,
		now:          time.Now,
	}
}

type MatchdayStatus struct {
	Matchday      matchday.Matchday
	TransfersOpen bool
	Countdown     string
}

type MatchdayStatusChange struct {
	Number      int
	WasActive   bool
	NowActive   bool
	WasFinished bool
	NowFinished bool
}

func (s *MatchdayService) Status(ctx context.Context, season string, number int) (MatchdayStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Status")
	defer span.End()

	if season == "" {
		return MatchdayStatus{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if number <= 0 {
		return MatchdayStatus{}, fmt.Errorf("%w: matchday number must be greater than zero", ErrInvalidInput)
	}

	md, found, err := s.matchdayRepo.GetByNumber(ctx, season, number)
	if err != nil {
		return MatchdayStatus{}, fmt.Errorf("get matchday by number: %w", err)
	}
	if !found {
		return MatchdayStatus{}, fmt.Errorf("%w: matchday %d not found in season %s", ErrNotFound, number, season)
	}

	return s.statusOf(md), nil
}

// CurrentWindow returns the matchday whose transfer window governs actions
// taken now: the active matchday if there is one, otherwise the next
// unfinished one.
func (s *MatchdayService) CurrentWindow(ctx context.Context) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.CurrentWindow")
	defer span.End()

	md, found, err := s.matchdayRepo.GetActive(ctx)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get active matchday: %w", err)
	}
	if found {
		return md, nil
	}

	md, found, err = s.matchdayRepo.GetNextUnfinished(ctx)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get next unfinished matchday: %w", err)
	}
	if !found {
		return matchday.Matchday{}, fmt.Errorf("%w: no current matchday", ErrNotFound)
	}
	return md, nil
}

// CurrentStatus reports the governing window together with its lock state and
// countdown.
func (s *MatchdayService) CurrentStatus(ctx context.Context) (MatchdayStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.CurrentStatus")
	defer span.End()

	md, err := s.CurrentWindow(ctx)
	if err != nil {
		return MatchdayStatus{}, err
	}
	return s.statusOf(md), nil
}

// RefreshStatuses applies the date-driven transitions for a season: a matchday
// is active while now falls inside [start, end] and finished once now has
// passed its end date. Returns the matchdays whose flags changed.
func (s *MatchdayService) RefreshStatuses(ctx context.Context, season string) ([]MatchdayStatusChange, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.RefreshStatuses")
	defer span.End()

	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	matchdays, err := s.matchdayRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list matchdays by season: %w", err)
	}

	now := s.now().UTC()
	changes := make([]MatchdayStatusChange, 0)
	for _, md := range matchdays {
		wantActive := !now.Before(md.StartDate.UTC()) && !now.After(md.EndDate.UTC())
		wantFinished := now.After(md.EndDate.UTC())

		if md.IsActive == wantActive && md.IsFinished == wantFinished {
			continue
		}
		if err := s.matchdayRepo.SetStatus(ctx, md.ID, wantActive, wantFinished); err != nil {
			return nil, fmt.Errorf("set matchday status number=%d: %w", md.Number, err)
		}
		changes = append(changes, MatchdayStatusChange{
			Number:      md.Number,
			WasActive:   md.IsActive,
			NowActive:   wantActive,
			WasFinished: md.IsFinished,
			NowFinished: wantFinished,
		})
	}

	return changes, nil
}

func (s *MatchdayService) statusOf(md matchday.Matchday) MatchdayStatus {
	now := s.now()
	return MatchdayStatus{
		Matchday:      md,
		TransfersOpen: !md.Locked(now),
		Countdown:     md.TimeUntilDeadline(now),
	}
}
