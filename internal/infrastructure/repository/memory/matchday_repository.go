package memory

import (
	"context"
	"sort"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
)

type MatchdayRepository struct {
	store *Store
}

func NewMatchdayRepository(store *Store) *MatchdayRepository {
	return &MatchdayRepository{store: store}
}

func (r *MatchdayRepository) GetByNumber(_ context.Context, season string, number int) (matchday.Matchday, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, md := range r.store.matchdays {
		if md.Season == season && md.Number == number {
			return md, true, nil
		}
	}
	return matchday.Matchday{}, false, nil
}

func (r *MatchdayRepository) GetActive(_ context.Context) (matchday.Matchday, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, md := range r.store.matchdays {
		if md.IsActive {
			return md, true, nil
		}
	}
	return matchday.Matchday{}, false, nil
}

func (r *MatchdayRepository) GetNextUnfinished(_ context.Context) (matchday.Matchday, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	candidates := make([]matchday.Matchday, 0)
	for _, md := range r.store.matchdays {
		if !md.IsFinished {
			candidates = append(candidates, md)
		}
	}
	if len(candidates) == 0 {
		return matchday.Matchday{}, false, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartDate.Before(candidates[j].StartDate)
	})
	return candidates[0], true, nil
}

func (r *MatchdayRepository) ListBySeason(_ context.Context, season string) ([]matchday.Matchday, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]matchday.Matchday, 0)
	for _, md := range r.store.matchdays {
		if md.Season == season {
			out = append(out, md)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *MatchdayRepository) SetStatus(_ context.Context, matchdayID string, active, finished bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	md, ok := r.store.matchdays[matchdayID]
	if !ok {
		return nil
	}
	md.IsActive = active
	md.IsFinished = finished
	r.store.matchdays[matchdayID] = md
	return nil
}

func (r *MatchdayRepository) MarkPointsCalculated(_ context.Context, matchdayID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	md, ok := r.store.matchdays[matchdayID]
	if !ok {
		return nil
	}
	md.PointsCalculated = true
	r.store.matchdays[matchdayID] = md
	return nil
}
