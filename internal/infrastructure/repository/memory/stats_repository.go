package memory

import (
	"context"
	"sort"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
)

type StatsRepository struct {
	store *Store
}

func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

func (r *StatsRepository) ListFinishedMatches(_ context.Context, season string, matchdayNumber int) ([]stats.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]stats.Match, 0)
	for _, m := range r.store.matches {
		if m.Season == season && m.MatchdayNumber == matchdayNumber && m.IsFinished() {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StatsRepository) ListStatsByMatch(_ context.Context, matchID string) ([]stats.PlayerMatchStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := r.store.statLines[matchID]
	return append([]stats.PlayerMatchStats(nil), lines...), nil
}

func (r *StatsRepository) UpsertPoints(_ context.Context, points stats.PlayerMatchPoints) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.points[pointsKey(points.PlayerID, points.MatchID)] = points
	return nil
}

func (r *StatsRepository) GetPoints(_ context.Context, playerID, matchID string) (*stats.PlayerMatchPoints, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	points, ok := r.store.points[pointsKey(playerID, matchID)]
	if !ok {
		return nil, nil
	}
	copied := points
	return &copied, nil
}

func (r *StatsRepository) ListPointsByMatchday(_ context.Context, season string, matchdayNumber int) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matchIDs := make(map[string]struct{})
	for _, m := range r.store.matches {
		if m.Season == season && m.MatchdayNumber == matchdayNumber {
			matchIDs[m.ID] = struct{}{}
		}
	}

	out := make(map[string]int)
	for _, points := range r.store.points {
		if _, ok := matchIDs[points.MatchID]; ok {
			out[points.PlayerID] += points.TotalPoints
		}
	}
	return out, nil
}
