package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if p, ok := r.store.players[playerID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListActive(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]player.Player, 0)
	for _, p := range r.store.players {
		if !p.IsActive {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
