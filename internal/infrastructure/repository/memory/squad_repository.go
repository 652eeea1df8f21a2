package memory

import (
	"context"
	"sort"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
)

type SquadRepository struct {
	store *Store
}

func NewSquadRepository(store *Store) *SquadRepository {
	return &SquadRepository{store: store}
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (squad.Squad, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sq, ok := r.store.squads[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	return cloneSquad(sq), true, nil
}

func (r *SquadRepository) GetUserSquad(_ context.Context, userID string) (squad.Squad, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, sq := range r.store.squads {
		if sq.UserID == userID && sq.LeagueID == "" {
			return cloneSquad(sq), true, nil
		}
	}
	return squad.Squad{}, false, nil
}

func (r *SquadRepository) GetLeagueSquad(_ context.Context, leagueID, squadID string) (squad.Squad, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sq, ok := r.store.squads[squadID]
	if !ok || sq.LeagueID != leagueID {
		return squad.Squad{}, false, nil
	}
	return cloneSquad(sq), true, nil
}

func (r *SquadRepository) ListByLeague(_ context.Context, leagueID string) ([]squad.Squad, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]squad.Squad, 0)
	for _, sq := range r.store.squads {
		if sq.LeagueID == leagueID {
			out = append(out, cloneSquad(sq))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SquadRepository) FindOwner(_ context.Context, leagueID, playerID string) (squad.Ownership, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	owner, found := findOwnerLocked(r.store, leagueID, playerID)
	return owner, found, nil
}

func (r *SquadRepository) ListOwnedPlayerIDs(_ context.Context, leagueID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]string, 0)
	for _, sq := range r.store.squads {
		if sq.LeagueID != leagueID {
			continue
		}
		for _, m := range sq.Members {
			out = append(out, m.PlayerID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *SquadRepository) SetMatchdayPoints(_ context.Context, leagueID, squadID string, matchdayNumber, points int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.squadPoints[squadPointsKey(leagueID, squadID, matchdayNumber)] = points
	r.store.recomputeSquadTotal(leagueID, squadID)
	return nil
}

func (r *SquadRepository) UpdateRanks(_ context.Context, leagueID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	squads := make([]squad.Squad, 0)
	for _, sq := range r.store.squads {
		if sq.LeagueID == leagueID {
			squads = append(squads, sq)
		}
	}
	sort.SliceStable(squads, func(i, j int) bool {
		if squads[i].Points != squads[j].Points {
			return squads[i].Points > squads[j].Points
		}
		return squads[i].ID < squads[j].ID
	})

	rank := 0
	lastPoints := 0
	for idx, sq := range squads {
		if idx == 0 || sq.Points != lastPoints {
			rank++
			lastPoints = sq.Points
		}
		sq.Rank = rank
		r.store.squads[sq.ID] = sq
	}
	return nil
}

// findOwnerLocked requires at least a read lock on the store.
func findOwnerLocked(s *Store, leagueID, playerID string) (squad.Ownership, bool) {
	for _, sq := range s.squads {
		if sq.LeagueID != leagueID {
			continue
		}
		if sq.HasPlayer(playerID) {
			return squad.Ownership{SquadID: sq.ID, SquadName: sq.Name}, true
		}
	}
	return squad.Ownership{}, false
}
