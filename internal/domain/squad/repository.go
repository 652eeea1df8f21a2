package squad

import "context"

// Ownership identifies the league squad currently holding a player.
type Ownership struct {
	SquadID   string
	SquadName string
}

// Repository exposes squad reads plus the points bookkeeping writes performed
// by the matchday processor. Transfer mutations go through transfer.Ledger so
// multi-squad changes stay atomic.
type Repository interface {
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	// GetUserSquad returns the user's persistent squad (the one with no
	// league attached).
	GetUserSquad(ctx context.Context, userID string) (Squad, bool, error)
	GetLeagueSquad(ctx context.Context, leagueID, squadID string) (Squad, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Squad, error)

	// FindOwner reports which league squad, if any, currently holds the player.
	FindOwner(ctx context.Context, leagueID, playerID string) (Ownership, bool, error)
	// ListOwnedPlayerIDs returns every player currently held by any squad in
	// the league, for free-agent catalog filtering.
	ListOwnedPlayerIDs(ctx context.Context, leagueID string) ([]string, error)

	// SetMatchdayPoints upserts the per-(squad, matchday) points row and
	// refreshes the squad's running total from all such rows, so re-running a
	// matchday never double-counts.
	SetMatchdayPoints(ctx context.Context, leagueID, squadID string, matchdayNumber, points int) error
	UpdateRanks(ctx context.Context, leagueID string) error
}
