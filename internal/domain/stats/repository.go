package stats

import "context"

// Repository exposes match facts and scoring outcomes. Raw stat lines are
// written by the ingestion pipeline; this service only reads them and
// upserts the derived points.
type Repository interface {
	// ListFinishedMatches returns the finished fixtures of one matchday.
	ListFinishedMatches(ctx context.Context, season string, matchdayNumber int) ([]Match, error)

	// ListStatsByMatch returns every player stat line recorded for a match.
	ListStatsByMatch(ctx context.Context, matchID string) ([]PlayerMatchStats, error)

	// UpsertPoints stores a scoring outcome, replacing any previous row for
	// the same (player, match) pair.
	UpsertPoints(ctx context.Context, points PlayerMatchPoints) error

	// GetPoints returns the stored outcome for one (player, match) pair.
	GetPoints(ctx context.Context, playerID, matchID string) (*PlayerMatchPoints, error)

	// ListPointsByMatchday returns every stored outcome for the matchday,
	// keyed by player ID and summed across that player's matches.
	ListPointsByMatchday(ctx context.Context, season string, matchdayNumber int) (map[string]int, error)
}
