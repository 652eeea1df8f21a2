package matchday

import "context"

// Repository exposes matchday reads and the status writes performed by the
// date-driven status refresh and the points processor.
type Repository interface {
	GetByNumber(ctx context.Context, season string, number int) (Matchday, bool, error)
	GetActive(ctx context.Context) (Matchday, bool, error)
	// GetNextUnfinished returns the earliest-starting matchday that has not
	// finished, used for offer expiry and transfer attribution.
	GetNextUnfinished(ctx context.Context) (Matchday, bool, error)
	ListBySeason(ctx context.Context, season string) ([]Matchday, error)

	SetStatus(ctx context.Context, matchdayID string, active, finished bool) error
	MarkPointsCalculated(ctx context.Context, matchdayID string) error
}
