package player

import "context"

// ListFilter narrows free-agent catalog queries.
type ListFilter struct {
	Position Position
	Search   string
	MinPrice *int64
	MaxPrice *int64
}

// Repository exposes player pool reads.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListActive(ctx context.Context, filter ListFilter) ([]Player, error)
}
