package match

import "context"

// Repository exposes match read/write operations.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByIDs(ctx context.Context, matchIDs []string) ([]Match, error)
	Upsert(ctx context.Context, m Match) error
}
