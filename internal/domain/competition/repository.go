package competition

import "context"

// Repository exposes competition structure operations.
//
// AssignMatchesToRound must be atomic: it fails with ErrRoundNotEmpty
// without mutating anything when the round already holds matches.
type Repository interface {
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	Upsert(ctx context.Context, c Competition) error
	AssignMatchesToRound(ctx context.Context, competitionID string, roundNumber int, matchIDs []string) error
}
