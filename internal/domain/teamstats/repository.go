package teamstats

import "context"

// Repository stores team counters keyed by (team id, competition id).
type Repository interface {
	Increment(ctx context.Context, competitionID, teamID string, delta Delta) error
	Get(ctx context.Context, competitionID, teamID string) (TeamStats, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]TeamStats, error)
}
