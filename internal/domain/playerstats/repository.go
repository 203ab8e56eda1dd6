package playerstats

import "context"

// Repository stores player counters. Increment must be atomic so that lanes
// processing different matches can update shared counters concurrently.
type Repository interface {
	Increment(ctx context.Context, competitionID, playerID string, delta Delta) error
	// MarkAppearance durably records that the player took part in the match
	// and reports true only the first time that pair is seen. The appearance
	// counter is incremented exactly when this returns true, so the record
	// must live in the same store as the counters it guards.
	MarkAppearance(ctx context.Context, matchID, playerID string) (bool, error)
	Get(ctx context.Context, competitionID, playerID string) (PlayerStats, bool, error)
	// ListByCompetition returns one page ordered by goals desc, then player
	// id asc, along with the total row count.
	ListByCompetition(ctx context.Context, competitionID string, page, size int) ([]PlayerStats, int, error)
}
