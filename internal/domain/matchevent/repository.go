package matchevent

import "context"

// Repository is the append-only event log. Insert reports whether the event
// id was stored for the first time, which is what makes at-least-once
// delivery safe to replay.
type Repository interface {
	Insert(ctx context.Context, event MatchEvent) (inserted bool, err error)
	ListByMatch(ctx context.Context, matchID string) ([]MatchEvent, error)
}
