package memory

import (
	"context"
	"sync"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

// EventRepository is the in-memory event log. Events are kept in insertion
// order per match and never removed.
type EventRepository struct {
	mu      sync.RWMutex
	byID    map[string]struct{}
	byMatch map[string][]matchevent.MatchEvent
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		byID:    make(map[string]struct{}),
		byMatch: make(map[string][]matchevent.MatchEvent),
	}
}

func (r *EventRepository) Insert(_ context.Context, event matchevent.MatchEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[event.ID]; exists {
		return false, nil
	}
	r.byID[event.ID] = struct{}{}
	r.byMatch[event.MatchID] = append(r.byMatch[event.MatchID], event)
	return true, nil
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.MatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.byMatch[matchID]
	out := make([]matchevent.MatchEvent, len(events))
	copy(out, events)
	return out, nil
}
