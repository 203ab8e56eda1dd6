package memory

import (
	"context"
	"sync"
)

// RosterRepository answers match-day roster membership from seeded data.
// It fills the RosterLookup boundary in tests and single-process setups.
type RosterRepository struct {
	mu      sync.RWMutex
	byMatch map[string]map[string]struct{}
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{byMatch: make(map[string]map[string]struct{})}
}

func (r *RosterRepository) SetMatchRoster(matchID string, playerIDs []string) {
	players := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		players[id] = struct{}{}
	}

	r.mu.Lock()
	r.byMatch[matchID] = players
	r.mu.Unlock()
}

func (r *RosterRepository) OnMatchRoster(_ context.Context, matchID, playerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players, ok := r.byMatch[matchID]
	if !ok {
		// No roster registered for the match means validation is not
		// configured; the boundary then accepts every player.
		return true, nil
	}
	_, onRoster := players[playerID]
	return onRoster, nil
}
