package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/playerstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/teamstats"
)

type statsKey struct {
	competitionID string
	subjectID     string
}

type appearanceKey struct {
	matchID  string
	playerID string
}

// PlayerStatsRepository keeps player counters with atomic increments.
type PlayerStatsRepository struct {
	mu       sync.RWMutex
	stats    map[statsKey]playerstats.PlayerStats
	appeared map[appearanceKey]struct{}
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{
		stats:    make(map[statsKey]playerstats.PlayerStats),
		appeared: make(map[appearanceKey]struct{}),
	}
}

func (r *PlayerStatsRepository) Increment(_ context.Context, competitionID, playerID string, delta playerstats.Delta) error {
	if delta.IsZero() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := statsKey{competitionID: competitionID, subjectID: playerID}
	s := r.stats[key]
	s.PlayerID = playerID
	s.CompetitionID = competitionID
	s.Appearances += delta.Appearances
	s.Goals += delta.Goals
	s.Assists += delta.Assists
	s.YellowCards += delta.YellowCards
	s.RedCards += delta.RedCards
	s.SubstitutionsOn += delta.SubstitutionsOn
	s.SubstitutionsOff += delta.SubstitutionsOff
	s.PenaltiesScored += delta.PenaltiesScored
	s.PenaltiesMissed += delta.PenaltiesMissed
	r.stats[key] = s
	return nil
}

func (r *PlayerStatsRepository) MarkAppearance(_ context.Context, matchID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := appearanceKey{matchID: matchID, playerID: playerID}
	if _, seen := r.appeared[key]; seen {
		return false, nil
	}
	r.appeared[key] = struct{}{}
	return true, nil
}

func (r *PlayerStatsRepository) Get(_ context.Context, competitionID, playerID string) (playerstats.PlayerStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stats[statsKey{competitionID: competitionID, subjectID: playerID}]
	return s, ok, nil
}

func (r *PlayerStatsRepository) ListByCompetition(_ context.Context, competitionID string, page, size int) ([]playerstats.PlayerStats, int, error) {
	r.mu.RLock()
	all := make([]playerstats.PlayerStats, 0)
	for key, s := range r.stats {
		if key.competitionID == competitionID {
			all = append(all, s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Goals != all[j].Goals {
			return all[i].Goals > all[j].Goals
		}
		return all[i].PlayerID < all[j].PlayerID
	})

	total := len(all)
	start := page * size
	if start >= total {
		return []playerstats.PlayerStats{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// TeamStatsRepository keeps team counters with atomic increments.
type TeamStatsRepository struct {
	mu    sync.RWMutex
	stats map[statsKey]teamstats.TeamStats
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{stats: make(map[statsKey]teamstats.TeamStats)}
}

func (r *TeamStatsRepository) Increment(_ context.Context, competitionID, teamID string, delta teamstats.Delta) error {
	if delta.IsZero() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := statsKey{competitionID: competitionID, subjectID: teamID}
	s := r.stats[key]
	s.TeamID = teamID
	s.CompetitionID = competitionID
	s.Goals += delta.Goals
	s.YellowCards += delta.YellowCards
	s.RedCards += delta.RedCards
	s.Wins += delta.Wins
	s.Draws += delta.Draws
	s.Losses += delta.Losses
	r.stats[key] = s
	return nil
}

func (r *TeamStatsRepository) Get(_ context.Context, competitionID, teamID string) (teamstats.TeamStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stats[statsKey{competitionID: competitionID, subjectID: teamID}]
	return s, ok, nil
}

func (r *TeamStatsRepository) ListByCompetition(_ context.Context, competitionID string) ([]teamstats.TeamStats, error) {
	r.mu.RLock()
	out := make([]teamstats.TeamStats, 0)
	for key, s := range r.stats {
		if key.competitionID == competitionID {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}
