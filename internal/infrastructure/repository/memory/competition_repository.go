package memory

import (
	"context"
	"sync"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
)

// CompetitionRepository stores competition structures. All reads return
// deep copies so that a standings fold never observes a half-applied
// round assignment.
type CompetitionRepository struct {
	mu           sync.RWMutex
	competitions map[string]competition.Competition
}

func NewCompetitionRepository(seed []competition.Competition) *CompetitionRepository {
	competitions := make(map[string]competition.Competition, len(seed))
	for _, c := range seed {
		competitions[c.ID] = deepCopyCompetition(c)
	}
	return &CompetitionRepository{competitions: competitions}
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.competitions[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}
	return deepCopyCompetition(c), true, nil
}

func (r *CompetitionRepository) Upsert(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.competitions[c.ID] = deepCopyCompetition(c)
	return nil
}

func (r *CompetitionRepository) AssignMatchesToRound(_ context.Context, competitionID string, roundNumber int, matchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.competitions[competitionID]
	if !ok {
		return competition.ErrNotFound
	}
	if c.League == nil {
		return competition.ErrPhaseNotFound
	}

	for i := range c.League.Rounds {
		round := &c.League.Rounds[i]
		if round.Number != roundNumber {
			continue
		}
		if len(round.MatchIDs) > 0 {
			return competition.ErrRoundNotEmpty
		}
		round.MatchIDs = append([]string(nil), matchIDs...)
		r.competitions[competitionID] = c
		return nil
	}
	return competition.ErrRoundNotFound
}

func deepCopyCompetition(c competition.Competition) competition.Competition {
	out := c
	if c.League != nil {
		league := competition.LeaguePhase{Rounds: make([]competition.Round, len(c.League.Rounds))}
		for i, round := range c.League.Rounds {
			league.Rounds[i] = competition.Round{
				Number:   round.Number,
				MatchIDs: append([]string(nil), round.MatchIDs...),
			}
		}
		out.League = &league
	}
	if c.Knockout != nil {
		knockout := competition.KnockoutPhase{Stages: make([]competition.Stage, len(c.Knockout.Stages))}
		for i, stage := range c.Knockout.Stages {
			knockout.Stages[i] = competition.Stage{
				Name: stage.Name,
				Ties: append([]competition.Tie(nil), stage.Ties...),
			}
		}
		out.Knockout = &knockout
	}
	return out
}
