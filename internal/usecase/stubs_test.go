package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/playerstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/teamstats"
)

type stubMatchRepository struct {
	mu   sync.Mutex
	byID map[string]match.Match

	getErr    error
	byIDCalls int
}

func newStubMatchRepository(matches ...match.Match) *stubMatchRepository {
	byID := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	return &stubMatchRepository{byID: byID}
}

func (r *stubMatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byIDCalls++
	if r.getErr != nil {
		return match.Match{}, false, r.getErr
	}
	m, ok := r.byID[matchID]
	return m, ok, nil
}

func (r *stubMatchRepository) ListByIDs(_ context.Context, matchIDs []string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matches := make([]match.Match, 0, len(matchIDs))
	for _, id := range matchIDs {
		if m, ok := r.byID[id]; ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (r *stubMatchRepository) Upsert(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[m.ID] = m
	return nil
}

func (r *stubMatchRepository) get(matchID string) match.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[matchID]
}

type stubEventRepository struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	events    []matchevent.MatchEvent
	insertErr error
}

func newStubEventRepository() *stubEventRepository {
	return &stubEventRepository{seen: make(map[string]struct{})}
}

func (r *stubEventRepository) Insert(_ context.Context, event matchevent.MatchEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return false, r.insertErr
	}
	if _, dup := r.seen[event.ID]; dup {
		return false, nil
	}
	r.seen[event.ID] = struct{}{}
	r.events = append(r.events, event)
	return true, nil
}

func (r *stubEventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.MatchEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]matchevent.MatchEvent, 0)
	for _, event := range r.events {
		if event.MatchID == matchID {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

type stubCompetitionRepository struct {
	mu   sync.Mutex
	byID map[string]competition.Competition

	getByIDCalls int
}

func newStubCompetitionRepository(comps ...competition.Competition) *stubCompetitionRepository {
	byID := make(map[string]competition.Competition, len(comps))
	for _, c := range comps {
		byID[c.ID] = c
	}
	return &stubCompetitionRepository{byID: byID}
}

func (r *stubCompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByIDCalls++
	c, ok := r.byID[competitionID]
	return c, ok, nil
}

func (r *stubCompetitionRepository) Upsert(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *stubCompetitionRepository) AssignMatchesToRound(_ context.Context, competitionID string, roundNumber int, matchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[competitionID]
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
		r.byID[competitionID] = c
		return nil
	}
	return competition.ErrRoundNotFound
}

type statsStubKey struct {
	competitionID string
	subjectID     string
}

type stubPlayerStatsRepository struct {
	mu       sync.Mutex
	stats    map[statsStubKey]playerstats.PlayerStats
	appeared map[statsStubKey]struct{}
}

func newStubPlayerStatsRepository() *stubPlayerStatsRepository {
	return &stubPlayerStatsRepository{
		stats:    make(map[statsStubKey]playerstats.PlayerStats),
		appeared: make(map[statsStubKey]struct{}),
	}
}

func (r *stubPlayerStatsRepository) MarkAppearance(_ context.Context, matchID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statsStubKey{competitionID: matchID, subjectID: playerID}
	if _, seen := r.appeared[key]; seen {
		return false, nil
	}
	r.appeared[key] = struct{}{}
	return true, nil
}

func (r *stubPlayerStatsRepository) Increment(_ context.Context, competitionID, playerID string, delta playerstats.Delta) error {
	if delta.IsZero() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statsStubKey{competitionID: competitionID, subjectID: playerID}
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

func (r *stubPlayerStatsRepository) Get(_ context.Context, competitionID, playerID string) (playerstats.PlayerStats, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[statsStubKey{competitionID: competitionID, subjectID: playerID}]
	return s, ok, nil
}

func (r *stubPlayerStatsRepository) ListByCompetition(_ context.Context, competitionID string, page, size int) ([]playerstats.PlayerStats, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]playerstats.PlayerStats, 0)
	for key, s := range r.stats {
		if key.competitionID == competitionID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool {
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

type stubTeamStatsRepository struct {
	mu    sync.Mutex
	stats map[statsStubKey]teamstats.TeamStats
}

func newStubTeamStatsRepository() *stubTeamStatsRepository {
	return &stubTeamStatsRepository{stats: make(map[statsStubKey]teamstats.TeamStats)}
}

func (r *stubTeamStatsRepository) Increment(_ context.Context, competitionID, teamID string, delta teamstats.Delta) error {
	if delta.IsZero() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statsStubKey{competitionID: competitionID, subjectID: teamID}
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

func (r *stubTeamStatsRepository) Get(_ context.Context, competitionID, teamID string) (teamstats.TeamStats, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[statsStubKey{competitionID: competitionID, subjectID: teamID}]
	return s, ok, nil
}

func (r *stubTeamStatsRepository) ListByCompetition(_ context.Context, competitionID string) ([]teamstats.TeamStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]teamstats.TeamStats, 0)
	for key, s := range r.stats {
		if key.competitionID == competitionID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Goals != all[j].Goals {
			return all[i].Goals > all[j].Goals
		}
		return all[i].TeamID < all[j].TeamID
	})
	return all, nil
}

// stubRosterLookup denies the listed players and accepts everyone else.
type stubRosterLookup struct {
	mu     sync.Mutex
	denied map[string]struct{}
	err    error
	calls  int
}

func newStubRosterLookup(deniedPlayers ...string) *stubRosterLookup {
	denied := make(map[string]struct{}, len(deniedPlayers))
	for _, id := range deniedPlayers {
		denied[id] = struct{}{}
	}
	return &stubRosterLookup{denied: denied}
}

func (r *stubRosterLookup) OnMatchRoster(_ context.Context, _, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	_, deny := r.denied[playerID]
	return !deny, nil
}

type stubBroadcaster struct {
	mu    sync.Mutex
	infos []MatchInfo
}

func (b *stubBroadcaster) BroadcastMatchInfo(info MatchInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.infos = append(b.infos, info)
}

func (b *stubBroadcaster) broadcasts() []MatchInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]MatchInfo(nil), b.infos...)
}

type stubInvalidator struct {
	mu             sync.Mutex
	competitionIDs []string
}

func (i *stubInvalidator) InvalidateCompetition(_ context.Context, competitionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.competitionIDs = append(i.competitionIDs, competitionID)
}

func (i *stubInvalidator) invalidations() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.competitionIDs...)
}
