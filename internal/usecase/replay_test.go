package usecase

import (
	"context"
	"testing"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

func seededEventLog(t *testing.T) (*stubMatchRepository, *stubEventRepository) {
	t.Helper()

	matches := newStubMatchRepository(testMatch("m1"))
	events := newStubEventRepository()
	log := []matchevent.MatchEvent{
		{ID: "e1", MatchID: "m1", Details: matchevent.StatusDetails{TargetStatus: match.StatusFirstHalf}},
		{ID: "e2", MatchID: "m1", Details: matchevent.GoalDetails{TeamID: "team-home", ScorerID: "p-striker", AssistingPlayerID: "p-mid"}},
		{ID: "e3", MatchID: "m1", Details: matchevent.CardDetails{TeamID: "team-away", PlayerID: "p-def", Color: matchevent.CardYellow}},
		{ID: "e4", MatchID: "m1", Details: matchevent.StatusDetails{TargetStatus: match.StatusHalfTime}},
		{ID: "e5", MatchID: "m1", Details: matchevent.StatusDetails{TargetStatus: match.StatusSecondHalf}},
		{ID: "e6", MatchID: "m1", Details: matchevent.GoalDetails{TeamID: "team-away", ScorerID: "p-wing"}},
		{ID: "e7", MatchID: "m1", Details: matchevent.StatusDetails{TargetStatus: match.StatusFinished}},
	}
	for _, event := range log {
		if _, err := events.Insert(context.Background(), event); err != nil {
			t.Fatalf("seed event %s: %v", event.ID, err)
		}
	}
	return matches, events
}

func TestReplayMatchStats_RebuildsFromLog(t *testing.T) {
	t.Parallel()

	matches, events := seededEventLog(t)
	players := newStubPlayerStatsRepository()
	teams := newStubTeamStatsRepository()

	rebuilt, err := ReplayMatchStats(context.Background(), matches, events, NewStatsService(players, teams), "m1")
	if err != nil {
		t.Fatalf("ReplayMatchStats error: %v", err)
	}

	if rebuilt.Status != match.StatusFinished || rebuilt.Result != match.ResultDraw {
		t.Fatalf("unexpected rebuilt state: status=%s result=%s", rebuilt.Status, rebuilt.Result)
	}
	if rebuilt.HomeGoals != 1 || rebuilt.AwayGoals != 1 {
		t.Fatalf("unexpected rebuilt score: %d-%d", rebuilt.HomeGoals, rebuilt.AwayGoals)
	}
	if stored := matches.get("m1"); stored.Result != match.ResultDraw {
		t.Fatalf("rebuilt match not stored, result=%s", stored.Result)
	}

	striker, _, err := players.Get(context.Background(), "comp-1", "p-striker")
	if err != nil {
		t.Fatalf("Get player stats error: %v", err)
	}
	if striker.Goals != 1 || striker.Appearances != 1 {
		t.Fatalf("unexpected striker counters: goals=%d appearances=%d", striker.Goals, striker.Appearances)
	}
	mid, _, err := players.Get(context.Background(), "comp-1", "p-mid")
	if err != nil {
		t.Fatalf("Get player stats error: %v", err)
	}
	if mid.Assists != 1 {
		t.Fatalf("expected 1 assist, got %d", mid.Assists)
	}

	home, _, err := teams.Get(context.Background(), "comp-1", "team-home")
	if err != nil {
		t.Fatalf("Get team stats error: %v", err)
	}
	if home.Goals != 1 || home.Draws != 1 {
		t.Fatalf("unexpected home counters: goals=%d draws=%d", home.Goals, home.Draws)
	}
	away, _, err := teams.Get(context.Background(), "comp-1", "team-away")
	if err != nil {
		t.Fatalf("Get team stats error: %v", err)
	}
	if away.YellowCards != 1 || away.Draws != 1 {
		t.Fatalf("unexpected away counters: yellow=%d draws=%d", away.YellowCards, away.Draws)
	}
}

func TestReplayMatchStats_ReplayIsDeterministic(t *testing.T) {
	t.Parallel()

	matches, events := seededEventLog(t)

	firstPlayers := newStubPlayerStatsRepository()
	first, err := ReplayMatchStats(context.Background(), matches, events, NewStatsService(firstPlayers, newStubTeamStatsRepository()), "m1")
	if err != nil {
		t.Fatalf("first replay error: %v", err)
	}

	// Folding the same log into fresh counters reproduces the exact state.
	secondPlayers := newStubPlayerStatsRepository()
	second, err := ReplayMatchStats(context.Background(), matches, events, NewStatsService(secondPlayers, newStubTeamStatsRepository()), "m1")
	if err != nil {
		t.Fatalf("second replay error: %v", err)
	}

	if first != second {
		t.Fatalf("replays diverged:\nfirst  %+v\nsecond %+v", first, second)
	}
	a, _, _ := firstPlayers.Get(context.Background(), "comp-1", "p-striker")
	b, _, _ := secondPlayers.Get(context.Background(), "comp-1", "p-striker")
	if a != b {
		t.Fatalf("player counters diverged:\nfirst  %+v\nsecond %+v", a, b)
	}
}

func TestReplayMatchStats_UnknownMatch(t *testing.T) {
	t.Parallel()

	matches := newStubMatchRepository()
	events := newStubEventRepository()
	service := NewStatsService(newStubPlayerStatsRepository(), newStubTeamStatsRepository())

	if _, err := ReplayMatchStats(context.Background(), matches, events, service, "m-missing"); err == nil {
		t.Fatal("expected error for unknown match")
	}
}
