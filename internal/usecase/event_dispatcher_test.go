package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
)

func testMatch(id string) match.Match {
	return match.Match{
		ID:            id,
		CompetitionID: "comp-1",
		HomeTeamID:    "team-home",
		AwayTeamID:    "team-away",
		HomeTeamName:  "Home FC",
		AwayTeamName:  "Away FC",
		KickoffAt:     time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC),
		Status:        match.StatusNotStarted,
		Result:        match.ResultNone,
	}
}

type dispatcherFixture struct {
	dispatcher  *EventDispatcher
	matches     *stubMatchRepository
	events      *stubEventRepository
	players     *stubPlayerStatsRepository
	teams       *stubTeamStatsRepository
	rosters     *stubRosterLookup
	broadcaster *stubBroadcaster
	invalidator *stubInvalidator
}

func newDispatcherFixture(t *testing.T, matches ...match.Match) dispatcherFixture {
	t.Helper()

	f := dispatcherFixture{
		matches:     newStubMatchRepository(matches...),
		events:      newStubEventRepository(),
		players:     newStubPlayerStatsRepository(),
		teams:       newStubTeamStatsRepository(),
		rosters:     newStubRosterLookup(),
		broadcaster: &stubBroadcaster{},
		invalidator: &stubInvalidator{},
	}

	dispatcher, err := NewEventDispatcher(
		DispatcherConfig{Lanes: 4, QueueSize: 16},
		f.matches,
		f.events,
		NewStatsService(f.players, f.teams),
		f.rosters,
		f.broadcaster,
		f.invalidator,
		logging.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewEventDispatcher error: %v", err)
	}
	f.dispatcher = dispatcher
	return f
}

func (f dispatcherFixture) dispatch(t *testing.T, matchID string, details matchevent.Details) {
	t.Helper()
	event := matchevent.MatchEvent{
		ID:      uuid.NewString(),
		MatchID: matchID,
		Details: details,
	}
	if err := f.dispatcher.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch(%T) error: %v", details, err)
	}
}

func TestEventDispatcher_GoalUpdatesScoreAndStats(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))

	f.dispatch(t, "m1", matchevent.StatusDetails{TargetStatus: match.StatusFirstHalf})
	f.dispatch(t, "m1", matchevent.GoalDetails{
		TeamID:            "team-home",
		ScorerID:          "p-scorer",
		AssistingPlayerID: "p-assist",
	})
	f.dispatcher.Close()

	m := f.matches.get("m1")
	if m.HomeGoals != 1 || m.AwayGoals != 0 {
		t.Fatalf("expected score 1-0, got %d-%d", m.HomeGoals, m.AwayGoals)
	}

	scorer, ok, err := f.players.Get(context.Background(), "comp-1", "p-scorer")
	if err != nil || !ok {
		t.Fatalf("scorer stats missing: ok=%v err=%v", ok, err)
	}
	if scorer.Goals != 1 || scorer.Appearances != 1 {
		t.Fatalf("unexpected scorer stats: %+v", scorer)
	}

	assist, ok, err := f.players.Get(context.Background(), "comp-1", "p-assist")
	if err != nil || !ok {
		t.Fatalf("assist stats missing: ok=%v err=%v", ok, err)
	}
	if assist.Assists != 1 || assist.Goals != 0 {
		t.Fatalf("unexpected assist stats: %+v", assist)
	}

	team, ok, err := f.teams.Get(context.Background(), "comp-1", "team-home")
	if err != nil || !ok {
		t.Fatalf("team stats missing: ok=%v err=%v", ok, err)
	}
	if team.Goals != 1 {
		t.Fatalf("expected 1 team goal, got %d", team.Goals)
	}
}

func TestEventDispatcher_DuplicateEventIsAbsorbed(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))

	goal := matchevent.MatchEvent{
		ID:      uuid.NewString(),
		MatchID: "m1",
		Details: matchevent.GoalDetails{TeamID: "team-home", ScorerID: "p-scorer"},
	}
	if err := f.dispatcher.Dispatch(context.Background(), goal); err != nil {
		t.Fatalf("first Dispatch error: %v", err)
	}
	// Retried submission with the same id must not double-count.
	if err := f.dispatcher.Dispatch(context.Background(), goal); err != nil {
		t.Fatalf("second Dispatch error: %v", err)
	}
	f.dispatcher.Close()

	m := f.matches.get("m1")
	if m.HomeGoals != 1 {
		t.Fatalf("expected 1 home goal after duplicate, got %d", m.HomeGoals)
	}
	scorer, _, err := f.players.Get(context.Background(), "comp-1", "p-scorer")
	if err != nil {
		t.Fatalf("Get scorer error: %v", err)
	}
	if scorer.Goals != 1 {
		t.Fatalf("expected 1 scorer goal after duplicate, got %d", scorer.Goals)
	}
	if got := f.dispatcher.Quarantined(); got != 0 {
		t.Fatalf("expected no quarantined events, got %d", got)
	}
}

func TestEventDispatcher_EventsOfOneMatchApplyInOrder(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))

	f.dispatch(t, "m1", matchevent.StatusDetails{TargetStatus: match.StatusFirstHalf})
	for i := 0; i < 5; i++ {
		f.dispatch(t, "m1", matchevent.GoalDetails{TeamID: "team-away", ScorerID: "p-striker"})
	}
	f.dispatch(t, "m1", matchevent.StatusDetails{TargetStatus: match.StatusHalfTime})
	f.dispatcher.Close()

	m := f.matches.get("m1")
	if m.Status != match.StatusHalfTime {
		t.Fatalf("expected HALF_TIME, got %s", m.Status)
	}
	if m.AwayGoals != 5 {
		t.Fatalf("expected 5 away goals, got %d", m.AwayGoals)
	}

	log, err := f.events.ListByMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListByMatch error: %v", err)
	}
	if len(log) != 7 {
		t.Fatalf("expected 7 log entries, got %d", len(log))
	}
	if log[0].Details.EventType() != matchevent.TypeStatus {
		t.Fatalf("expected first entry to be the kickoff status change, got %s", log[0].Details.EventType())
	}
}

func TestEventDispatcher_InvalidTransitionLeavesMatchUntouched(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))

	// NOT_STARTED cannot jump straight to SECOND_HALF; the event is
	// quarantined inside the lane and the match stays as it was.
	f.dispatch(t, "m1", matchevent.StatusDetails{TargetStatus: match.StatusSecondHalf})
	f.dispatcher.Close()

	m := f.matches.get("m1")
	if m.Status != match.StatusNotStarted {
		t.Fatalf("expected NOT_STARTED, got %s", m.Status)
	}
	if got := f.dispatcher.Quarantined(); got != 1 {
		t.Fatalf("expected 1 quarantined event, got %d", got)
	}
	if got := f.broadcaster.broadcasts(); len(got) != 0 {
		t.Fatalf("expected no broadcasts, got %d", len(got))
	}
}

func TestEventDispatcher_RejectsPlayerOffRoster(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))
	f.rosters.denied["p-outsider"] = struct{}{}

	err := f.dispatcher.Dispatch(context.Background(), matchevent.MatchEvent{
		ID:      uuid.NewString(),
		MatchID: "m1",
		Details: matchevent.GoalDetails{TeamID: "team-home", ScorerID: "p-outsider"},
	})
	if !errors.Is(err, ErrLineupInvalid) {
		t.Fatalf("expected ErrLineupInvalid, got %v", err)
	}
	f.dispatcher.Close()

	log, listErr := f.events.ListByMatch(context.Background(), "m1")
	if listErr != nil {
		t.Fatalf("ListByMatch error: %v", listErr)
	}
	if len(log) != 0 {
		t.Fatalf("rejected event must not reach the log, got %d entries", len(log))
	}
}

func TestEventDispatcher_ValidationErrors(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))
	t.Cleanup(f.dispatcher.Close)

	cases := []struct {
		name    string
		event   matchevent.MatchEvent
		wantErr error
	}{
		{
			name:    "non-uuid event id",
			event:   matchevent.MatchEvent{ID: "not-a-uuid", MatchID: "m1", Details: matchevent.CommentaryDetails{Message: "kickoff"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing match id",
			event:   matchevent.MatchEvent{ID: uuid.NewString(), Details: matchevent.CommentaryDetails{Message: "kickoff"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing details",
			event:   matchevent.MatchEvent{ID: uuid.NewString(), MatchID: "m1"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown match",
			event:   matchevent.MatchEvent{ID: uuid.NewString(), MatchID: "m-missing", Details: matchevent.CommentaryDetails{Message: "kickoff"}},
			wantErr: ErrNotFound,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := f.dispatcher.Dispatch(context.Background(), tc.event)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEventDispatcher_FinishBroadcastsAndInvalidates(t *testing.T) {
	t.Parallel()

	m := testMatch("m1")
	m.Status = match.StatusSecondHalf
	m.HomeGoals = 2
	m.AwayGoals = 1
	f := newDispatcherFixture(t, m)

	f.dispatch(t, "m1", matchevent.StatusDetails{TargetStatus: match.StatusFinished})
	f.dispatcher.Close()

	got := f.matches.get("m1")
	if got.Status != match.StatusFinished || got.Result != match.ResultHomeWin {
		t.Fatalf("unexpected final state: status=%s result=%s", got.Status, got.Result)
	}

	home, _, err := f.teams.Get(context.Background(), "comp-1", "team-home")
	if err != nil {
		t.Fatalf("Get home team stats error: %v", err)
	}
	if home.Wins != 1 {
		t.Fatalf("expected 1 home win, got %d", home.Wins)
	}
	away, _, err := f.teams.Get(context.Background(), "comp-1", "team-away")
	if err != nil {
		t.Fatalf("Get away team stats error: %v", err)
	}
	if away.Losses != 1 {
		t.Fatalf("expected 1 away loss, got %d", away.Losses)
	}

	if got := f.invalidator.invalidations(); len(got) != 1 || got[0] != "comp-1" {
		t.Fatalf("expected one invalidation for comp-1, got %v", got)
	}

	broadcasts := f.broadcaster.broadcasts()
	if len(broadcasts) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(broadcasts))
	}
	info := broadcasts[0]
	if info.MatchID != "m1" || info.Status != match.StatusFinished || info.Result != match.ResultHomeWin {
		t.Fatalf("unexpected broadcast: %+v", info)
	}
}

func TestEventDispatcher_ShootoutPenaltyNeverChangesScore(t *testing.T) {
	t.Parallel()

	m := testMatch("m1")
	m.Status = match.StatusPenalties
	m.HomeGoals = 1
	m.AwayGoals = 1
	f := newDispatcherFixture(t, m)

	f.dispatch(t, "m1", matchevent.PenaltyDetails{TeamID: "team-home", ShooterID: "p1", Scored: true, CountAsGoal: false})
	f.dispatch(t, "m1", matchevent.PenaltyDetails{TeamID: "team-away", ShooterID: "p2", Scored: false, CountAsGoal: false})
	f.dispatcher.Close()

	got := f.matches.get("m1")
	if got.HomeGoals != 1 || got.AwayGoals != 1 {
		t.Fatalf("shootout must not move the score, got %d-%d", got.HomeGoals, got.AwayGoals)
	}
	if got.HomeShootoutGoals != 1 || got.AwayShootoutGoals != 0 {
		t.Fatalf("unexpected shootout tally: %d-%d", got.HomeShootoutGoals, got.AwayShootoutGoals)
	}

	shooter, _, err := f.players.Get(context.Background(), "comp-1", "p2")
	if err != nil {
		t.Fatalf("Get shooter stats error: %v", err)
	}
	if shooter.PenaltiesMissed != 1 {
		t.Fatalf("expected 1 missed penalty, got %d", shooter.PenaltiesMissed)
	}
}

func TestEventDispatcher_CloseDrainsAndRejectsNewEvents(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"), testMatch("m2"), testMatch("m3"))

	for _, id := range []string{"m1", "m2", "m3"} {
		f.dispatch(t, id, matchevent.StatusDetails{TargetStatus: match.StatusFirstHalf})
		f.dispatch(t, id, matchevent.GoalDetails{TeamID: "team-home", ScorerID: "p-" + id})
	}
	f.dispatcher.Close()

	for _, id := range []string{"m1", "m2", "m3"} {
		m := f.matches.get(id)
		if m.Status != match.StatusFirstHalf || m.HomeGoals != 1 {
			t.Fatalf("match %s not fully drained: status=%s goals=%d", id, m.Status, m.HomeGoals)
		}
	}

	err := f.dispatcher.Dispatch(context.Background(), matchevent.MatchEvent{
		ID:      uuid.NewString(),
		MatchID: "m1",
		Details: matchevent.CommentaryDetails{Message: "late"},
	})
	if !errors.Is(err, ErrDispatcherClosed) {
		t.Fatalf("expected ErrDispatcherClosed, got %v", err)
	}

	// A second Close is a no-op.
	f.dispatcher.Close()
}

func TestEventDispatcher_LogAppendFailureHaltsIntake(t *testing.T) {
	t.Parallel()

	f := newDispatcherFixture(t, testMatch("m1"))
	defer f.dispatcher.Close()

	f.events.mu.Lock()
	f.events.insertErr = errors.New("disk full")
	f.events.mu.Unlock()

	// Accepted by validation; the append failure surfaces inside the lane.
	f.dispatch(t, "m1", matchevent.CommentaryDetails{Message: "kick off"})

	deadline := time.Now().Add(2 * time.Second)
	for !f.dispatcher.halted.Load() {
		if time.Now().After(deadline) {
			t.Fatal("dispatcher never halted after log append failure")
		}
		time.Sleep(5 * time.Millisecond)
	}

	err := f.dispatcher.Dispatch(context.Background(), matchevent.MatchEvent{
		ID:      uuid.NewString(),
		MatchID: "m1",
		Details: matchevent.CommentaryDetails{Message: "second half"},
	})
	if !errors.Is(err, ErrEventLogUnavailable) {
		t.Fatalf("expected ErrEventLogUnavailable, got %v", err)
	}
	if got := len(f.events.events); got != 0 {
		t.Fatalf("expected empty event log, got %d entries", got)
	}
}
