package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
)

// MatchInfo is the compact derived-state record broadcast after every
// completed status transition.
type MatchInfo struct {
	MatchID       string       `json:"matchId"`
	CompetitionID string       `json:"competitionId"`
	Status        match.Status `json:"status"`
	Result        match.Result `json:"result"`
}

// MatchInfoBroadcaster pushes match-info-changed records downstream.
type MatchInfoBroadcaster interface {
	BroadcastMatchInfo(info MatchInfo)
}

// RosterLookup answers whether a player is on either team's match-day
// roster. It is owned by a reference-data service, not by this core.
type RosterLookup interface {
	OnMatchRoster(ctx context.Context, matchID, playerID string) (bool, error)
}

// StandingsInvalidator drops cached standings once a match in the
// competition becomes result-bearing.
type StandingsInvalidator interface {
	InvalidateCompetition(ctx context.Context, competitionID string)
}

type DispatcherConfig struct {
	// Lanes is the number of ordered processing lanes. Events are
	// partitioned by match id, so all events of one match share a lane.
	Lanes int
	// QueueSize is the per-lane buffer length.
	QueueSize int
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Lanes <= 0 {
		c.Lanes = 8
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	return c
}

// EventDispatcher consumes the per-match event stream. Dispatch validates
// and enqueues; lane workers apply events strictly in order within a match
// and fully in parallel across matches.
type EventDispatcher struct {
	matchRepo   match.Repository
	eventRepo   matchevent.Repository
	stats       *StatsService
	rosters     RosterLookup
	broadcaster MatchInfoBroadcaster
	invalidator StandingsInvalidator
	logger      *logging.Logger

	pool    *ants.Pool
	lanes   []chan matchevent.MatchEvent
	workers sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	halted      atomic.Bool
	quarantined atomic.Int64
}

func NewEventDispatcher(
	cfg DispatcherConfig,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	stats *StatsService,
	rosters RosterLookup,
	broadcaster MatchInfoBroadcaster,
	invalidator StandingsInvalidator,
	logger *logging.Logger,
) (*EventDispatcher, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(cfg.Lanes)
	if err != nil {
		return nil, fmt.Errorf("create lane worker pool: %w", err)
	}

	d := &EventDispatcher{
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		stats:       stats,
		rosters:     rosters,
		broadcaster: broadcaster,
		invalidator: invalidator,
		logger:      logger,
		pool:        pool,
		lanes:       make([]chan matchevent.MatchEvent, cfg.Lanes),
	}

	for i := range d.lanes {
		lane := make(chan matchevent.MatchEvent, cfg.QueueSize)
		d.lanes[i] = lane
		d.workers.Add(1)
		if err := pool.Submit(func() {
			defer d.workers.Done()
			d.runLane(lane)
		}); err != nil {
			pool.Release()
			return nil, fmt.Errorf("start lane worker: %w", err)
		}
	}

	return d, nil
}

// Dispatch validates the event and hands it to its match's lane. Validation
// failures surface synchronously to the caller of the write path;
// application failures inside the lane are logged and quarantined without
// halting other lanes. The one exception is a failed event log append,
// which halts intake entirely.
func (d *EventDispatcher) Dispatch(ctx context.Context, event matchevent.MatchEvent) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventDispatcher.Dispatch")
	defer span.End()

	if d.halted.Load() {
		return ErrEventLogUnavailable
	}

	event, err := d.validate(ctx, event)
	if err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	d.lanes[d.laneFor(event.MatchID)] <- event
	return nil
}

// Close stops intake and drains every lane before returning. No event
// application is abandoned mid-way.
func (d *EventDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	for _, lane := range d.lanes {
		close(lane)
	}
	d.workers.Wait()
	d.pool.Release()
}

// Quarantined reports how many events were skipped as undecodable or
// otherwise unapplicable.
func (d *EventDispatcher) Quarantined() int64 {
	return d.quarantined.Load()
}

func (d *EventDispatcher) validate(ctx context.Context, event matchevent.MatchEvent) (matchevent.MatchEvent, error) {
	if _, err := uuid.Parse(event.ID); err != nil {
		return event, fmt.Errorf("%w: event id must be a UUID", ErrInvalidInput)
	}
	if event.MatchID == "" {
		return event, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if event.Details == nil {
		return event, fmt.Errorf("%w: event details are required", ErrInvalidInput)
	}

	m, found, err := d.matchRepo.GetByID(ctx, event.MatchID)
	if err != nil {
		return event, fmt.Errorf("get match for event: %w", err)
	}
	if !found {
		return event, fmt.Errorf("%w: match %s", ErrNotFound, event.MatchID)
	}
	if event.CompetitionID == "" {
		event.CompetitionID = m.CompetitionID
	}

	for _, playerID := range referencedPlayers(event.Details) {
		onRoster, err := d.rosters.OnMatchRoster(ctx, event.MatchID, playerID)
		if err != nil {
			return event, fmt.Errorf("check match roster: %w", err)
		}
		if !onRoster {
			return event, fmt.Errorf("%w: player %s in match %s", ErrLineupInvalid, playerID, event.MatchID)
		}
	}
	return event, nil
}

func (d *EventDispatcher) laneFor(matchID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(matchID))
	return int(h.Sum32() % uint32(len(d.lanes)))
}

func (d *EventDispatcher) runLane(lane <-chan matchevent.MatchEvent) {
	ctx := context.Background()
	for event := range lane {
		if err := d.apply(ctx, event); err != nil {
			d.quarantined.Add(1)
			d.logger.Error("event application failed",
				"event_id", event.ID,
				"match_id", event.MatchID,
				"error", err,
			)
		}
	}
}

// apply is the exactly-once application step. A duplicate event id is
// absorbed silently; everything else is routed by payload kind.
func (d *EventDispatcher) apply(ctx context.Context, event matchevent.MatchEvent) error {
	inserted, err := d.eventRepo.Insert(ctx, event)
	if err != nil {
		// A failed append invalidates the replay premise; stop intake
		// instead of aggregating events the log never recorded.
		d.halted.Store(true)
		return fmt.Errorf("%w: append event to log: %v", ErrEventLogUnavailable, err)
	}
	if !inserted {
		d.logger.Debug("duplicate event absorbed", "event_id", event.ID, "match_id", event.MatchID)
		return nil
	}

	m, found, err := d.matchRepo.GetByID(ctx, event.MatchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: match %s", ErrNotFound, event.MatchID)
	}

	switch details := event.Details.(type) {
	case matchevent.StatusDetails:
		return d.applyStatus(ctx, m, details)
	case matchevent.GoalDetails:
		if err := d.addGoal(ctx, m, details.TeamID); err != nil {
			return err
		}
		return d.stats.ApplyEvent(ctx, m, event)
	case matchevent.PenaltyDetails:
		if err := d.applyPenalty(ctx, m, details); err != nil {
			return err
		}
		return d.stats.ApplyEvent(ctx, m, event)
	case matchevent.CardDetails, matchevent.SubstitutionDetails:
		return d.stats.ApplyEvent(ctx, m, event)
	case matchevent.CommentaryDetails:
		// Display-only; the log entry is all that is needed.
		return nil
	default:
		return errors.Wrapf(matchevent.ErrUnknownEventType, "%T", event.Details)
	}
}

func (d *EventDispatcher) applyStatus(ctx context.Context, m match.Match, details matchevent.StatusDetails) error {
	if err := m.ApplyStatus(details.TargetStatus); err != nil {
		return fmt.Errorf("apply status event: %w", err)
	}
	if err := d.matchRepo.Upsert(ctx, m); err != nil {
		return fmt.Errorf("store match after transition: %w", err)
	}

	if m.Status.IsResultBearing() {
		if err := d.stats.RecordResult(ctx, m); err != nil {
			return fmt.Errorf("record result: %w", err)
		}
		if d.invalidator != nil {
			d.invalidator.InvalidateCompetition(ctx, m.CompetitionID)
		}
	}

	if d.broadcaster != nil {
		d.broadcaster.BroadcastMatchInfo(MatchInfo{
			MatchID:       m.ID,
			CompetitionID: m.CompetitionID,
			Status:        m.Status,
			Result:        m.Result,
		})
	}
	return nil
}

func (d *EventDispatcher) addGoal(ctx context.Context, m match.Match, teamID string) error {
	switch teamID {
	case m.HomeTeamID:
		m.HomeGoals++
	case m.AwayTeamID:
		m.AwayGoals++
	default:
		return fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, teamID, m.ID)
	}
	if err := d.matchRepo.Upsert(ctx, m); err != nil {
		return fmt.Errorf("store match after goal: %w", err)
	}
	return nil
}

func (d *EventDispatcher) applyPenalty(ctx context.Context, m match.Match, details matchevent.PenaltyDetails) error {
	if details.CountAsGoal {
		if !details.Scored {
			return nil
		}
		return d.addGoal(ctx, m, details.TeamID)
	}

	// Shootout attempt: decides the tie, never the score.
	if !details.Scored {
		return nil
	}
	switch details.TeamID {
	case m.HomeTeamID:
		m.HomeShootoutGoals++
	case m.AwayTeamID:
		m.AwayShootoutGoals++
	default:
		return fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, details.TeamID, m.ID)
	}
	if err := d.matchRepo.Upsert(ctx, m); err != nil {
		return fmt.Errorf("store match after shootout attempt: %w", err)
	}
	return nil
}

func referencedPlayers(details matchevent.Details) []string {
	switch d := details.(type) {
	case matchevent.GoalDetails:
		players := []string{d.ScorerID}
		if d.AssistingPlayerID != "" {
			players = append(players, d.AssistingPlayerID)
		}
		return players
	case matchevent.CardDetails:
		return []string{d.PlayerID}
	case matchevent.SubstitutionDetails:
		return []string{d.PlayerInID, d.PlayerOutID}
	case matchevent.PenaltyDetails:
		return []string{d.ShooterID}
	default:
		return nil
	}
}
