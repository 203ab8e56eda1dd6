package match

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidStatusTransition is returned when a requested status is not
// reachable from the match's current status. The match is left unchanged.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusFirstHalf  Status = "FIRST_HALF"
	StatusHalfTime   Status = "HALF_TIME"
	StatusSecondHalf Status = "SECOND_HALF"
	StatusExtraTime  Status = "EXTRA_TIME"
	StatusPenalties  Status = "PENALTIES"
	StatusFinished   Status = "FINISHED"
	StatusPostponed  Status = "POSTPONED"
	StatusAbandoned  Status = "ABANDONED"
)

type Result string

const (
	ResultNone    Result = "NONE"
	ResultHomeWin Result = "HOME_WIN"
	ResultAwayWin Result = "AWAY_WIN"
	ResultDraw    Result = "DRAW"
)

// allowedTransitions is the single source of truth for the status graph.
// Only the direct next steps of the canonical forward path are listed;
// POSTPONED and ABANDONED are handled separately because they absorb from
// every non-terminal status.
var allowedTransitions = map[Status][]Status{
	StatusNotStarted: {StatusFirstHalf},
	StatusFirstHalf:  {StatusHalfTime},
	StatusHalfTime:   {StatusSecondHalf},
	StatusSecondHalf: {StatusFinished, StatusExtraTime},
	StatusExtraTime:  {StatusFinished, StatusPenalties},
	StatusPenalties:  {StatusFinished},
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusFirstHalf, StatusHalfTime, StatusSecondHalf,
		StatusExtraTime, StatusPenalties, StatusFinished, StatusPostponed, StatusAbandoned:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFinished, StatusPostponed, StatusAbandoned:
		return true
	default:
		return false
	}
}

// IsResultBearing reports whether a final result is derived at s.
// POSTPONED is terminal but carries no result.
func (s Status) IsResultBearing() bool {
	return s == StatusFinished || s == StatusAbandoned
}

// CanTransition consults the transition table.
func CanTransition(from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusPostponed || to == StatusAbandoned {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Match is the aggregate mutated only through validated status transitions
// and event application.
type Match struct {
	ID            string
	CompetitionID string
	HomeTeamID    string
	AwayTeamID    string
	HomeTeamName  string
	AwayTeamName  string
	VenueID       string
	RefereeID     string
	KickoffAt     time.Time
	Status        Status
	Result        Result

	HomeGoals int
	AwayGoals int

	// Shootout tallies never feed the result derivation; knockout ties
	// consult them when a two-legged aggregate is level.
	HomeShootoutGoals int
	AwayShootoutGoals int
}

// ApplyStatus moves the match to target if the transition table allows it.
// Landing on a result-bearing status derives the final result from the goal
// tally at that instant; the result is immutable afterwards because every
// result-bearing status is terminal.
func (m *Match) ApplyStatus(target Status) error {
	if !ValidStatus(target) {
		return errors.Wrapf(ErrInvalidStatusTransition, "unknown target status %q", target)
	}
	if !CanTransition(m.Status, target) {
		return errors.Wrapf(ErrInvalidStatusTransition, "%s -> %s", m.Status, target)
	}

	m.Status = target
	if target.IsResultBearing() {
		m.Result = deriveResult(m.HomeGoals, m.AwayGoals)
	}
	return nil
}

func deriveResult(homeGoals, awayGoals int) Result {
	switch {
	case homeGoals > awayGoals:
		return ResultHomeWin
	case homeGoals < awayGoals:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}
