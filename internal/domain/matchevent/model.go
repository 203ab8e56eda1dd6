package matchevent

import (
	"time"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
)

type Type string

const (
	TypeStatus       Type = "STATUS"
	TypeGoal         Type = "GOAL"
	TypeCard         Type = "CARD"
	TypeSubstitution Type = "SUBSTITUTION"
	TypeCommentary   Type = "COMMENTARY"
	TypePenalty      Type = "PENALTY"
)

type CardColor string

const (
	CardYellow       CardColor = "YELLOW"
	CardSecondYellow CardColor = "SECOND_YELLOW"
	CardRed          CardColor = "RED"
)

// MatchEvent is one append-only record of a match's event log. The log is
// the source of truth for derived state: replaying it from empty state must
// reproduce every counter and standing.
type MatchEvent struct {
	ID            string
	MatchID       string
	CompetitionID string
	// Minute uses the broadcast form, e.g. "45+2".
	Minute    string
	CreatedAt time.Time
	Details   Details
}

// Details is the closed set of event payload variants. The concrete type is
// recoverable from the wire form via its type tag.
type Details interface {
	EventType() Type
}

type StatusDetails struct {
	TargetStatus match.Status `json:"targetStatus"`
}

type GoalDetails struct {
	TeamID            string `json:"teamId"`
	ScorerID          string `json:"scorerId"`
	AssistingPlayerID string `json:"assistingPlayerId,omitempty"`
	OwnGoal           bool   `json:"ownGoal"`
}

type CardDetails struct {
	TeamID   string    `json:"teamId"`
	PlayerID string    `json:"playerId"`
	Color    CardColor `json:"color"`
}

type SubstitutionDetails struct {
	TeamID      string `json:"teamId"`
	PlayerInID  string `json:"playerInId"`
	PlayerOutID string `json:"playerOutId"`
}

type CommentaryDetails struct {
	Message string `json:"message"`
}

type PenaltyDetails struct {
	TeamID    string `json:"teamId"`
	ShooterID string `json:"shooterId"`
	Scored    bool   `json:"scored"`
	// CountAsGoal is false for shootout penalties, which decide a tie but
	// never change the score of the match itself.
	CountAsGoal bool `json:"countAsGoal"`
}

func (StatusDetails) EventType() Type       { return TypeStatus }
func (GoalDetails) EventType() Type         { return TypeGoal }
func (CardDetails) EventType() Type         { return TypeCard }
func (SubstitutionDetails) EventType() Type { return TypeSubstitution }
func (CommentaryDetails) EventType() Type   { return TypeCommentary }
func (PenaltyDetails) EventType() Type      { return TypePenalty }
