package matchevent

import (
	"encoding/json"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// ErrUnknownEventType is returned when a wire payload carries a type tag
// outside the closed variant set. The event must not be applied.
var ErrUnknownEventType = errors.New("unknown event type")

type detailsEnvelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wireEvent struct {
	ID            string          `json:"id"`
	MatchID       string          `json:"matchId"`
	CompetitionID string          `json:"competitionId"`
	Minute        string          `json:"minute,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Details       detailsEnvelope `json:"details"`
}

// EncodeDetails writes the variant as a self-describing envelope. The tag
// survives serialization so consumers reconstruct the variant without any
// external schema lookup.
func EncodeDetails(d Details) ([]byte, error) {
	if d == nil {
		return nil, errors.Wrap(ErrUnknownEventType, "nil details")
	}

	payload, err := sonic.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "marshal event payload")
	}
	encoded, err := sonic.Marshal(detailsEnvelope{
		Type:    d.EventType(),
		Payload: payload,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal event envelope")
	}
	return encoded, nil
}

// DecodeDetails reconstructs the variant matching the envelope's type tag.
func DecodeDetails(data []byte) (Details, error) {
	var envelope detailsEnvelope
	if err := sonic.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "unmarshal event envelope")
	}
	return decodeEnvelope(envelope)
}

func decodeEnvelope(envelope detailsEnvelope) (Details, error) {
	switch envelope.Type {
	case TypeStatus:
		var d StatusDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal status payload")
		}
		return d, nil
	case TypeGoal:
		var d GoalDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal goal payload")
		}
		return d, nil
	case TypeCard:
		var d CardDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal card payload")
		}
		return d, nil
	case TypeSubstitution:
		var d SubstitutionDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal substitution payload")
		}
		return d, nil
	case TypeCommentary:
		var d CommentaryDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal commentary payload")
		}
		return d, nil
	case TypePenalty:
		var d PenaltyDetails
		if err := sonic.Unmarshal(envelope.Payload, &d); err != nil {
			return nil, errors.Wrap(err, "unmarshal penalty payload")
		}
		return d, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEventType, "tag %q", envelope.Type)
	}
}

func (e MatchEvent) MarshalJSON() ([]byte, error) {
	details, err := EncodeDetails(e.Details)
	if err != nil {
		return nil, err
	}

	var envelope detailsEnvelope
	if err := sonic.Unmarshal(details, &envelope); err != nil {
		return nil, errors.Wrap(err, "re-read encoded details")
	}

	return sonic.Marshal(wireEvent{
		ID:            e.ID,
		MatchID:       e.MatchID,
		CompetitionID: e.CompetitionID,
		Minute:        e.Minute,
		CreatedAt:     e.CreatedAt,
		Details:       envelope,
	})
}

func (e *MatchEvent) UnmarshalJSON(data []byte) error {
	var wire wireEvent
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "unmarshal match event")
	}

	details, err := decodeEnvelope(wire.Details)
	if err != nil {
		return err
	}

	e.ID = wire.ID
	e.MatchID = wire.MatchID
	e.CompetitionID = wire.CompetitionID
	e.Minute = wire.Minute
	e.CreatedAt = wire.CreatedAt
	e.Details = details
	return nil
}
