package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

type eventTableModel struct {
	ID            string    `db:"id"`
	MatchID       string    `db:"match_id"`
	CompetitionID string    `db:"competition_id"`
	Minute        string    `db:"minute"`
	CreatedAt     time.Time `db:"created_at"`
	Details       []byte    `db:"details"`
}

// EventRepository is the durable event log. Inserts are keyed by event id
// so replayed events are absorbed without touching existing rows.
type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Insert(ctx context.Context, ev matchevent.MatchEvent) (bool, error) {
	payload, err := matchevent.EncodeDetails(ev.Details)
	if err != nil {
		return false, fmt.Errorf("encode event details: %w", err)
	}

	const query = `
		INSERT INTO match_events (id, match_id, competition_id, minute, created_at, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.MatchID, ev.CompetitionID, ev.Minute, ev.CreatedAt, payload)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert match event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert match event rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.MatchEvent, error) {
	const query = `
		SELECT id, match_id, competition_id, minute, created_at, details
		FROM match_events
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]matchevent.MatchEvent, 0, len(rows))
	for _, row := range rows {
		ev, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (m eventTableModel) toDomain() (matchevent.MatchEvent, error) {
	details, err := matchevent.DecodeDetails(m.Details)
	if err != nil {
		return matchevent.MatchEvent{}, fmt.Errorf("decode event %s details: %w", m.ID, err)
	}
	return matchevent.MatchEvent{
		ID:            m.ID,
		MatchID:       m.MatchID,
		CompetitionID: m.CompetitionID,
		Minute:        m.Minute,
		CreatedAt:     m.CreatedAt,
		Details:       details,
	}, nil
}
