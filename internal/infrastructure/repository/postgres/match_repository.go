package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	const query = `SELECT * FROM matches WHERE id = $1`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByIDs(ctx context.Context, matchIDs []string) ([]match.Match, error) {
	if len(matchIDs) == 0 {
		return []match.Match{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM matches WHERE id IN (?)`, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by ids: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) error {
	const query = `
		INSERT INTO matches (
			id, competition_id, home_team_id, away_team_id,
			home_team_name, away_team_name, venue_id, referee_id,
			kickoff_at, status, result, home_goals, away_goals,
			home_shootout_goals, away_shootout_goals
		) VALUES (
			:id, :competition_id, :home_team_id, :away_team_id,
			:home_team_name, :away_team_name, :venue_id, :referee_id,
			:kickoff_at, :status, :result, :home_goals, :away_goals,
			:home_shootout_goals, :away_shootout_goals
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			result = EXCLUDED.result,
			home_goals = EXCLUDED.home_goals,
			away_goals = EXCLUDED.away_goals,
			home_shootout_goals = EXCLUDED.home_shootout_goals,
			away_shootout_goals = EXCLUDED.away_shootout_goals,
			venue_id = EXCLUDED.venue_id,
			referee_id = EXCLUDED.referee_id,
			kickoff_at = EXCLUDED.kickoff_at`

	if _, err := r.db.NamedExecContext(ctx, query, matchToTableModel(m)); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}
