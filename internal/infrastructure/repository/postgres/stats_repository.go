package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/playerstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/teamstats"
)

type playerStatsTableModel struct {
	PlayerID         string `db:"player_id"`
	CompetitionID    string `db:"competition_id"`
	PlayerName       string `db:"player_name"`
	Appearances      int    `db:"appearances"`
	Goals            int    `db:"goals"`
	Assists          int    `db:"assists"`
	YellowCards      int    `db:"yellow_cards"`
	RedCards         int    `db:"red_cards"`
	SubstitutionsOn  int    `db:"substitutions_on"`
	SubstitutionsOff int    `db:"substitutions_off"`
	PenaltiesScored  int    `db:"penalties_scored"`
	PenaltiesMissed  int    `db:"penalties_missed"`
}

func (m playerStatsTableModel) toDomain() playerstats.PlayerStats {
	return playerstats.PlayerStats{
		PlayerID:         m.PlayerID,
		CompetitionID:    m.CompetitionID,
		PlayerName:       m.PlayerName,
		Appearances:      m.Appearances,
		Goals:            m.Goals,
		Assists:          m.Assists,
		YellowCards:      m.YellowCards,
		RedCards:         m.RedCards,
		SubstitutionsOn:  m.SubstitutionsOn,
		SubstitutionsOff: m.SubstitutionsOff,
		PenaltiesScored:  m.PenaltiesScored,
		PenaltiesMissed:  m.PenaltiesMissed,
	}
}

// PlayerStatsRepository increments counters with a single upsert statement
// so concurrent dispatcher lanes never lose updates.
type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Increment(ctx context.Context, competitionID, playerID string, delta playerstats.Delta) error {
	if delta.IsZero() {
		return nil
	}

	const query = `
		INSERT INTO player_stats (
			competition_id, player_id, appearances, goals, assists,
			yellow_cards, red_cards, substitutions_on, substitutions_off,
			penalties_scored, penalties_missed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (competition_id, player_id) DO UPDATE SET
			appearances = player_stats.appearances + EXCLUDED.appearances,
			goals = player_stats.goals + EXCLUDED.goals,
			assists = player_stats.assists + EXCLUDED.assists,
			yellow_cards = player_stats.yellow_cards + EXCLUDED.yellow_cards,
			red_cards = player_stats.red_cards + EXCLUDED.red_cards,
			substitutions_on = player_stats.substitutions_on + EXCLUDED.substitutions_on,
			substitutions_off = player_stats.substitutions_off + EXCLUDED.substitutions_off,
			penalties_scored = player_stats.penalties_scored + EXCLUDED.penalties_scored,
			penalties_missed = player_stats.penalties_missed + EXCLUDED.penalties_missed`

	_, err := r.db.ExecContext(ctx, query,
		competitionID, playerID, delta.Appearances, delta.Goals, delta.Assists,
		delta.YellowCards, delta.RedCards, delta.SubstitutionsOn, delta.SubstitutionsOff,
		delta.PenaltiesScored, delta.PenaltiesMissed)
	if err != nil {
		return fmt.Errorf("increment player stats: %w", err)
	}
	return nil
}

// MarkAppearance records the (match, player) pair durably so the appearance
// counter survives restarts and stays single-counted across instances.
func (r *PlayerStatsRepository) MarkAppearance(ctx context.Context, matchID, playerID string) (bool, error) {
	const query = `
		INSERT INTO match_appearances (match_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (match_id, player_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, matchID, playerID)
	if err != nil {
		return false, fmt.Errorf("mark appearance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark appearance rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *PlayerStatsRepository) Get(ctx context.Context, competitionID, playerID string) (playerstats.PlayerStats, bool, error) {
	const query = `
		SELECT competition_id, player_id, player_name, appearances, goals, assists,
			yellow_cards, red_cards, substitutions_on, substitutions_off,
			penalties_scored, penalties_missed
		FROM player_stats
		WHERE competition_id = $1 AND player_id = $2`

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, competitionID, playerID); err != nil {
		if isNotFound(err) {
			return playerstats.PlayerStats{}, false, nil
		}
		return playerstats.PlayerStats{}, false, fmt.Errorf("select player stats: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerStatsRepository) ListByCompetition(ctx context.Context, competitionID string, page, size int) ([]playerstats.PlayerStats, int, error) {
	const countQuery = `SELECT COUNT(*) FROM player_stats WHERE competition_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, competitionID); err != nil {
		return nil, 0, fmt.Errorf("count player stats: %w", err)
	}

	const query = `
		SELECT competition_id, player_id, player_name, appearances, goals, assists,
			yellow_cards, red_cards, substitutions_on, substitutions_off,
			penalties_scored, penalties_missed
		FROM player_stats
		WHERE competition_id = $1
		ORDER BY goals DESC, player_id ASC
		LIMIT $2 OFFSET $3`

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, competitionID, size, page*size); err != nil {
		return nil, 0, fmt.Errorf("select player stats page: %w", err)
	}

	out := make([]playerstats.PlayerStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

type teamStatsTableModel struct {
	TeamID        string `db:"team_id"`
	CompetitionID string `db:"competition_id"`
	TeamName      string `db:"team_name"`
	Goals         int    `db:"goals"`
	YellowCards   int    `db:"yellow_cards"`
	RedCards      int    `db:"red_cards"`
	Wins          int    `db:"wins"`
	Draws         int    `db:"draws"`
	Losses        int    `db:"losses"`
}

func (m teamStatsTableModel) toDomain() teamstats.TeamStats {
	return teamstats.TeamStats{
		TeamID:        m.TeamID,
		CompetitionID: m.CompetitionID,
		TeamName:      m.TeamName,
		Goals:         m.Goals,
		YellowCards:   m.YellowCards,
		RedCards:      m.RedCards,
		Wins:          m.Wins,
		Draws:         m.Draws,
		Losses:        m.Losses,
	}
}

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) Increment(ctx context.Context, competitionID, teamID string, delta teamstats.Delta) error {
	if delta.IsZero() {
		return nil
	}

	const query = `
		INSERT INTO team_stats (
			competition_id, team_id, goals, yellow_cards, red_cards, wins, draws, losses
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (competition_id, team_id) DO UPDATE SET
			goals = team_stats.goals + EXCLUDED.goals,
			yellow_cards = team_stats.yellow_cards + EXCLUDED.yellow_cards,
			red_cards = team_stats.red_cards + EXCLUDED.red_cards,
			wins = team_stats.wins + EXCLUDED.wins,
			draws = team_stats.draws + EXCLUDED.draws,
			losses = team_stats.losses + EXCLUDED.losses`

	_, err := r.db.ExecContext(ctx, query,
		competitionID, teamID, delta.Goals, delta.YellowCards, delta.RedCards,
		delta.Wins, delta.Draws, delta.Losses)
	if err != nil {
		return fmt.Errorf("increment team stats: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) Get(ctx context.Context, competitionID, teamID string) (teamstats.TeamStats, bool, error) {
	const query = `
		SELECT competition_id, team_id, team_name, goals, yellow_cards, red_cards,
			wins, draws, losses
		FROM team_stats
		WHERE competition_id = $1 AND team_id = $2`

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, competitionID, teamID); err != nil {
		if isNotFound(err) {
			return teamstats.TeamStats{}, false, nil
		}
		return teamstats.TeamStats{}, false, fmt.Errorf("select team stats: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamStatsRepository) ListByCompetition(ctx context.Context, competitionID string) ([]teamstats.TeamStats, error) {
	const query = `
		SELECT competition_id, team_id, team_name, goals, yellow_cards, red_cards,
			wins, draws, losses
		FROM team_stats
		WHERE competition_id = $1
		ORDER BY goals DESC, team_id ASC`

	var rows []teamStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, competitionID); err != nil {
		return nil, fmt.Errorf("select team stats: %w", err)
	}

	out := make([]teamstats.TeamStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
