package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
)

type competitionTableModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Season   string `db:"season"`
	League   []byte `db:"league"`
	Knockout []byte `db:"knockout"`
}

// CompetitionRepository stores competition phase structure as jsonb. Round
// assignment runs in a transaction with a row lock so concurrent writers
// cannot fill the same round twice.
type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	const query = `SELECT id, name, season, league, knockout FROM competitions WHERE id = $1`

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, competitionID); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("select competition by id: %w", err)
	}
	comp, err := row.toDomain()
	if err != nil {
		return competition.Competition{}, false, err
	}
	return comp, true, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, comp competition.Competition) error {
	row, err := competitionToTableModel(comp)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO competitions (id, name, season, league, knockout)
		VALUES (:id, :name, :season, :league, :knockout)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			season = EXCLUDED.season,
			league = EXCLUDED.league,
			knockout = EXCLUDED.knockout`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert competition: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) AssignMatchesToRound(ctx context.Context, competitionID string, roundNumber int, matchIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assign round tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const selectQuery = `SELECT id, name, season, league, knockout FROM competitions WHERE id = $1 FOR UPDATE`

	var row competitionTableModel
	if err := tx.GetContext(ctx, &row, selectQuery, competitionID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", competition.ErrNotFound, competitionID)
		}
		return fmt.Errorf("select competition for round assignment: %w", err)
	}

	comp, err := row.toDomain()
	if err != nil {
		return err
	}
	if comp.League == nil {
		return competition.ErrPhaseNotFound
	}

	assigned := false
	for i := range comp.League.Rounds {
		round := &comp.League.Rounds[i]
		if round.Number != roundNumber {
			continue
		}
		if len(round.MatchIDs) > 0 {
			return competition.ErrRoundNotEmpty
		}
		round.MatchIDs = append([]string(nil), matchIDs...)
		assigned = true
		break
	}
	if !assigned {
		return competition.ErrRoundNotFound
	}

	leaguePayload, err := sonic.Marshal(comp.League)
	if err != nil {
		return fmt.Errorf("encode league phase: %w", err)
	}

	const updateQuery = `UPDATE competitions SET league = $2 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, competitionID, leaguePayload); err != nil {
		return fmt.Errorf("update league phase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign round tx: %w", err)
	}
	return nil
}

func (m competitionTableModel) toDomain() (competition.Competition, error) {
	comp := competition.Competition{
		ID:     m.ID,
		Name:   m.Name,
		Season: m.Season,
	}
	if len(m.League) > 0 {
		var league competition.LeaguePhase
		if err := sonic.Unmarshal(m.League, &league); err != nil {
			return competition.Competition{}, fmt.Errorf("decode league phase: %w", err)
		}
		comp.League = &league
	}
	if len(m.Knockout) > 0 {
		var knockout competition.KnockoutPhase
		if err := sonic.Unmarshal(m.Knockout, &knockout); err != nil {
			return competition.Competition{}, fmt.Errorf("decode knockout phase: %w", err)
		}
		comp.Knockout = &knockout
	}
	return comp, nil
}

func competitionToTableModel(comp competition.Competition) (competitionTableModel, error) {
	row := competitionTableModel{
		ID:     comp.ID,
		Name:   comp.Name,
		Season: comp.Season,
	}
	if comp.League != nil {
		payload, err := sonic.Marshal(comp.League)
		if err != nil {
			return competitionTableModel{}, fmt.Errorf("encode league phase: %w", err)
		}
		row.League = payload
	}
	if comp.Knockout != nil {
		payload, err := sonic.Marshal(comp.Knockout)
		if err != nil {
			return competitionTableModel{}, fmt.Errorf("encode knockout phase: %w", err)
		}
		row.Knockout = payload
	}
	return row, nil
}

