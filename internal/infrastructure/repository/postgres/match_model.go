package postgres

import (
	"time"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
)

type matchTableModel struct {
	ID                string    `db:"id"`
	CompetitionID     string    `db:"competition_id"`
	HomeTeamID        string    `db:"home_team_id"`
	AwayTeamID        string    `db:"away_team_id"`
	HomeTeamName      string    `db:"home_team_name"`
	AwayTeamName      string    `db:"away_team_name"`
	VenueID           string    `db:"venue_id"`
	RefereeID         string    `db:"referee_id"`
	KickoffAt         time.Time `db:"kickoff_at"`
	Status            string    `db:"status"`
	Result            string    `db:"result"`
	HomeGoals         int       `db:"home_goals"`
	AwayGoals         int       `db:"away_goals"`
	HomeShootoutGoals int       `db:"home_shootout_goals"`
	AwayShootoutGoals int       `db:"away_shootout_goals"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:                m.ID,
		CompetitionID:     m.CompetitionID,
		HomeTeamID:        m.HomeTeamID,
		AwayTeamID:        m.AwayTeamID,
		HomeTeamName:      m.HomeTeamName,
		AwayTeamName:      m.AwayTeamName,
		VenueID:           m.VenueID,
		RefereeID:         m.RefereeID,
		KickoffAt:         m.KickoffAt,
		Status:            match.Status(m.Status),
		Result:            match.Result(m.Result),
		HomeGoals:         m.HomeGoals,
		AwayGoals:         m.AwayGoals,
		HomeShootoutGoals: m.HomeShootoutGoals,
		AwayShootoutGoals: m.AwayShootoutGoals,
	}
}

func matchToTableModel(m match.Match) matchTableModel {
	return matchTableModel{
		ID:                m.ID,
		CompetitionID:     m.CompetitionID,
		HomeTeamID:        m.HomeTeamID,
		AwayTeamID:        m.AwayTeamID,
		HomeTeamName:      m.HomeTeamName,
		AwayTeamName:      m.AwayTeamName,
		VenueID:           m.VenueID,
		RefereeID:         m.RefereeID,
		KickoffAt:         m.KickoffAt,
		Status:            string(m.Status),
		Result:            string(m.Result),
		HomeGoals:         m.HomeGoals,
		AwayGoals:         m.AwayGoals,
		HomeShootoutGoals: m.HomeShootoutGoals,
		AwayShootoutGoals: m.AwayShootoutGoals,
	}
}
