// Package standings computes league tables. Tables are derived state: they
// are recomputed from result-bearing matches and never hand-edited.
package standings

import (
	"sort"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// Entry is one ranked table row.
type Entry struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// Compute folds result-bearing matches into a ranked table. Fixtures (matches
// without a result) contribute nothing. The fold is order-independent and the
// final ordering is total: points desc, goal difference desc, goals-for desc,
// team name asc.
func Compute(matches []match.Match) []Entry {
	index := make(map[string]*Entry)

	row := func(teamID, teamName string) *Entry {
		if entry, ok := index[teamID]; ok {
			return entry
		}
		entry := &Entry{TeamID: teamID, TeamName: teamName}
		index[teamID] = entry
		return entry
	}

	for _, m := range matches {
		if !m.Status.IsResultBearing() {
			continue
		}

		home := row(m.HomeTeamID, m.HomeTeamName)
		away := row(m.AwayTeamID, m.AwayTeamName)

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals

		switch m.Result {
		case match.ResultHomeWin:
			home.Won++
			home.Points += pointsPerWin
			away.Lost++
		case match.ResultAwayWin:
			away.Won++
			away.Points += pointsPerWin
			home.Lost++
		case match.ResultDraw:
			home.Drawn++
			away.Drawn++
			home.Points += pointsPerDraw
			away.Points += pointsPerDraw
		}
	}

	return rank(index)
}

// Merge sums per-round tables into one. Positions of the inputs are
// ignored; the merged table is re-ranked.
func Merge(tables ...[]Entry) []Entry {
	index := make(map[string]*Entry)
	for _, table := range tables {
		for _, entry := range table {
			acc, ok := index[entry.TeamID]
			if !ok {
				copied := entry
				copied.Position = 0
				copied.GoalDifference = 0
				index[entry.TeamID] = &copied
				continue
			}
			acc.Played += entry.Played
			acc.Won += entry.Won
			acc.Drawn += entry.Drawn
			acc.Lost += entry.Lost
			acc.GoalsFor += entry.GoalsFor
			acc.GoalsAgainst += entry.GoalsAgainst
			acc.Points += entry.Points
		}
	}
	return rank(index)
}

func rank(index map[string]*Entry) []Entry {
	table := make([]Entry, 0, len(index))
	for _, entry := range index {
		entry.GoalDifference = entry.GoalsFor - entry.GoalsAgainst
		table = append(table, *entry)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].GoalDifference != table[j].GoalDifference {
			return table[i].GoalDifference > table[j].GoalDifference
		}
		if table[i].GoalsFor != table[j].GoalsFor {
			return table[i].GoalsFor > table[j].GoalsFor
		}
		return table[i].TeamName < table[j].TeamName
	})

	for i := range table {
		table[i].Position = i + 1
	}
	return table
}
