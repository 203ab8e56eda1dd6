package memory

import (
	"time"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
)

const (
	CompetitionIDLiga1Indonesia = "idn-liga-1-2025"
	CompetitionIDPialaIndonesia = "idn-piala-indonesia-2025"
)

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:     CompetitionIDLiga1Indonesia,
			Name:   "Liga 1 Indonesia",
			Season: "2025/2026",
			League: &competition.LeaguePhase{
				Rounds: []competition.Round{
					{Number: 1, MatchIDs: []string{"m-idn-001", "m-idn-002"}},
					{Number: 2, MatchIDs: []string{"m-idn-003", "m-idn-004"}},
					{Number: 3},
				},
			},
		},
		{
			ID:     CompetitionIDPialaIndonesia,
			Name:   "Piala Indonesia",
			Season: "2025/2026",
			Knockout: &competition.KnockoutPhase{
				Stages: []competition.Stage{
					{
						Name: "SEMI_FINAL",
						Ties: []competition.Tie{
							{HomeTeamID: "idn-persija", AwayTeamID: "idn-persebaya", FirstLegID: "m-cup-001", SecondLegID: "m-cup-003"},
							{HomeTeamID: "idn-persib", AwayTeamID: "idn-baliutd", FirstLegID: "m-cup-002", SecondLegID: "m-cup-004"},
						},
					},
					{
						Name: "FINAL",
						Ties: []competition.Tie{
							{FirstLegID: "m-cup-005"},
						},
					},
				},
			},
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:            "m-idn-001",
			CompetitionID: CompetitionIDLiga1Indonesia,
			HomeTeamID:    "idn-persija",
			AwayTeamID:    "idn-persib",
			HomeTeamName:  "Persija Jakarta",
			AwayTeamName:  "Persib Bandung",
			VenueID:       "venue-jis",
			KickoffAt:     time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-idn-002",
			CompetitionID: CompetitionIDLiga1Indonesia,
			HomeTeamID:    "idn-persebaya",
			AwayTeamID:    "idn-baliutd",
			HomeTeamName:  "Persebaya Surabaya",
			AwayTeamName:  "Bali United",
			VenueID:       "venue-gbt",
			KickoffAt:     time.Date(2026, 2, 15, 12, 30, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-idn-003",
			CompetitionID: CompetitionIDLiga1Indonesia,
			HomeTeamID:    "idn-persib",
			AwayTeamID:    "idn-persebaya",
			HomeTeamName:  "Persib Bandung",
			AwayTeamName:  "Persebaya Surabaya",
			VenueID:       "venue-gbla",
			KickoffAt:     time.Date(2026, 2, 21, 12, 30, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-idn-004",
			CompetitionID: CompetitionIDLiga1Indonesia,
			HomeTeamID:    "idn-baliutd",
			AwayTeamID:    "idn-persija",
			HomeTeamName:  "Bali United",
			AwayTeamName:  "Persija Jakarta",
			VenueID:       "venue-dipta",
			KickoffAt:     time.Date(2026, 2, 22, 12, 30, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-cup-001",
			CompetitionID: CompetitionIDPialaIndonesia,
			HomeTeamID:    "idn-persija",
			AwayTeamID:    "idn-persebaya",
			HomeTeamName:  "Persija Jakarta",
			AwayTeamName:  "Persebaya Surabaya",
			VenueID:       "venue-jis",
			KickoffAt:     time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-cup-002",
			CompetitionID: CompetitionIDPialaIndonesia,
			HomeTeamID:    "idn-persib",
			AwayTeamID:    "idn-baliutd",
			HomeTeamName:  "Persib Bandung",
			AwayTeamName:  "Bali United",
			VenueID:       "venue-gbla",
			KickoffAt:     time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-cup-003",
			CompetitionID: CompetitionIDPialaIndonesia,
			HomeTeamID:    "idn-persebaya",
			AwayTeamID:    "idn-persija",
			HomeTeamName:  "Persebaya Surabaya",
			AwayTeamName:  "Persija Jakarta",
			VenueID:       "venue-gbt",
			KickoffAt:     time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-cup-004",
			CompetitionID: CompetitionIDPialaIndonesia,
			HomeTeamID:    "idn-baliutd",
			AwayTeamID:    "idn-persib",
			HomeTeamName:  "Bali United",
			AwayTeamName:  "Persib Bandung",
			VenueID:       "venue-dipta",
			KickoffAt:     time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
		{
			ID:            "m-cup-005",
			CompetitionID: CompetitionIDPialaIndonesia,
			HomeTeamName:  "TBD",
			AwayTeamName:  "TBD",
			VenueID:       "venue-gbk",
			KickoffAt:     time.Date(2026, 3, 28, 19, 0, 0, 0, time.UTC),
			Status:        match.StatusNotStarted,
			Result:        match.ResultNone,
		},
	}
}
