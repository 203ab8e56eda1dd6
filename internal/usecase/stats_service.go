package usecase

import (
	"context"
	"fmt"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/playerstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/teamstats"
)

// StatsService folds stat-relevant events into per-player and per-team
// counters. Every update is a pure increment; there is no decrement path.
// Event-id dedup happens upstream in the dispatcher, so ApplyEvent trusts
// that each event reaches it at most once.
type StatsService struct {
	playerRepo playerstats.Repository
	teamRepo   teamstats.Repository
}

func NewStatsService(playerRepo playerstats.Repository, teamRepo teamstats.Repository) *StatsService {
	return &StatsService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

// ApplyEvent increments the counters the event's payload qualifies for.
// Commentary and status payloads qualify for nothing.
func (s *StatsService) ApplyEvent(ctx context.Context, m match.Match, event matchevent.MatchEvent) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ApplyEvent")
	defer span.End()

	competitionID := m.CompetitionID

	switch details := event.Details.(type) {
	case matchevent.GoalDetails:
		scorerDelta := playerstats.Delta{}
		if !details.OwnGoal {
			scorerDelta.Goals = 1
		}
		appeared, err := s.markAppearance(ctx, m.ID, details.ScorerID)
		if err != nil {
			return err
		}
		scorerDelta.Appearances = appeared
		if err := s.playerRepo.Increment(ctx, competitionID, details.ScorerID, scorerDelta); err != nil {
			return fmt.Errorf("increment scorer stats: %w", err)
		}

		if details.AssistingPlayerID != "" {
			appeared, err := s.markAppearance(ctx, m.ID, details.AssistingPlayerID)
			if err != nil {
				return err
			}
			assistDelta := playerstats.Delta{Assists: 1, Appearances: appeared}
			if err := s.playerRepo.Increment(ctx, competitionID, details.AssistingPlayerID, assistDelta); err != nil {
				return fmt.Errorf("increment assist stats: %w", err)
			}
		}

		if err := s.teamRepo.Increment(ctx, competitionID, details.TeamID, teamstats.Delta{Goals: 1}); err != nil {
			return fmt.Errorf("increment team goals: %w", err)
		}

	case matchevent.CardDetails:
		delta := playerstats.Delta{}
		teamDelta := teamstats.Delta{}
		switch details.Color {
		case matchevent.CardYellow:
			delta.YellowCards = 1
			teamDelta.YellowCards = 1
		case matchevent.CardSecondYellow:
			delta.YellowCards = 1
			delta.RedCards = 1
			teamDelta.YellowCards = 1
			teamDelta.RedCards = 1
		case matchevent.CardRed:
			delta.RedCards = 1
			teamDelta.RedCards = 1
		default:
			return fmt.Errorf("%w: unknown card color %q", ErrInvalidInput, details.Color)
		}
		appeared, err := s.markAppearance(ctx, m.ID, details.PlayerID)
		if err != nil {
			return err
		}
		delta.Appearances = appeared
		if err := s.playerRepo.Increment(ctx, competitionID, details.PlayerID, delta); err != nil {
			return fmt.Errorf("increment card stats: %w", err)
		}
		if err := s.teamRepo.Increment(ctx, competitionID, details.TeamID, teamDelta); err != nil {
			return fmt.Errorf("increment team cards: %w", err)
		}

	case matchevent.SubstitutionDetails:
		inAppeared, err := s.markAppearance(ctx, m.ID, details.PlayerInID)
		if err != nil {
			return err
		}
		inDelta := playerstats.Delta{SubstitutionsOn: 1, Appearances: inAppeared}
		if err := s.playerRepo.Increment(ctx, competitionID, details.PlayerInID, inDelta); err != nil {
			return fmt.Errorf("increment substitute-on stats: %w", err)
		}
		outAppeared, err := s.markAppearance(ctx, m.ID, details.PlayerOutID)
		if err != nil {
			return err
		}
		outDelta := playerstats.Delta{SubstitutionsOff: 1, Appearances: outAppeared}
		if err := s.playerRepo.Increment(ctx, competitionID, details.PlayerOutID, outDelta); err != nil {
			return fmt.Errorf("increment substitute-off stats: %w", err)
		}

	case matchevent.PenaltyDetails:
		appeared, err := s.markAppearance(ctx, m.ID, details.ShooterID)
		if err != nil {
			return err
		}
		delta := playerstats.Delta{Appearances: appeared}
		if details.Scored {
			delta.PenaltiesScored = 1
		} else {
			delta.PenaltiesMissed = 1
		}
		if details.Scored && details.CountAsGoal {
			delta.Goals = 1
			if err := s.teamRepo.Increment(ctx, competitionID, details.TeamID, teamstats.Delta{Goals: 1}); err != nil {
				return fmt.Errorf("increment team penalty goal: %w", err)
			}
		}
		if err := s.playerRepo.Increment(ctx, competitionID, details.ShooterID, delta); err != nil {
			return fmt.Errorf("increment penalty stats: %w", err)
		}
	}

	return nil
}

// RecordResult books the win/draw/loss counters once a match reaches a
// result-bearing status.
func (s *StatsService) RecordResult(ctx context.Context, m match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RecordResult")
	defer span.End()

	var home, away teamstats.Delta
	switch m.Result {
	case match.ResultHomeWin:
		home.Wins = 1
		away.Losses = 1
	case match.ResultAwayWin:
		away.Wins = 1
		home.Losses = 1
	case match.ResultDraw:
		home.Draws = 1
		away.Draws = 1
	default:
		return nil
	}

	if err := s.teamRepo.Increment(ctx, m.CompetitionID, m.HomeTeamID, home); err != nil {
		return fmt.Errorf("record home team result: %w", err)
	}
	if err := s.teamRepo.Increment(ctx, m.CompetitionID, m.AwayTeamID, away); err != nil {
		return fmt.Errorf("record away team result: %w", err)
	}
	return nil
}

type PagedPlayerStats struct {
	Items      []playerstats.PlayerStats `json:"items"`
	Page       int                       `json:"page"`
	Size       int                       `json:"size"`
	TotalItems int                       `json:"totalItems"`
}

func (s *StatsService) ListPlayerStats(ctx context.Context, competitionID string, page, size int) (PagedPlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListPlayerStats")
	defer span.End()

	if competitionID == "" {
		return PagedPlayerStats{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if page < 0 {
		return PagedPlayerStats{}, fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}
	if size <= 0 || size > 100 {
		size = 25
	}

	items, total, err := s.playerRepo.ListByCompetition(ctx, competitionID, page, size)
	if err != nil {
		return PagedPlayerStats{}, fmt.Errorf("list player stats: %w", err)
	}
	return PagedPlayerStats{Items: items, Page: page, Size: size, TotalItems: total}, nil
}

func (s *StatsService) ListTeamStats(ctx context.Context, competitionID string) ([]teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListTeamStats")
	defer span.End()

	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	items, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}
	return items, nil
}

// markAppearance returns 1 the first time a player is seen in a match. The
// repository keeps that record alongside the counters, so the answer stays
// correct across restarts and instances.
func (s *StatsService) markAppearance(ctx context.Context, matchID, playerID string) (int, error) {
	if playerID == "" {
		return 0, nil
	}

	first, err := s.playerRepo.MarkAppearance(ctx, matchID, playerID)
	if err != nil {
		return 0, fmt.Errorf("mark appearance: %w", err)
	}
	if !first {
		return 0, nil
	}
	return 1, nil
}
