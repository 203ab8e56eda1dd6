package usecase

import (
	"context"
	"fmt"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

// MatchService serves the read side of the match aggregate.
type MatchService struct {
	matchRepo match.Repository
	eventRepo matchevent.Repository
}

func NewMatchService(matchRepo match.Repository, eventRepo matchevent.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		eventRepo: eventRepo,
	}
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return m, nil
}

// ListMatchEvents returns the match's event log in application order.
func (s *MatchService) ListMatchEvents(ctx context.Context, matchID string) ([]matchevent.MatchEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatchEvents")
	defer span.End()

	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}
	return events, nil
}
