package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/standings"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/cache"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/resilience"
)

// StandingsService recomputes ranked tables on demand from result-bearing
// matches. Reads fold over repository snapshots, so they may run while lanes
// keep applying events.
type StandingsService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	store           *cache.Store
	flight          resilience.SingleFlight
	logger          *logging.Logger
}

func NewStandingsService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		store:           store,
		logger:          logger,
	}
}

func standingsCacheKey(competitionID string) string {
	return "standings:" + competitionID
}

// GetStandings folds the whole league phase into one table. Rounds are
// fetched concurrently; the merge is order-independent.
func (s *StandingsService) GetStandings(ctx context.Context, competitionID string) ([]standings.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetStandings")
	defer span.End()

	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	key := standingsCacheKey(competitionID)
	if s.store != nil {
		if cached, ok := s.store.Get(ctx, key); ok {
			if table, ok := cached.([]standings.Entry); ok {
				return table, nil
			}
		}
	}

	computed, err, _ := s.flight.Do(key, func() (any, error) {
		table, err := s.computeStandings(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		if s.store != nil {
			s.store.Set(ctx, key, table)
		}
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return computed.([]standings.Entry), nil
}

// GetRoundStandings folds one league round.
func (s *StandingsService) GetRoundStandings(ctx context.Context, competitionID string, roundNumber int) ([]standings.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetRoundStandings")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	round, err := comp.LeagueRound(roundNumber)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByIDs(ctx, round.MatchIDs)
	if err != nil {
		return nil, fmt.Errorf("list round matches: %w", err)
	}
	return standings.Compute(matches), nil
}

// InvalidateCompetition drops the cached table. The dispatcher calls this
// whenever a match of the competition becomes result-bearing.
func (s *StandingsService) InvalidateCompetition(ctx context.Context, competitionID string) {
	if s.store == nil || competitionID == "" {
		return
	}
	s.store.Delete(ctx, standingsCacheKey(competitionID))
}

func (s *StandingsService) computeStandings(ctx context.Context, competitionID string) ([]standings.Entry, error) {
	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if comp.League == nil {
		return nil, fmt.Errorf("standings for competition %s: %w", competitionID, competition.ErrPhaseNotFound)
	}

	workers := pool.NewWithResults[[]standings.Entry]().WithContext(ctx)
	for _, round := range comp.League.Rounds {
		round := round
		workers.Go(func(ctx context.Context) ([]standings.Entry, error) {
			matches, err := s.matchRepo.ListByIDs(ctx, round.MatchIDs)
			if err != nil {
				return nil, fmt.Errorf("list matches of round %d: %w", round.Number, err)
			}
			return standings.Compute(matches), nil
		})
	}

	tables, err := workers.Wait()
	if err != nil {
		return nil, err
	}
	return standings.Merge(tables...), nil
}

func (s *StandingsService) getCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	comp, found, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !found {
		return competition.Competition{}, fmt.Errorf("%w: competition %s", ErrNotFound, competitionID)
	}
	return comp, nil
}
