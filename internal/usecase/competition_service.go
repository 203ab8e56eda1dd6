package usecase

import (
	"context"
	"fmt"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
)

// CompetitionService manages round/phase structure: bulk match assignment
// into league rounds and knockout bracket resolution.
type CompetitionService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	logger          *logging.Logger
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *CompetitionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		logger:          logger,
	}
}

func (s *CompetitionService) GetCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetCompetition")
	defer span.End()

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

// AssignMatchesToRound bulk-assigns a batch atomically. A round accepts a
// batch only while empty; any failure leaves the round untouched.
func (s *CompetitionService) AssignMatchesToRound(ctx context.Context, competitionID string, roundNumber int, matchIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.AssignMatchesToRound")
	defer span.End()

	if competitionID == "" {
		return fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if len(matchIDs) == 0 {
		return fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		if id == "" {
			return fmt.Errorf("%w: empty match id in batch", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate match id %s in batch", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	comp, err := s.GetCompetition(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp.League == nil {
		return fmt.Errorf("round assignment for competition %s: %w", competitionID, competition.ErrPhaseNotFound)
	}

	matches, err := s.matchRepo.ListByIDs(ctx, matchIDs)
	if err != nil {
		return fmt.Errorf("list matches for assignment: %w", err)
	}
	if len(matches) != len(matchIDs) {
		return fmt.Errorf("%w: %d of %d matches do not exist", ErrNotFound, len(matchIDs)-len(matches), len(matchIDs))
	}

	if err := s.competitionRepo.AssignMatchesToRound(ctx, competitionID, roundNumber, matchIDs); err != nil {
		return fmt.Errorf("assign matches to round %d: %w", roundNumber, err)
	}

	s.logger.InfoContext(ctx, "matches assigned to round",
		"competition_id", competitionID,
		"round", roundNumber,
		"match_count", len(matchIDs),
	)
	return nil
}

// ResolvedTie is a knockout pairing with its legs folded into an outcome.
type ResolvedTie struct {
	competition.Tie
	HomeAggregate int    `json:"homeAggregate"`
	AwayAggregate int    `json:"awayAggregate"`
	ShootoutHome  int    `json:"shootoutHome"`
	ShootoutAway  int    `json:"shootoutAway"`
	Decided       bool   `json:"decided"`
	WinnerTeamID  string `json:"winnerTeamId,omitempty"`
}

type ResolvedStage struct {
	Name string        `json:"name"`
	Ties []ResolvedTie `json:"ties"`
}

// GetKnockoutBracket resolves every tie of the knockout phase: two-legged
// aggregate first, then the shootout tally of the deciding leg.
func (s *CompetitionService) GetKnockoutBracket(ctx context.Context, competitionID string) ([]ResolvedStage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetKnockoutBracket")
	defer span.End()

	comp, err := s.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if comp.Knockout == nil {
		return nil, fmt.Errorf("knockout bracket for competition %s: %w", competitionID, competition.ErrPhaseNotFound)
	}

	stages := make([]ResolvedStage, 0, len(comp.Knockout.Stages))
	for _, stage := range comp.Knockout.Stages {
		resolved := ResolvedStage{Name: stage.Name, Ties: make([]ResolvedTie, 0, len(stage.Ties))}
		for _, tie := range stage.Ties {
			rt, err := s.resolveTie(ctx, tie)
			if err != nil {
				return nil, fmt.Errorf("resolve tie %s vs %s: %w", tie.HomeTeamID, tie.AwayTeamID, err)
			}
			resolved.Ties = append(resolved.Ties, rt)
		}
		stages = append(stages, resolved)
	}
	return stages, nil
}

func (s *CompetitionService) resolveTie(ctx context.Context, tie competition.Tie) (ResolvedTie, error) {
	resolved := ResolvedTie{Tie: tie}

	firstLeg, found, err := s.matchRepo.GetByID(ctx, tie.FirstLegID)
	if err != nil {
		return resolved, fmt.Errorf("get first leg: %w", err)
	}
	if !found {
		return resolved, fmt.Errorf("%w: match %s", ErrNotFound, tie.FirstLegID)
	}

	decidingLeg := firstLeg
	resolved.HomeAggregate = firstLeg.HomeGoals
	resolved.AwayAggregate = firstLeg.AwayGoals
	legsFinished := firstLeg.Status.IsResultBearing()

	if tie.TwoLegged() {
		secondLeg, found, err := s.matchRepo.GetByID(ctx, tie.SecondLegID)
		if err != nil {
			return resolved, fmt.Errorf("get second leg: %w", err)
		}
		if !found {
			return resolved, fmt.Errorf("%w: match %s", ErrNotFound, tie.SecondLegID)
		}
		// The second leg swaps home and away.
		resolved.HomeAggregate += secondLeg.AwayGoals
		resolved.AwayAggregate += secondLeg.HomeGoals
		legsFinished = legsFinished && secondLeg.Status.IsResultBearing()
		decidingLeg = secondLeg
	}

	if !legsFinished {
		return resolved, nil
	}
	resolved.Decided = true

	switch {
	case resolved.HomeAggregate > resolved.AwayAggregate:
		resolved.WinnerTeamID = tie.HomeTeamID
	case resolved.HomeAggregate < resolved.AwayAggregate:
		resolved.WinnerTeamID = tie.AwayTeamID
	default:
		resolved.ShootoutHome, resolved.ShootoutAway = shootoutFor(tie, decidingLeg)
		switch {
		case resolved.ShootoutHome > resolved.ShootoutAway:
			resolved.WinnerTeamID = tie.HomeTeamID
		case resolved.ShootoutHome < resolved.ShootoutAway:
			resolved.WinnerTeamID = tie.AwayTeamID
		default:
			resolved.Decided = false
		}
	}
	return resolved, nil
}

// shootoutFor maps the deciding leg's shootout tallies back onto the tie's
// home/away orientation.
func shootoutFor(tie competition.Tie, decidingLeg match.Match) (home, away int) {
	if decidingLeg.HomeTeamID == tie.HomeTeamID {
		return decidingLeg.HomeShootoutGoals, decidingLeg.AwayShootoutGoals
	}
	return decidingLeg.AwayShootoutGoals, decidingLeg.HomeShootoutGoals
}
