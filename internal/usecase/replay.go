package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

// ReplayMatchStats re-derives a match's derived state by folding its event
// log, in application order, into the given stats service. The fold
// bypasses the append-dedup path, so the counters it writes to — including
// the appearance records — must start from empty state. This is the
// correction path: when a bad event reached the aggregates, truncate the
// counters and fold the log again.
//
// The rebuilt match state is upserted and returned.
func ReplayMatchStats(
	ctx context.Context,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	stats *StatsService,
	matchID string,
) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReplayMatchStats")
	defer span.End()

	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match for replay: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	events, err := eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list events for replay: %w", err)
	}

	// The log is the source of truth; everything derived resets first.
	m.Status = match.StatusNotStarted
	m.Result = match.ResultNone
	m.HomeGoals, m.AwayGoals = 0, 0
	m.HomeShootoutGoals, m.AwayShootoutGoals = 0, 0

	for _, event := range events {
		switch details := event.Details.(type) {
		case matchevent.StatusDetails:
			if err := m.ApplyStatus(details.TargetStatus); err != nil {
				return m, fmt.Errorf("replay status event %s: %w", event.ID, err)
			}
			if m.Status.IsResultBearing() {
				if err := stats.RecordResult(ctx, m); err != nil {
					return m, fmt.Errorf("replay result after event %s: %w", event.ID, err)
				}
			}
		case matchevent.GoalDetails:
			if err := tallyGoal(&m, details.TeamID); err != nil {
				return m, fmt.Errorf("replay goal event %s: %w", event.ID, err)
			}
			if err := stats.ApplyEvent(ctx, m, event); err != nil {
				return m, fmt.Errorf("replay event %s: %w", event.ID, err)
			}
		case matchevent.PenaltyDetails:
			if err := tallyPenalty(&m, details); err != nil {
				return m, fmt.Errorf("replay penalty event %s: %w", event.ID, err)
			}
			if err := stats.ApplyEvent(ctx, m, event); err != nil {
				return m, fmt.Errorf("replay event %s: %w", event.ID, err)
			}
		case matchevent.CardDetails, matchevent.SubstitutionDetails:
			if err := stats.ApplyEvent(ctx, m, event); err != nil {
				return m, fmt.Errorf("replay event %s: %w", event.ID, err)
			}
		case matchevent.CommentaryDetails:
			// Log-only; nothing to rebuild.
		default:
			return m, errors.Wrapf(matchevent.ErrUnknownEventType, "%T", event.Details)
		}
	}

	if err := matchRepo.Upsert(ctx, m); err != nil {
		return m, fmt.Errorf("store replayed match: %w", err)
	}
	return m, nil
}

func tallyGoal(m *match.Match, teamID string) error {
	switch teamID {
	case m.HomeTeamID:
		m.HomeGoals++
	case m.AwayTeamID:
		m.AwayGoals++
	default:
		return fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, teamID, m.ID)
	}
	return nil
}

func tallyPenalty(m *match.Match, details matchevent.PenaltyDetails) error {
	if !details.Scored {
		return nil
	}
	if details.CountAsGoal {
		return tallyGoal(m, details.TeamID)
	}
	switch details.TeamID {
	case m.HomeTeamID:
		m.HomeShootoutGoals++
	case m.AwayTeamID:
		m.AwayShootoutGoals++
	default:
		return fmt.Errorf("%w: team %s does not play in match %s", ErrInvalidInput, details.TeamID, m.ID)
	}
	return nil
}
