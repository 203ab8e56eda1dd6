package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
)

type mockMatchRepository struct {
	mock.Mock
}

func (m *mockMatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *mockMatchRepository) ListByIDs(ctx context.Context, matchIDs []string) ([]match.Match, error) {
	args := m.Called(ctx, matchIDs)
	return args.Get(0).([]match.Match), args.Error(1)
}

func (m *mockMatchRepository) Upsert(ctx context.Context, mt match.Match) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Insert(ctx context.Context, event matchevent.MatchEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.MatchEvent, error) {
	args := m.Called(ctx, matchID)
	return args.Get(0).([]matchevent.MatchEvent), args.Error(1)
}

func TestMatchService_GetMatch_SuccessUsingMock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := &mockMatchRepository{}
	eventRepo := &mockEventRepository{}
	service := NewMatchService(matchRepo, eventRepo)

	expected := match.Match{
		ID:            "m-idn-001",
		CompetitionID: "idn-liga-1-2025",
		HomeTeamID:    "team-persija",
		AwayTeamID:    "team-persib",
		Status:        match.StatusFirstHalf,
		KickoffAt:     time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC),
	}

	matchRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), expected.ID).
		Return(expected, true, nil).
		Once()

	got, err := service.GetMatch(ctx, expected.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.ID != expected.ID {
		t.Fatalf("unexpected match id: got=%s want=%s", got.ID, expected.ID)
	}
	if got.Status != match.StatusFirstHalf {
		t.Fatalf("unexpected status: %s", got.Status)
	}
	matchRepo.AssertExpectations(t)
}

func TestMatchService_ListMatchEvents_RepoErrorUsingMock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := &mockMatchRepository{}
	eventRepo := &mockEventRepository{}
	service := NewMatchService(matchRepo, eventRepo)

	repoErr := errors.New("connection reset")
	matchRepo.
		On("GetByID", mock.Anything, "m-idn-001").
		Return(match.Match{ID: "m-idn-001"}, true, nil).
		Once()
	eventRepo.
		On("ListByMatch", mock.Anything, "m-idn-001").
		Return([]matchevent.MatchEvent(nil), repoErr).
		Once()

	if _, err := service.ListMatchEvents(ctx, "m-idn-001"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	eventRepo.AssertExpectations(t)
}
