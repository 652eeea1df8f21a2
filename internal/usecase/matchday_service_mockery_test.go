package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	matchdaymock "github.com/jmlarios/fantasy-football-tracker/internal/mocks/domain/matchday"
)

func TestMatchdayService_Status_OpenWindowUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := matchdaymock.NewRepository(t)
	service := NewMatchdayService(repo)

	md := matchday.Matchday{
		ID:       "md-10",
		Number:   10,
		Season:   "2025/2026",
		Deadline: time.Now().UTC().Add(2 * time.Hour),
		IsActive: true,
	}
	repo.
		On("GetByNumber", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "2025/2026", 10).
		Return(md, true, nil).
		Once()

	status, err := service.Status(ctx, "2025/2026", 10)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.TransfersOpen {
		t.Fatalf("expected transfers open before the deadline")
	}
	if status.Countdown == "" {
		t.Fatalf("expected a countdown while the window is open")
	}
}

func TestMatchdayService_Status_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := matchdaymock.NewRepository(t)
	service := NewMatchdayService(repo)

	repo.
		On("GetByNumber", mock.Anything, "2025/2026", 99).
		Return(matchday.Matchday{}, false, nil).
		Once()

	_, err := service.Status(ctx, "2025/2026", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchdayService_CurrentWindow_FallsBackToNextUnfinishedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := matchdaymock.NewRepository(t)
	service := NewMatchdayService(repo)

	next := matchday.Matchday{ID: "md-11", Number: 11, Season: "2025/2026"}
	repo.
		On("GetActive", mock.Anything).
		Return(matchday.Matchday{}, false, nil).
		Once()
	repo.
		On("GetNextUnfinished", mock.Anything).
		Return(next, true, nil).
		Once()

	got, err := service.CurrentWindow(ctx)
	if err != nil {
		t.Fatalf("current window: %v", err)
	}
	if got.ID != next.ID {
		t.Fatalf("expected matchday %s, got %s", next.ID, got.ID)
	}
}
