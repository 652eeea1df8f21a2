package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/memory"
)

func TestMatchdayService_Status_OpenWindow(t *testing.T) {
	store := memory.SeedStore()
	service := NewMatchdayService(memory.NewMatchdayRepository(store))
	service.now = func() time.Time { return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC) }

	status, err := service.Status(t.Context(), memory.SeedSeason, 2)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.TransfersOpen {
		t.Fatalf("expected transfers open before the deadline")
	}
	if status.Countdown != "2d 6h" {
		t.Fatalf("expected countdown 2d 6h, got %q", status.Countdown)
	}
}

func TestMatchdayService_Status_LockedWindow(t *testing.T) {
	store := memory.SeedStore()
	service := NewMatchdayService(memory.NewMatchdayRepository(store))
	service.now = func() time.Time { return time.Date(2025, 8, 22, 19, 0, 0, 0, time.UTC) }

	status, err := service.Status(t.Context(), memory.SeedSeason, 2)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.TransfersOpen {
		t.Fatalf("expected transfers locked at the deadline")
	}
	if status.Countdown != "deadline passed" {
		t.Fatalf("expected deadline passed sentinel, got %q", status.Countdown)
	}
}

func TestMatchdayService_Status_NotFound(t *testing.T) {
	store := memory.SeedStore()
	service := NewMatchdayService(memory.NewMatchdayRepository(store))

	_, err := service.Status(t.Context(), memory.SeedSeason, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchdayService_CurrentWindow_PrefersActive(t *testing.T) {
	store := memory.SeedStore()
	service := NewMatchdayService(memory.NewMatchdayRepository(store))

	window, err := service.CurrentWindow(t.Context())
	if err != nil {
		t.Fatalf("current window failed: %v", err)
	}
	if window.Number != 2 {
		t.Fatalf("expected active matchday 2, got %d", window.Number)
	}
}

func TestMatchdayService_RefreshStatuses(t *testing.T) {
	store := memory.SeedStore()
	repo := memory.NewMatchdayRepository(store)
	service := NewMatchdayService(repo)
	service.now = func() time.Time { return time.Date(2025, 8, 26, 10, 0, 0, 0, time.UTC) }

	changes, err := service.RefreshStatuses(t.Context(), memory.SeedSeason)
	if err != nil {
		t.Fatalf("refresh statuses failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 status change, got %d: %+v", len(changes), changes)
	}
	change := changes[0]
	if change.Number != 2 || !change.NowFinished || change.NowActive {
		t.Fatalf("expected matchday 2 to finish, got %+v", change)
	}

	md, found, err := repo.GetByNumber(t.Context(), memory.SeedSeason, 2)
	if err != nil || !found {
		t.Fatalf("get matchday 2: found=%v err=%v", found, err)
	}
	if !md.IsFinished || md.IsActive {
		t.Fatalf("expected matchday 2 finished and inactive, got %+v", md)
	}
}
