package service

import (
	"context"
	"testing"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

func newTestScheduleService() *ScheduleService {
	return NewScheduleService(repository.NewScheduleRepository(nil))
}

func TestScheduleCreate_EmptyTitle(t *testing.T) {
	svc := newTestScheduleService()

	_, err := svc.Create(context.Background(), 1, model.ScheduleRequest{
		Title:     "",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
	})

	if err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestScheduleCreate_MissingTimes(t *testing.T) {
	svc := newTestScheduleService()

	_, err := svc.Create(context.Background(), 1, model.ScheduleRequest{
		Title: "standup",
	})

	if err != ErrTimesRequired {
		t.Errorf("expected ErrTimesRequired, got %v", err)
	}
}

func TestScheduleCreate_EndBeforeStart(t *testing.T) {
	svc := newTestScheduleService()
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), 1, model.ScheduleRequest{
		Title:     "standup",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})

	if err != ErrEndBeforeStart {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestScheduleUpdate_EndBeforeStart(t *testing.T) {
	svc := newTestScheduleService()
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	_, err := svc.Update(context.Background(), 1, 42, model.ScheduleRequest{
		Title:     "standup",
		StartTime: start,
		EndTime:   start.Add(-time.Minute),
	})

	if err != ErrEndBeforeStart {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestScheduleGetByDateRange_InvalidStart(t *testing.T) {
	svc := newTestScheduleService()

	_, err := svc.GetByDateRange(context.Background(), 1, "yesterday", "2026-08-28")

	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestScheduleGetByDateRange_InvalidEnd(t *testing.T) {
	svc := newTestScheduleService()

	_, err := svc.GetByDateRange(context.Background(), 1, "2026-08-28", "")

	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, 8, 28, 15, 42, 7, 0, time.UTC)

	start, end := dayBounds(at)

	if !start.Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %v", end)
	}
}
