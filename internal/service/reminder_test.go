package service

import (
	"context"
	"testing"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

var reminderTestNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func newTestReminderService() *ReminderService {
	svc := NewReminderService(
		repository.NewReminderRepository(nil),
		repository.NewUserRepository(nil),
		nil,
	)
	svc.now = func() time.Time { return reminderTestNow }
	return svc
}

func TestReminderCreate_EmptyTitle(t *testing.T) {
	svc := newTestReminderService()

	_, err := svc.Create(context.Background(), 1, model.ReminderRequest{
		Title:    "",
		RemindAt: reminderTestNow.Add(time.Hour),
	})

	if err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestReminderCreate_MissingRemindAt(t *testing.T) {
	svc := newTestReminderService()

	_, err := svc.Create(context.Background(), 1, model.ReminderRequest{
		Title: "pay bill",
	})

	if err != ErrRemindAtRequired {
		t.Errorf("expected ErrRemindAtRequired, got %v", err)
	}
}

func TestReminderCreate_PastRemindAt(t *testing.T) {
	svc := newTestReminderService()

	_, err := svc.Create(context.Background(), 1, model.ReminderRequest{
		Title:    "pay bill",
		RemindAt: reminderTestNow.Add(-time.Minute),
	})

	if err != ErrRemindAtPast {
		t.Errorf("expected ErrRemindAtPast, got %v", err)
	}
}

func TestReminderUpdate_EmptyTitle(t *testing.T) {
	svc := newTestReminderService()

	_, err := svc.Update(context.Background(), 1, 42, model.ReminderRequest{
		Title:    "",
		RemindAt: reminderTestNow.Add(time.Hour),
	})

	if err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}
