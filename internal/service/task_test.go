package service

import (
	"context"
	"errors"
	"testing"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

func newTestTaskService() *TaskService {
	return NewTaskService(repository.NewTaskRepository(nil))
}

func TestTaskCreate_EmptyTitle(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Create(context.Background(), 1, model.TaskRequest{
		Title: "",
	})

	if err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestTaskCreate_InvalidStatus(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Create(context.Background(), 1, model.TaskRequest{
		Title:  "write report",
		Status: "DONE",
	})

	if !errors.Is(err, model.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTaskCreate_InvalidPriority(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Create(context.Background(), 1, model.TaskRequest{
		Title:    "write report",
		Priority: "URGENT",
	})

	if !errors.Is(err, model.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskCreate_InvalidDueDate(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Create(context.Background(), 1, model.TaskRequest{
		Title:   "write report",
		DueDate: "28-08-2026",
	})

	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTaskUpdate_EmptyTitle(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Update(context.Background(), 1, 42, model.TaskRequest{
		Title: "",
	})

	if err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestTaskUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.UpdateStatus(context.Background(), 1, 42, "FINISHED")

	if !errors.Is(err, model.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTaskGetByDueDate_InvalidDate(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.GetByDueDate(context.Background(), 1, "not-a-date")

	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseOptionalDate_Empty(t *testing.T) {
	date, err := parseOptionalDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != nil {
		t.Errorf("expected nil date for empty input, got %v", date)
	}
}

func TestParseOptionalDate_Valid(t *testing.T) {
	date, err := parseOptionalDate("2026-08-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date == nil || date.Year() != 2026 || date.Month() != 8 || date.Day() != 28 {
		t.Errorf("unexpected date: %v", date)
	}
}
