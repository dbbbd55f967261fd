package service

import (
	"testing"

	"github.com/plannerhq/planner-go/internal/model"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"zero total", 0, 0, 0},
		{"nothing completed", 0, 10, 0},
		{"partial", 3, 10, 30},
		{"all completed", 10, 10, 100},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completionRate(tt.completed, tt.total); got != tt.want {
				t.Errorf("completionRate(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestBuildOverallStats(t *testing.T) {
	tasks := model.TaskStats{
		TotalTasks:      10,
		PendingTasks:    4,
		InProgressTasks: 2,
		CompletedTasks:  4,
	}
	schedules := model.ScheduleStats{TotalSchedules: 5}
	reminders := model.ReminderStats{
		TotalReminders:     5,
		PendingReminders:   2,
		DeliveredReminders: 3,
	}

	stats := buildOverallStats(tasks, schedules, reminders)

	if stats.TotalItems != 20 {
		t.Errorf("expected 20 total items, got %d", stats.TotalItems)
	}
	if stats.CompletedItems != 7 {
		t.Errorf("expected 7 completed items, got %d", stats.CompletedItems)
	}
	if stats.PendingItems != 13 {
		t.Errorf("expected 13 pending items, got %d", stats.PendingItems)
	}
	if stats.CompletionRate != 35 {
		t.Errorf("expected completion rate 35, got %v", stats.CompletionRate)
	}
	if stats.CompletedItems+stats.PendingItems != stats.TotalItems {
		t.Error("completed + pending should equal total")
	}
}

func TestBuildOverallStats_Empty(t *testing.T) {
	stats := buildOverallStats(model.TaskStats{}, model.ScheduleStats{}, model.ReminderStats{})

	if stats.TotalItems != 0 || stats.CompletionRate != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}
