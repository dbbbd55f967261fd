package service

import (
	"context"
	"math"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
)

// DashboardService composes the three domain services into read-only
// dashboard and statistics views. It holds no state of its own.
type DashboardService struct {
	tasks     *TaskService
	schedules *ScheduleService
	reminders *ReminderService
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(tasks *TaskService, schedules *ScheduleService, reminders *ReminderService) *DashboardService {
	return &DashboardService{
		tasks:     tasks,
		schedules: schedules,
		reminders: reminders,
		now:       time.Now,
	}
}

// Today returns the today view: summary counters plus today's items.
func (s *DashboardService) Today(ctx context.Context, userID int64) (model.DashboardResponse, error) {
	tasks, err := s.tasks.GetForToday(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}
	schedules, err := s.schedules.GetForToday(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}
	reminders, err := s.reminders.GetToday(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	summary, err := s.summary(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	return model.DashboardResponse{
		Date:      s.now().Format(time.DateOnly),
		Summary:   summary,
		Tasks:     tasks,
		Schedules: schedules,
		Reminders: reminders,
	}, nil
}

// Week returns the weekly view: seven day buckets starting today.
func (s *DashboardService) Week(ctx context.Context, userID int64) (model.WeeklyDashboardResponse, error) {
	weekTasks, err := s.tasks.GetForWeek(ctx, userID)
	if err != nil {
		return model.WeeklyDashboardResponse{}, err
	}
	weekSchedules, err := s.schedules.GetForWeek(ctx, userID)
	if err != nil {
		return model.WeeklyDashboardResponse{}, err
	}
	weekReminders, err := s.reminders.GetUpcoming(ctx, userID)
	if err != nil {
		return model.WeeklyDashboardResponse{}, err
	}

	today := s.now()
	days := make([]model.DayData, 0, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i).Format(time.DateOnly)

		var dayTasks []model.TaskResponse
		for _, t := range weekTasks {
			if t.DueDate == date {
				dayTasks = append(dayTasks, t)
			}
		}

		var daySchedules []model.ScheduleResponse
		for _, sc := range weekSchedules {
			if sc.StartTime.Format(time.DateOnly) == date {
				daySchedules = append(daySchedules, sc)
			}
		}

		var dayReminders []model.ReminderResponse
		for _, r := range weekReminders {
			if r.RemindAt.Format(time.DateOnly) == date {
				dayReminders = append(dayReminders, r)
			}
		}

		days = append(days, model.DayData{
			Date:          date,
			TaskCount:     len(dayTasks),
			ScheduleCount: len(daySchedules),
			ReminderCount: len(dayReminders),
			Tasks:         dayTasks,
			Schedules:     daySchedules,
			Reminders:     dayReminders,
		})
	}

	completed := 0
	for _, t := range weekTasks {
		if t.Status == model.StatusCompleted {
			completed++
		}
	}

	return model.WeeklyDashboardResponse{
		StartDate: today.Format(time.DateOnly),
		EndDate:   today.AddDate(0, 0, 7).Format(time.DateOnly),
		Days:      days,
		Summary: model.WeeklySummary{
			TotalTasks:     len(weekTasks),
			CompletedTasks: completed,
			PendingTasks:   len(weekTasks) - completed,
			TotalSchedules: len(weekSchedules),
			TotalReminders: len(weekReminders),
		},
	}, nil
}

// Stats returns the productivity view: per-entity stats plus the overall
// completion block.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (model.ProductivityStatsResponse, error) {
	taskStats, err := s.tasks.Stats(ctx, userID)
	if err != nil {
		return model.ProductivityStatsResponse{}, err
	}
	scheduleStats, err := s.schedules.Stats(ctx, userID)
	if err != nil {
		return model.ProductivityStatsResponse{}, err
	}
	reminderStats, err := s.reminders.Stats(ctx, userID)
	if err != nil {
		return model.ProductivityStatsResponse{}, err
	}

	return model.ProductivityStatsResponse{
		TaskStats:     taskStats,
		ScheduleStats: scheduleStats,
		ReminderStats: reminderStats,
		OverallStats:  buildOverallStats(taskStats, scheduleStats, reminderStats),
	}, nil
}

func (s *DashboardService) summary(ctx context.Context, userID int64) (model.DashboardSummary, error) {
	taskStats, err := s.tasks.Stats(ctx, userID)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	scheduleStats, err := s.schedules.Stats(ctx, userID)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	reminderStats, err := s.reminders.Stats(ctx, userID)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	return model.DashboardSummary{
		TaskStats:     taskStats,
		ScheduleStats: scheduleStats,
		ReminderStats: reminderStats,
	}, nil
}

func buildOverallStats(tasks model.TaskStats, schedules model.ScheduleStats, reminders model.ReminderStats) model.OverallStats {
	total := tasks.TotalTasks + schedules.TotalSchedules + reminders.TotalReminders
	completed := tasks.CompletedTasks + reminders.DeliveredReminders

	return model.OverallStats{
		TotalItems:     total,
		CompletedItems: completed,
		PendingItems:   total - completed,
		CompletionRate: completionRate(completed, total),
	}
}

// completionRate is completed/total as a percentage rounded to two decimals,
// 0 when total is zero.
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}
