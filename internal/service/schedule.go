package service

import (
	"context"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrTimesRequired    = errors.New("start_time and end_time are required")
	ErrEndBeforeStart   = errors.New("end time must not be before start time")
)

// ScheduleService handles schedule business logic.
type ScheduleService struct {
	repo *repository.ScheduleRepository
	now  func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(repo *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{repo: repo, now: time.Now}
}

func validateScheduleTimes(req model.ScheduleRequest) error {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return ErrTimesRequired
	}
	if req.EndTime.Before(req.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}

// Create validates and persists a new schedule. Nothing is persisted when
// validation fails.
func (s *ScheduleService) Create(ctx context.Context, userID int64, req model.ScheduleRequest) (model.ScheduleResponse, error) {
	if req.Title == "" {
		return model.ScheduleResponse{}, ErrTitleRequired
	}
	if err := validateScheduleTimes(req); err != nil {
		return model.ScheduleResponse{}, err
	}

	schedule := &model.Schedule{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return model.ScheduleResponse{}, err
	}

	return scheduleToResponse(schedule), nil
}

// GetAll returns all of a user's schedules.
func (s *ScheduleService) GetAll(ctx context.Context, userID int64) ([]model.ScheduleResponse, error) {
	schedules, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedulesToResponse(schedules), nil
}

// GetByID returns one schedule, or ErrScheduleNotFound if absent or owned by
// another user.
func (s *ScheduleService) GetByID(ctx context.Context, userID, scheduleID int64) (model.ScheduleResponse, error) {
	schedule, err := s.repo.GetByID(ctx, userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return model.ScheduleResponse{}, ErrScheduleNotFound
		}
		return model.ScheduleResponse{}, err
	}
	return scheduleToResponse(schedule), nil
}

// GetForToday returns a user's schedules starting today.
func (s *ScheduleService) GetForToday(ctx context.Context, userID int64) ([]model.ScheduleResponse, error) {
	start, end := dayBounds(s.now())
	schedules, err := s.repo.ListByStartBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return schedulesToResponse(schedules), nil
}

// GetForWeek returns a user's schedules starting in the next seven days.
func (s *ScheduleService) GetForWeek(ctx context.Context, userID int64) ([]model.ScheduleResponse, error) {
	start, _ := dayBounds(s.now())
	schedules, err := s.repo.ListByStartBetween(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	return schedulesToResponse(schedules), nil
}

// GetByDateRange returns a user's schedules starting between two YYYY-MM-DD
// dates, both inclusive.
func (s *ScheduleService) GetByDateRange(ctx context.Context, userID int64, rawStart, rawEnd string) ([]model.ScheduleResponse, error) {
	startDate, err := time.Parse(time.DateOnly, rawStart)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse(time.DateOnly, rawEnd)
	if err != nil {
		return nil, ErrInvalidDate
	}

	schedules, err := s.repo.ListByStartBetween(ctx, userID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return schedulesToResponse(schedules), nil
}

// Update overwrites a schedule's fields after the same validation as Create.
func (s *ScheduleService) Update(ctx context.Context, userID, scheduleID int64, req model.ScheduleRequest) (model.ScheduleResponse, error) {
	if req.Title == "" {
		return model.ScheduleResponse{}, ErrTitleRequired
	}
	if err := validateScheduleTimes(req); err != nil {
		return model.ScheduleResponse{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return model.ScheduleResponse{}, ErrScheduleNotFound
		}
		return model.ScheduleResponse{}, err
	}

	schedule := &model.Schedule{
		ID:          scheduleID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return model.ScheduleResponse{}, ErrScheduleNotFound
		}
		return model.ScheduleResponse{}, err
	}

	schedule.UpdatedAt = s.now().UTC()
	return scheduleToResponse(schedule), nil
}

// Delete removes a schedule.
func (s *ScheduleService) Delete(ctx context.Context, userID, scheduleID int64) error {
	err := s.repo.Delete(ctx, userID, scheduleID)
	if errors.Is(err, repository.ErrScheduleNotFound) {
		return ErrScheduleNotFound
	}
	return err
}

// Stats returns a user's schedule counters.
func (s *ScheduleService) Stats(ctx context.Context, userID int64) (model.ScheduleStats, error) {
	var stats model.ScheduleStats
	var err error

	if stats.TotalSchedules, err = s.repo.CountByUser(ctx, userID); err != nil {
		return model.ScheduleStats{}, err
	}

	start, end := dayBounds(s.now())
	if stats.TodaySchedules, err = s.repo.CountByStartBetween(ctx, userID, start, end); err != nil {
		return model.ScheduleStats{}, err
	}
	if stats.WeekSchedules, err = s.repo.CountByStartBetween(ctx, userID, start, start.AddDate(0, 0, 7)); err != nil {
		return model.ScheduleStats{}, err
	}

	return stats, nil
}

// dayBounds returns midnight of t's day and midnight of the next day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func scheduleToResponse(schedule *model.Schedule) model.ScheduleResponse {
	return model.ScheduleResponse{
		ID:          schedule.ID,
		UserID:      schedule.UserID,
		Title:       schedule.Title,
		Description: schedule.Description,
		StartTime:   schedule.StartTime,
		EndTime:     schedule.EndTime,
		Location:    schedule.Location,
		CreatedAt:   schedule.CreatedAt,
		UpdatedAt:   schedule.UpdatedAt,
	}
}

func schedulesToResponse(schedules []model.Schedule) []model.ScheduleResponse {
	result := make([]model.ScheduleResponse, len(schedules))
	for i := range schedules {
		result[i] = scheduleToResponse(&schedules[i])
	}
	return result
}
