package service

import (
	"context"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/notify"
	"github.com/plannerhq/planner-go/internal/repository"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrRemindAtRequired = errors.New("remind_at is required")
	ErrRemindAtPast     = errors.New("reminder time must be in the future")
	ErrNotifyFailed     = errors.New("notification failed on every channel")
)

// Notifier is the slice of the notification sink the reminder service needs.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message, addr string) notify.Results
}

// ReminderService handles reminder business logic, including the manual
// send-now path that shares the dispatch sweep's notification sink.
type ReminderService struct {
	repo     *repository.ReminderRepository
	users    *repository.UserRepository
	notifier Notifier
	now      func() time.Time
}

// NewReminderService creates a new ReminderService.
func NewReminderService(repo *repository.ReminderRepository, users *repository.UserRepository, notifier Notifier) *ReminderService {
	return &ReminderService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *ReminderService) validate(req model.ReminderRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}
	if req.RemindAt.IsZero() {
		return ErrRemindAtRequired
	}
	return nil
}

// Create validates and persists a new reminder. A trigger time in the past is
// rejected and nothing is persisted.
func (s *ReminderService) Create(ctx context.Context, userID int64, req model.ReminderRequest) (model.ReminderResponse, error) {
	if err := s.validate(req); err != nil {
		return model.ReminderResponse{}, err
	}
	if req.RemindAt.Before(s.now()) {
		return model.ReminderResponse{}, ErrRemindAtPast
	}

	reminder := &model.Reminder{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
	}

	if err := s.repo.Create(ctx, reminder); err != nil {
		return model.ReminderResponse{}, err
	}

	return reminderToResponse(reminder), nil
}

// GetAll returns all of a user's reminders.
func (s *ReminderService) GetAll(ctx context.Context, userID int64) ([]model.ReminderResponse, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return remindersToResponse(reminders), nil
}

// GetByID returns one reminder, or ErrReminderNotFound if absent or owned by
// another user.
func (s *ReminderService) GetByID(ctx context.Context, userID, reminderID int64) (model.ReminderResponse, error) {
	reminder, err := s.repo.GetByID(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return model.ReminderResponse{}, ErrReminderNotFound
		}
		return model.ReminderResponse{}, err
	}
	return reminderToResponse(reminder), nil
}

// GetPending returns a user's undelivered reminders.
func (s *ReminderService) GetPending(ctx context.Context, userID int64) ([]model.ReminderResponse, error) {
	return s.getByDelivered(ctx, userID, false)
}

// GetDelivered returns a user's delivered reminders.
func (s *ReminderService) GetDelivered(ctx context.Context, userID int64) ([]model.ReminderResponse, error) {
	return s.getByDelivered(ctx, userID, true)
}

func (s *ReminderService) getByDelivered(ctx context.Context, userID int64, delivered bool) ([]model.ReminderResponse, error) {
	reminders, err := s.repo.ListByDelivered(ctx, userID, delivered)
	if err != nil {
		return nil, err
	}
	return remindersToResponse(reminders), nil
}

// GetUpcoming returns a user's undelivered reminders triggering from now on.
func (s *ReminderService) GetUpcoming(ctx context.Context, userID int64) ([]model.ReminderResponse, error) {
	reminders, err := s.repo.ListUpcoming(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return remindersToResponse(reminders), nil
}

// GetToday returns a user's undelivered reminders triggering today.
func (s *ReminderService) GetToday(ctx context.Context, userID int64) ([]model.ReminderResponse, error) {
	start, end := dayBounds(s.now())
	reminders, err := s.repo.ListTriggeringBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return remindersToResponse(reminders), nil
}

// Update overwrites a reminder's fields. A trigger time in the past is
// rejected unless the reminder is already delivered.
func (s *ReminderService) Update(ctx context.Context, userID, reminderID int64, req model.ReminderRequest) (model.ReminderResponse, error) {
	if err := s.validate(req); err != nil {
		return model.ReminderResponse{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return model.ReminderResponse{}, ErrReminderNotFound
		}
		return model.ReminderResponse{}, err
	}

	if !existing.Delivered && req.RemindAt.Before(s.now()) {
		return model.ReminderResponse{}, ErrRemindAtPast
	}

	reminder := &model.Reminder{
		ID:          reminderID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
		Delivered:   existing.Delivered,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, reminder); err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return model.ReminderResponse{}, ErrReminderNotFound
		}
		return model.ReminderResponse{}, err
	}

	reminder.UpdatedAt = s.now().UTC()
	return reminderToResponse(reminder), nil
}

// MarkDelivered flags a reminder as delivered without notifying anyone.
func (s *ReminderService) MarkDelivered(ctx context.Context, userID, reminderID int64) (model.ReminderResponse, error) {
	reminder, err := s.repo.GetByID(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return model.ReminderResponse{}, ErrReminderNotFound
		}
		return model.ReminderResponse{}, err
	}

	if !reminder.Delivered {
		if err := s.repo.MarkDelivered(ctx, reminderID); err != nil {
			return model.ReminderResponse{}, err
		}
		reminder.Delivered = true
	}

	return reminderToResponse(reminder), nil
}

// SendNow immediately pushes a reminder through the notification sink and
// marks it delivered when any channel succeeds. Already-delivered reminders
// are re-notified without a state change.
func (s *ReminderService) SendNow(ctx context.Context, userID, reminderID int64) (model.ReminderResponse, error) {
	reminder, err := s.repo.GetByID(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return model.ReminderResponse{}, ErrReminderNotFound
		}
		return model.ReminderResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.ReminderResponse{}, err
	}

	results := s.notifier.Send(ctx, notify.Message{
		Title:       reminder.Title,
		Description: reminder.Description,
		RemindAt:    reminder.RemindAt,
	}, user.Email)

	if !results.Delivered() {
		return model.ReminderResponse{}, ErrNotifyFailed
	}

	if !reminder.Delivered {
		if err := s.repo.MarkDelivered(ctx, reminderID); err != nil {
			return model.ReminderResponse{}, err
		}
		reminder.Delivered = true
	}

	return reminderToResponse(reminder), nil
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, userID, reminderID int64) error {
	err := s.repo.Delete(ctx, userID, reminderID)
	if errors.Is(err, repository.ErrReminderNotFound) {
		return ErrReminderNotFound
	}
	return err
}

// Stats returns a user's reminder counters. The total is the sum of the
// pending and delivered buckets.
func (s *ReminderService) Stats(ctx context.Context, userID int64) (model.ReminderStats, error) {
	var stats model.ReminderStats
	var err error

	if stats.PendingReminders, err = s.repo.CountByDelivered(ctx, userID, false); err != nil {
		return model.ReminderStats{}, err
	}
	if stats.DeliveredReminders, err = s.repo.CountByDelivered(ctx, userID, true); err != nil {
		return model.ReminderStats{}, err
	}

	stats.TotalReminders = stats.PendingReminders + stats.DeliveredReminders
	return stats, nil
}

func reminderToResponse(reminder *model.Reminder) model.ReminderResponse {
	return model.ReminderResponse{
		ID:          reminder.ID,
		UserID:      reminder.UserID,
		Title:       reminder.Title,
		Description: reminder.Description,
		RemindAt:    reminder.RemindAt,
		Delivered:   reminder.Delivered,
		CreatedAt:   reminder.CreatedAt,
		UpdatedAt:   reminder.UpdatedAt,
	}
}

func remindersToResponse(reminders []model.Reminder) []model.ReminderResponse {
	result := make([]model.ReminderResponse, len(reminders))
	for i := range reminders {
		result[i] = reminderToResponse(&reminders[i])
	}
	return result
}
