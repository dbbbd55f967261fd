// Package scheduler runs the reminder dispatch sweep: a fixed-interval scan
// that notifies and flags every due, undelivered reminder.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/notify"
	"github.com/plannerhq/planner-go/internal/repository"
)

// ReminderStore is the slice of the reminder repository the sweep needs.
type ReminderStore interface {
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
	MarkDelivered(ctx context.Context, reminderID int64) error
}

// UserStore resolves reminder owners to their contact address.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Notifier is the notification sink the sweep dispatches through.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message, addr string) notify.Results
}

// Sweeper periodically scans for due reminders and dispatches them. A failure
// on one reminder is isolated: the reminder stays undelivered and is retried
// on the next tick, while the rest of the batch proceeds.
type Sweeper struct {
	reminders ReminderStore
	users     UserStore
	notifier  Notifier
	batchSize int
	interval  time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

// NewSweeper creates a Sweeper. The interval bounds each tick's deadline;
// batchSize caps how many overdue reminders one tick will process.
func NewSweeper(reminders ReminderStore, users UserStore, notifier Notifier, interval time.Duration, batchSize int) *Sweeper {
	return &Sweeper{
		reminders: reminders,
		users:     users,
		notifier:  notifier,
		batchSize: batchSize,
		interval:  interval,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start schedules the sweep and begins ticking in the background.
func (s *Sweeper) Start() error {
	spec := fmt.Sprintf("@every %ds", int(s.interval.Seconds()))
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		if _, err := s.RunTick(ctx); err != nil {
			slog.Error("reminder sweep tick failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling reminder sweep: %w", err)
	}

	s.cron.Start()
	slog.Info("reminder sweep started", "interval", s.interval, "batch_size", s.batchSize)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("reminder sweep stopped")
}

// RunTick performs one sweep pass and returns how many reminders were
// delivered. An error from the selection query aborts the whole tick;
// per-reminder failures are logged and skipped.
func (s *Sweeper) RunTick(ctx context.Context) (int, error) {
	now := s.now()

	due, err := s.reminders.ListDue(ctx, now, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("selecting due reminders: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}
	slog.Info("reminder sweep tick", "due", len(due))

	delivered := 0
	for _, reminder := range due {
		ok, err := s.dispatch(ctx, reminder)
		if err != nil {
			slog.Error("dispatch failed, will retry next tick",
				"reminder_id", reminder.ID, "user_id", reminder.UserID, "error", err)
			continue
		}
		if ok {
			delivered++
		}
	}

	slog.Info("reminder sweep tick done", "due", len(due), "delivered", delivered)
	return delivered, nil
}

// dispatch notifies one reminder's owner and flags the reminder. It reports
// whether the reminder was delivered; an orphaned reminder is (false, nil).
func (s *Sweeper) dispatch(ctx context.Context, reminder model.Reminder) (bool, error) {
	user, err := s.users.GetByID(ctx, reminder.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Orphaned reminder: owner is gone. Skip without failing the tick.
			slog.Warn("skipping orphaned reminder", "reminder_id", reminder.ID, "user_id", reminder.UserID)
			return false, nil
		}
		return false, err
	}

	results := s.notifier.Send(ctx, notify.Message{
		Title:       reminder.Title,
		Description: reminder.Description,
		RemindAt:    reminder.RemindAt,
	}, user.Email)

	for _, r := range results {
		if r.Err != nil {
			slog.Warn("notification channel failed",
				"channel", r.Channel, "reminder_id", reminder.ID, "error", r.Err)
		}
	}

	if !results.Delivered() {
		return false, fmt.Errorf("no notification channel succeeded for reminder %d", reminder.ID)
	}

	if err := s.reminders.MarkDelivered(ctx, reminder.ID); err != nil {
		return false, err
	}
	return true, nil
}
