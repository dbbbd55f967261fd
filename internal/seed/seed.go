// Package seed populates the database with demo data for local development.
// It is wired only when the seeder is enabled in config.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/plannerhq/planner-go/internal/config"
	"github.com/plannerhq/planner-go/internal/crypto"
	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

const (
	demoEmail    = "demo@planner.local"
	demoPassword = "password123"
	demoName     = "Demo User"
)

var taskTitles = []string{
	"Review pull requests",
	"Write weekly report",
	"Plan sprint backlog",
	"Update project documentation",
	"Prepare presentation slides",
	"Clean up email inbox",
	"Book travel for conference",
	"Renew gym membership",
}

var scheduleTitles = []string{
	"Team standup",
	"1:1 with manager",
	"Design review",
	"Lunch with client",
	"Dentist appointment",
	"Sprint retrospective",
}

var reminderTitles = []string{
	"Submit timesheet",
	"Pay electricity bill",
	"Call the bank",
	"Water the plants",
	"Take out recycling",
}

// Seeder creates a demo user with randomized tasks, schedules and reminders.
type Seeder struct {
	db        *sql.DB
	users     *repository.UserRepository
	tasks     *repository.TaskRepository
	schedules *repository.ScheduleRepository
	reminders *repository.ReminderRepository
	cfg       config.SeedConfig
	rng       *rand.Rand
}

// New creates a Seeder over the given database handle.
func New(db *sql.DB, cfg config.SeedConfig) *Seeder {
	return &Seeder{
		db:        db,
		users:     repository.NewUserRepository(db),
		tasks:     repository.NewTaskRepository(db),
		schedules: repository.NewScheduleRepository(db),
		reminders: repository.NewReminderRepository(db),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds the demo data. It is idempotent: when the demo user already
// exists and ClearExisting is off, it does nothing.
func (s *Seeder) Run(ctx context.Context) error {
	if s.cfg.ClearExisting {
		if err := s.clear(ctx); err != nil {
			return fmt.Errorf("clearing existing data: %w", err)
		}
	}

	if _, err := s.users.GetByEmail(ctx, demoEmail); err == nil {
		slog.Info("seeder: demo user already present, skipping")
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	user := &model.User{Email: demoEmail, PasswordHash: hash, FullName: demoName}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	counts := [3]int{}
	if counts[0], err = s.seedTasks(ctx, user.ID); err != nil {
		return err
	}
	if counts[1], err = s.seedSchedules(ctx, user.ID); err != nil {
		return err
	}
	if counts[2], err = s.seedReminders(ctx, user.ID); err != nil {
		return err
	}

	slog.Info("seeder: demo data created",
		"email", demoEmail, "tasks", counts[0], "schedules", counts[1], "reminders", counts[2])
	return nil
}

func (s *Seeder) clear(ctx context.Context) error {
	// Child tables first, users last.
	for _, table := range []string{"reminders", "schedules", "tasks", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	slog.Info("seeder: cleared existing data")
	return nil
}

func (s *Seeder) seedTasks(ctx context.Context, userID int64) (int, error) {
	statuses := []model.TaskStatus{model.StatusPending, model.StatusInProgress, model.StatusCompleted}
	priorities := []model.TaskPriority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}

	for i, title := range taskTitles {
		due := time.Now().AddDate(0, 0, s.rng.Intn(10)-2)
		task := &model.Task{
			UserID:      userID,
			Title:       title,
			Description: "Seeded demo task",
			Status:      statuses[i%len(statuses)],
			Priority:    priorities[s.rng.Intn(len(priorities))],
			DueDate:     &due,
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return 0, err
		}
	}
	return len(taskTitles), nil
}

func (s *Seeder) seedSchedules(ctx context.Context, userID int64) (int, error) {
	for i, title := range scheduleTitles {
		start := time.Now().AddDate(0, 0, i-1).Truncate(time.Hour).Add(time.Duration(9+s.rng.Intn(8)) * time.Hour)
		schedule := &model.Schedule{
			UserID:      userID,
			Title:       title,
			Description: "Seeded demo schedule",
			StartTime:   start,
			EndTime:     start.Add(time.Duration(30+s.rng.Intn(90)) * time.Minute),
			Location:    "Office",
		}
		if err := s.schedules.Create(ctx, schedule); err != nil {
			return 0, err
		}
	}
	return len(scheduleTitles), nil
}

func (s *Seeder) seedReminders(ctx context.Context, userID int64) (int, error) {
	for i, title := range reminderTitles {
		// A mix of overdue and upcoming so the sweep has work on first run.
		offset := time.Duration(i-2) * 12 * time.Hour
		reminder := &model.Reminder{
			UserID:      userID,
			Title:       title,
			Description: "Seeded demo reminder",
			RemindAt:    time.Now().Add(offset),
		}
		if err := s.reminders.Create(ctx, reminder); err != nil {
			return 0, err
		}
	}
	return len(reminderTitles), nil
}
