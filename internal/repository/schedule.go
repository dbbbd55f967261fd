package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
)

var ErrScheduleNotFound = errors.New("schedule not found")

const scheduleColumns = `id, user_id, title, description, start_time, end_time, location, created_at, updated_at`

// ScheduleRepository handles schedule persistence operations, scoped to the
// owning user like TaskRepository.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a new schedule and sets the generated ID on the schedule struct.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `INSERT INTO schedules (user_id, title, description, start_time, end_time, location)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		schedule.UserID, schedule.Title, schedule.Description,
		schedule.StartTime, schedule.EndTime, schedule.Location,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	schedule.ID = id
	return nil
}

// GetByID retrieves a schedule by ID, scoped to the owning user.
func (r *ScheduleRepository) GetByID(ctx context.Context, userID, scheduleID int64) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ? AND user_id = ?`

	schedule, err := scanSchedule(r.db.QueryRowContext(ctx, query, scheduleID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return schedule, nil
}

// ListByUser retrieves all schedules for a user ordered by start time.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID int64) ([]model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = ? ORDER BY start_time`
	return r.querySchedules(ctx, query, userID)
}

// ListByStartBetween retrieves a user's schedules starting in [start, end).
func (r *ScheduleRepository) ListByStartBetween(ctx context.Context, userID int64, start, end time.Time) ([]model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE user_id = ? AND start_time >= ? AND start_time < ? ORDER BY start_time`
	return r.querySchedules(ctx, query, userID, start, end)
}

// CountByUser counts all schedules for a user.
func (r *ScheduleRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}

// CountByStartBetween counts a user's schedules starting in [start, end).
func (r *ScheduleRepository) CountByStartBetween(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = ? AND start_time >= ? AND start_time < ?`,
		userID, start, end,
	).Scan(&count)
	return count, err
}

// Update overwrites a schedule's mutable fields, scoped to the owning user.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	query := `UPDATE schedules SET title = ?, description = ?, start_time = ?, end_time = ?, location = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		schedule.Title, schedule.Description, schedule.StartTime, schedule.EndTime, schedule.Location,
		schedule.ID, schedule.UserID,
	)
	if err != nil {
		return err
	}

	return requireRow(result, ErrScheduleNotFound)
}

// Delete removes a schedule, scoped to the owning user.
func (r *ScheduleRepository) Delete(ctx context.Context, userID, scheduleID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ? AND user_id = ?`, scheduleID, userID)
	if err != nil {
		return err
	}

	return requireRow(result, ErrScheduleNotFound)
}

func (r *ScheduleRepository) querySchedules(ctx context.Context, query string, args ...any) ([]model.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *schedule)
	}

	return schedules, rows.Err()
}

func scanSchedule(row rowScanner) (*model.Schedule, error) {
	var (
		schedule    model.Schedule
		description sql.NullString
		location    sql.NullString
	)

	err := row.Scan(
		&schedule.ID, &schedule.UserID, &schedule.Title, &description,
		&schedule.StartTime, &schedule.EndTime, &location,
		&schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.Description = description.String
	schedule.Location = location.String
	return &schedule, nil
}
