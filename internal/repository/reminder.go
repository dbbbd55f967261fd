package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
)

var ErrReminderNotFound = errors.New("reminder not found")

const reminderColumns = `id, user_id, title, description, remind_at, delivered, created_at, updated_at`

// ReminderRepository handles reminder persistence operations. User-facing
// reads and writes are scoped to the owning user; ListDue and MarkDelivered
// serve the dispatch sweep, which works across users.
type ReminderRepository struct {
	db *sql.DB
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a new reminder and sets the generated ID on the reminder struct.
func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	query := `INSERT INTO reminders (user_id, title, description, remind_at, delivered)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		reminder.UserID, reminder.Title, reminder.Description, reminder.RemindAt, reminder.Delivered,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	reminder.ID = id
	return nil
}

// GetByID retrieves a reminder by ID, scoped to the owning user.
func (r *ReminderRepository) GetByID(ctx context.Context, userID, reminderID int64) (*model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ? AND user_id = ?`

	reminder, err := scanReminder(r.db.QueryRowContext(ctx, query, reminderID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	return reminder, nil
}

// ListByUser retrieves all reminders for a user ordered by trigger time.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = ? ORDER BY remind_at`
	return r.queryReminders(ctx, query, userID)
}

// ListByDelivered retrieves a user's reminders filtered by delivered state.
func (r *ReminderRepository) ListByDelivered(ctx context.Context, userID int64, delivered bool) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE user_id = ? AND delivered = ? ORDER BY remind_at`
	return r.queryReminders(ctx, query, userID, delivered)
}

// ListUpcoming retrieves a user's undelivered reminders triggering at or after now.
func (r *ReminderRepository) ListUpcoming(ctx context.Context, userID int64, now time.Time) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE user_id = ? AND remind_at >= ? AND delivered = FALSE ORDER BY remind_at`
	return r.queryReminders(ctx, query, userID, now)
}

// ListTriggeringBetween retrieves a user's undelivered reminders triggering in [start, end).
func (r *ReminderRepository) ListTriggeringBetween(ctx context.Context, userID int64, start, end time.Time) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE user_id = ? AND remind_at >= ? AND remind_at < ? AND delivered = FALSE ORDER BY remind_at`
	return r.queryReminders(ctx, query, userID, start, end)
}

// ListDue retrieves up to limit undelivered reminders across all users whose
// trigger time has passed, earliest first. Used by the dispatch sweep.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE delivered = FALSE AND remind_at <= ? ORDER BY remind_at LIMIT ?`
	return r.queryReminders(ctx, query, now, limit)
}

// Update overwrites a reminder's mutable fields, scoped to the owning user.
func (r *ReminderRepository) Update(ctx context.Context, reminder *model.Reminder) error {
	query := `UPDATE reminders SET title = ?, description = ?, remind_at = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		reminder.Title, reminder.Description, reminder.RemindAt,
		reminder.ID, reminder.UserID,
	)
	if err != nil {
		return err
	}

	return requireRow(result, ErrReminderNotFound)
}

// MarkDelivered flags a reminder as delivered. The flag only moves false to
// true; nothing ever clears it. Not user-scoped: the sweep calls this for rows
// it already selected.
func (r *ReminderRepository) MarkDelivered(ctx context.Context, reminderID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET delivered = TRUE WHERE id = ?`, reminderID)
	if err != nil {
		return err
	}

	return requireRow(result, ErrReminderNotFound)
}

// Delete removes a reminder, scoped to the owning user.
func (r *ReminderRepository) Delete(ctx context.Context, userID, reminderID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, reminderID, userID)
	if err != nil {
		return err
	}

	return requireRow(result, ErrReminderNotFound)
}

// CountByDelivered counts a user's reminders in the given delivered state.
func (r *ReminderRepository) CountByDelivered(ctx context.Context, userID int64, delivered bool) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reminders WHERE user_id = ? AND delivered = ?`, userID, delivered,
	).Scan(&count)
	return count, err
}

func (r *ReminderRepository) queryReminders(ctx context.Context, query string, args ...any) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}

	return reminders, rows.Err()
}

func scanReminder(row rowScanner) (*model.Reminder, error) {
	var (
		reminder    model.Reminder
		description sql.NullString
	)

	err := row.Scan(
		&reminder.ID, &reminder.UserID, &reminder.Title, &description,
		&reminder.RemindAt, &reminder.Delivered, &reminder.CreatedAt, &reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reminder.Description = description.String
	return &reminder, nil
}
