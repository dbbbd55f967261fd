package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

// TaskRepository handles task persistence operations. Every read and write is
// scoped to the owning user; a row owned by someone else is indistinguishable
// from a missing row.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID on the task struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (user_id, title, description, status, priority, due_date)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		task.UserID, task.Title, task.Description, task.Status, task.Priority, dateArg(task.DueDate),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetByID retrieves a task by ID, scoped to the owning user.
func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ListByUser retrieves all tasks for a user, newest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, userID)
}

// ListByStatus retrieves a user's tasks with the given status.
func (r *TaskRepository) ListByStatus(ctx context.Context, userID int64, status model.TaskStatus) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND status = ? ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, userID, status)
}

// ListByPriority retrieves a user's tasks with the given priority.
func (r *TaskRepository) ListByPriority(ctx context.Context, userID int64, priority model.TaskPriority) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND priority = ? ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, userID, priority)
}

// ListByDueDate retrieves a user's tasks due on the given calendar date.
func (r *TaskRepository) ListByDueDate(ctx context.Context, userID int64, date time.Time) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND due_date = ? ORDER BY priority DESC, created_at`
	return r.queryTasks(ctx, query, userID, date.Format(time.DateOnly))
}

// ListByDueDateRange retrieves a user's tasks due between start and end, inclusive.
func (r *TaskRepository) ListByDueDateRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND due_date BETWEEN ? AND ? ORDER BY due_date, created_at`
	return r.queryTasks(ctx, query, userID, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// Update overwrites a task's mutable fields, scoped to the owning user.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, dateArg(task.DueDate),
		task.ID, task.UserID,
	)
	if err != nil {
		return err
	}

	return requireRow(result, ErrTaskNotFound)
}

// UpdateStatus changes only the status of a task, scoped to the owning user.
func (r *TaskRepository) UpdateStatus(ctx context.Context, userID, taskID int64, status model.TaskStatus) error {
	query := `UPDATE tasks SET status = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, status, taskID, userID)
	if err != nil {
		return err
	}

	return requireRow(result, ErrTaskNotFound)
}

// Delete removes a task, scoped to the owning user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return err
	}

	return requireRow(result, ErrTaskNotFound)
}

// CountByStatus counts a user's tasks with the given status.
func (r *TaskRepository) CountByStatus(ctx context.Context, userID int64, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?`, userID, status,
	).Scan(&count)
	return count, err
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		task        model.Task
		description sql.NullString
		dueDate     sql.NullTime
	)

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &description,
		&task.Status, &task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	if dueDate.Valid {
		d := dueDate.Time
		task.DueDate = &d
	}

	return &task, nil
}

// dateArg converts an optional due date to a DATE column argument.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

// requireRow maps a zero-rows-affected result to the entity's not-found error.
func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
