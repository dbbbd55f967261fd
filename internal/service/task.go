package service

import (
	"context"
	"errors"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrTaskNotFound  = errors.New("task not found")
)

// TaskService handles task business logic. The clock is a field so tests can
// pin "today".
type TaskService struct {
	repo *repository.TaskRepository
	now  func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// Create validates and persists a new task. Empty status and priority fall
// back to PENDING and MEDIUM.
func (s *TaskService) Create(ctx context.Context, userID int64, req model.TaskRequest) (model.TaskResponse, error) {
	if req.Title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	status := model.StatusPending
	if req.Status != "" {
		var err error
		if status, err = model.ParseTaskStatus(req.Status); err != nil {
			return model.TaskResponse{}, err
		}
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		var err error
		if priority, err = model.ParseTaskPriority(req.Priority); err != nil {
			return model.TaskResponse{}, err
		}
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return model.TaskResponse{}, err
	}

	task := &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// GetAll returns all of a user's tasks.
func (s *TaskService) GetAll(ctx context.Context, userID int64) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// GetByID returns one task, or ErrTaskNotFound if absent or owned by another user.
func (s *TaskService) GetByID(ctx context.Context, userID, taskID int64) (model.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}
	return taskToResponse(task), nil
}

// GetByStatus returns a user's tasks with the given status.
func (s *TaskService) GetByStatus(ctx context.Context, userID int64, rawStatus string) ([]model.TaskResponse, error) {
	status, err := model.ParseTaskStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// GetByPriority returns a user's tasks with the given priority.
func (s *TaskService) GetByPriority(ctx context.Context, userID int64, rawPriority string) ([]model.TaskResponse, error) {
	priority, err := model.ParseTaskPriority(rawPriority)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByPriority(ctx, userID, priority)
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// GetByDueDate returns a user's tasks due on the given YYYY-MM-DD date.
func (s *TaskService) GetByDueDate(ctx context.Context, userID int64, rawDate string) ([]model.TaskResponse, error) {
	date, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tasks, err := s.repo.ListByDueDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// GetForToday returns a user's tasks due today.
func (s *TaskService) GetForToday(ctx context.Context, userID int64) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByDueDate(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// GetForWeek returns a user's tasks due in the next seven days, today included.
func (s *TaskService) GetForWeek(ctx context.Context, userID int64) ([]model.TaskResponse, error) {
	today := s.now()
	tasks, err := s.repo.ListByDueDateRange(ctx, userID, today, today.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// Update overwrites a task's fields. Empty status/priority keep the stored
// values; invalid ones are rejected.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req model.TaskRequest) (model.TaskResponse, error) {
	if req.Title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	status := existing.Status
	if req.Status != "" {
		if status, err = model.ParseTaskStatus(req.Status); err != nil {
			return model.TaskResponse{}, err
		}
	}

	priority := existing.Priority
	if req.Priority != "" {
		if priority, err = model.ParseTaskPriority(req.Priority); err != nil {
			return model.TaskResponse{}, err
		}
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return model.TaskResponse{}, err
	}

	task := &model.Task{
		ID:          taskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	task.UpdatedAt = s.now().UTC()
	return taskToResponse(task), nil
}

// UpdateStatus changes only a task's status.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID int64, rawStatus string) (model.TaskResponse, error) {
	status, err := model.ParseTaskStatus(rawStatus)
	if err != nil {
		return model.TaskResponse{}, err
	}

	if err := s.repo.UpdateStatus(ctx, userID, taskID, status); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	return s.GetByID(ctx, userID, taskID)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// Stats returns a user's task counters. The total is the sum of the status
// buckets, so total == pending + in-progress + completed always holds.
func (s *TaskService) Stats(ctx context.Context, userID int64) (model.TaskStats, error) {
	var stats model.TaskStats
	var err error

	if stats.PendingTasks, err = s.repo.CountByStatus(ctx, userID, model.StatusPending); err != nil {
		return model.TaskStats{}, err
	}
	if stats.InProgressTasks, err = s.repo.CountByStatus(ctx, userID, model.StatusInProgress); err != nil {
		return model.TaskStats{}, err
	}
	if stats.CompletedTasks, err = s.repo.CountByStatus(ctx, userID, model.StatusCompleted); err != nil {
		return model.TaskStats{}, err
	}

	stats.TotalTasks = stats.PendingTasks + stats.InProgressTasks + stats.CompletedTasks
	return stats, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &date, nil
}

func taskToResponse(task *model.Task) model.TaskResponse {
	resp := model.TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.Format(time.DateOnly)
	}
	return resp
}

func tasksToResponse(tasks []model.Task) []model.TaskResponse {
	result := make([]model.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = taskToResponse(&tasks[i])
	}
	return result
}
