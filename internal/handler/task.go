package handler

import (
	"errors"
	"net/http"

	"github.com/plannerhq/planner-go/internal/middleware"
	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// writeTaskError maps task service errors to HTTP responses.
func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidPriority):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// HandleCreate handles POST /api/v1/tasks requests.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/tasks requests.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetAll(r.Context(), userID)
	})
}

// HandleGet handles GET /api/v1/tasks/{task_id} requests.
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	taskID, ok := idParam(w, r, "task_id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(r.Context(), userID, taskID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListByStatus handles GET /api/v1/tasks/status/{status} requests.
func (h *TaskHandler) HandleListByStatus(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetByStatus(r.Context(), userID, chiParam(r, "status"))
	})
}

// HandleListByPriority handles GET /api/v1/tasks/priority/{priority} requests.
func (h *TaskHandler) HandleListByPriority(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetByPriority(r.Context(), userID, chiParam(r, "priority"))
	})
}

// HandleListByDueDate handles GET /api/v1/tasks/due-date?date=YYYY-MM-DD requests.
func (h *TaskHandler) HandleListByDueDate(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetByDueDate(r.Context(), userID, r.URL.Query().Get("date"))
	})
}

// HandleListToday handles GET /api/v1/tasks/today requests.
func (h *TaskHandler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetForToday(r.Context(), userID)
	})
}

// HandleListWeek handles GET /api/v1/tasks/week requests.
func (h *TaskHandler) HandleListWeek(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.TaskResponse, error) {
		return h.service.GetForWeek(r.Context(), userID)
	})
}

// HandleStats handles GET /api/v1/tasks/stats requests.
func (h *TaskHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleUpdate handles PUT /api/v1/tasks/{task_id} requests.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	taskID, ok := idParam(w, r, "task_id")
	if !ok {
		return
	}

	var req model.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, taskID, req)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateStatus handles PATCH /api/v1/tasks/{task_id}/status requests.
func (h *TaskHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	taskID, ok := idParam(w, r, "task_id")
	if !ok {
		return
	}

	var req model.TaskStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), userID, taskID, req.Status)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/tasks/{task_id} requests.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	taskID, ok := idParam(w, r, "task_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, taskID); err != nil {
		writeTaskError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// list factors the shared auth-then-list-then-respond shape of the GET endpoints.
func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, fetch func(userID int64) ([]model.TaskResponse, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tasks, err := fetch(userID)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	if tasks == nil {
		tasks = []model.TaskResponse{}
	}

	writeJSON(w, http.StatusOK, tasks)
}
