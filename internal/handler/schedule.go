package handler

import (
	"errors"
	"net/http"

	"github.com/plannerhq/planner-go/internal/middleware"
	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/service"
)

// ScheduleHandler handles HTTP requests for schedule operations.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// writeScheduleError maps schedule service errors to HTTP responses.
func writeScheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTimesRequired),
		errors.Is(err, service.ErrEndBeforeStart),
		errors.Is(err, service.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrScheduleNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// HandleCreate handles POST /api/v1/schedules requests.
func (h *ScheduleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/schedules requests.
func (h *ScheduleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ScheduleResponse, error) {
		return h.service.GetAll(r.Context(), userID)
	})
}

// HandleGet handles GET /api/v1/schedules/{schedule_id} requests.
func (h *ScheduleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	scheduleID, ok := idParam(w, r, "schedule_id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(r.Context(), userID, scheduleID)
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListToday handles GET /api/v1/schedules/today requests.
func (h *ScheduleHandler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ScheduleResponse, error) {
		return h.service.GetForToday(r.Context(), userID)
	})
}

// HandleListWeek handles GET /api/v1/schedules/week requests.
func (h *ScheduleHandler) HandleListWeek(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ScheduleResponse, error) {
		return h.service.GetForWeek(r.Context(), userID)
	})
}

// HandleListByDateRange handles GET /api/v1/schedules/range?start=...&end=... requests.
func (h *ScheduleHandler) HandleListByDateRange(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ScheduleResponse, error) {
		q := r.URL.Query()
		return h.service.GetByDateRange(r.Context(), userID, q.Get("start"), q.Get("end"))
	})
}

// HandleUpdate handles PUT /api/v1/schedules/{schedule_id} requests.
func (h *ScheduleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	scheduleID, ok := idParam(w, r, "schedule_id")
	if !ok {
		return
	}

	var req model.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, scheduleID, req)
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/schedules/{schedule_id} requests.
func (h *ScheduleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	scheduleID, ok := idParam(w, r, "schedule_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, scheduleID); err != nil {
		writeScheduleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) list(w http.ResponseWriter, r *http.Request, fetch func(userID int64) ([]model.ScheduleResponse, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	schedules, err := fetch(userID)
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	if schedules == nil {
		schedules = []model.ScheduleResponse{}
	}

	writeJSON(w, http.StatusOK, schedules)
}
