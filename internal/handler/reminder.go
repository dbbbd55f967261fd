package handler

import (
	"errors"
	"net/http"

	"github.com/plannerhq/planner-go/internal/middleware"
	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/service"
)

// ReminderHandler handles HTTP requests for reminder operations.
type ReminderHandler struct {
	service *service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: svc}
}

// writeReminderError maps reminder service errors to HTTP responses.
func writeReminderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrRemindAtRequired),
		errors.Is(err, service.ErrRemindAtPast):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrReminderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotifyFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// HandleCreate handles POST /api/v1/reminders requests.
func (h *ReminderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/v1/reminders requests.
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ReminderResponse, error) {
		return h.service.GetAll(r.Context(), userID)
	})
}

// HandleGet handles GET /api/v1/reminders/{reminder_id} requests.
func (h *ReminderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminderID, ok := idParam(w, r, "reminder_id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(r.Context(), userID, reminderID)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListPending handles GET /api/v1/reminders/pending requests.
func (h *ReminderHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ReminderResponse, error) {
		return h.service.GetPending(r.Context(), userID)
	})
}

// HandleListDelivered handles GET /api/v1/reminders/delivered requests.
func (h *ReminderHandler) HandleListDelivered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ReminderResponse, error) {
		return h.service.GetDelivered(r.Context(), userID)
	})
}

// HandleListUpcoming handles GET /api/v1/reminders/upcoming requests.
func (h *ReminderHandler) HandleListUpcoming(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ReminderResponse, error) {
		return h.service.GetUpcoming(r.Context(), userID)
	})
}

// HandleListToday handles GET /api/v1/reminders/today requests.
func (h *ReminderHandler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(userID int64) ([]model.ReminderResponse, error) {
		return h.service.GetToday(r.Context(), userID)
	})
}

// HandleStats handles GET /api/v1/reminders/stats requests.
func (h *ReminderHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleUpdate handles PUT /api/v1/reminders/{reminder_id} requests.
func (h *ReminderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminderID, ok := idParam(w, r, "reminder_id")
	if !ok {
		return
	}

	var req model.ReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), userID, reminderID, req)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMarkDelivered handles PATCH /api/v1/reminders/{reminder_id}/deliver requests.
func (h *ReminderHandler) HandleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminderID, ok := idParam(w, r, "reminder_id")
	if !ok {
		return
	}

	resp, err := h.service.MarkDelivered(r.Context(), userID, reminderID)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSendNow handles POST /api/v1/reminders/{reminder_id}/send-now requests.
func (h *ReminderHandler) HandleSendNow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminderID, ok := idParam(w, r, "reminder_id")
	if !ok {
		return
	}

	resp, err := h.service.SendNow(r.Context(), userID, reminderID)
	if err != nil {
		writeReminderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/reminders/{reminder_id} requests.
func (h *ReminderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminderID, ok := idParam(w, r, "reminder_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, reminderID); err != nil {
		writeReminderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReminderHandler) list(w http.ResponseWriter, r *http.Request, fetch func(userID int64) ([]model.ReminderResponse, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reminders, err := fetch(userID)
	if err != nil {
		writeReminderError(w, err)
		return
	}
	if reminders == nil {
		reminders = []model.ReminderResponse{}
	}

	writeJSON(w, http.StatusOK, reminders)
}
