package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
)

// RescheduleRequest moves a post, e.g. after a calendar drag
type RescheduleRequest struct {
	ScheduledAt string `json:"scheduledAt"`
}

// StatusRequest records the publishing outcome
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateHandler handles reschedule and status changes
type UpdateHandler struct {
	service scheduler.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service scheduler.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// HandleReschedule handles POST /api/posts/{id}/reschedule
func (h *UpdateHandler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	var req RescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.Reschedule(r.Context(), chi.URLParam(r, "id"), req.ScheduledAt)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleStatus handles POST /api/posts/{id}/status
func (h *UpdateHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := posts.ParseStatus(req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	p, err := h.service.SetStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
