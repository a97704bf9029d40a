package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Perch/internal/core/scheduler"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service scheduler.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service scheduler.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /api/posts/{id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
