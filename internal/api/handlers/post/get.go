package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Perch/internal/core/scheduler"
)

// GetHandler returns a single post
type GetHandler struct {
	service scheduler.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service scheduler.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /api/posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
