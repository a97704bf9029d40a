package analytics

import (
	"log"
	"net/http"

	"Perch/internal/api/handlers"
	"Perch/internal/core/analytics"
	"Perch/internal/core/scheduler"
)

// SnapshotResponse feeds the dashboard chart
type SnapshotResponse struct {
	Days []analytics.DailyCount `json:"days"`
}

// SnapshotHandler serves per-day post counts
type SnapshotHandler struct {
	service scheduler.Service
}

// NewSnapshotHandler creates a new analytics handler
func NewSnapshotHandler(service scheduler.Service) *SnapshotHandler {
	return &SnapshotHandler{service: service}
}

// HandleSnapshot handles GET /api/analytics?account=
func (h *SnapshotHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.Analytics(r.Context(), r.URL.Query().Get("account"))
	if err != nil {
		log.Printf("Failed to build analytics snapshot: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, SnapshotResponse{Days: days})
}
