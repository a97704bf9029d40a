package post

import (
	"log"
	"net/http"

	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
)

// CreateResponse lists every post created for the submission
type CreateResponse struct {
	Posts []*posts.Post `json:"posts"`
}

// CreateHandler handles post scheduling requests
type CreateHandler struct {
	service scheduler.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service scheduler.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Schedules a post and, when repeat is set, its recurring occurrences
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req scheduler.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.Schedule(r.Context(), req)
	if err != nil {
		if len(created) > 0 {
			// Occurrences are not atomic: report what was saved
			log.Printf("Partial schedule (%d saved): %v", len(created), err)
			writeJSON(w, http.StatusInternalServerError, struct {
				errorResponse
				Posts []*posts.Post `json:"posts"`
			}{
				errorResponse: errorResponse{
					Error:   "PartialFailure",
					Message: "Some occurrences could not be scheduled",
				},
				Posts: created,
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateResponse{Posts: created})
}
