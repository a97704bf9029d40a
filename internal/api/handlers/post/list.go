package post

import (
	"net/http"
	"strconv"
	"time"

	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
)

// maxListLimit caps ?limit
const maxListLimit = 500

// ListResponse is the timeline payload
type ListResponse struct {
	Posts []*posts.Post `json:"posts"`
}

// ListHandler serves the queue
type ListHandler struct {
	service  scheduler.Service
	location *time.Location
}

// NewListHandler creates a new list handler
// loc interprets from/to values given without an offset
func NewListHandler(service scheduler.Service, loc *time.Location) *ListHandler {
	return &ListHandler{service: service, location: loc}
}

// HandleList handles GET /api/posts?account=&status=&from=&to=&limit=
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	list, err := h.service.Timeline(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Posts: list})
}

func (h *ListHandler) parseRequest(w http.ResponseWriter, r *http.Request) (posts.ListPostsRequest, bool) {
	q := r.URL.Query()
	req := posts.ListPostsRequest{AccountID: q.Get("account")}

	if s := q.Get("status"); s != "" {
		status, err := posts.ParseStatus(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "status must be scheduled, posted or failed")
			return req, false
		}
		req.Status = status
	}

	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{
		{"from", &req.From},
		{"to", &req.To},
	} {
		s := q.Get(bound.name)
		if s == "" {
			continue
		}
		t, err := drafts.ParseScheduledAt(s, h.location)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", bound.name+" must be an ISO-8601 datetime")
			return req, false
		}
		*bound.dst = &t
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a positive integer")
			return req, false
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		req.Limit = limit
	}
	return req, true
}
