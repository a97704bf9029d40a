package post

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"Perch/internal/core/csvio"
	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
)

// CSVHandler imports and exports the queue as CSV
type CSVHandler struct {
	service  scheduler.Service
	location *time.Location
}

// NewCSVHandler creates a new CSV handler
// loc is the zone of exported posting times
func NewCSVHandler(service scheduler.Service, loc *time.Location) *CSVHandler {
	return &CSVHandler{service: service, location: loc}
}

// HandleImport handles POST /api/posts/import?account=
// The body is the CSV document itself
func (h *CSVHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "CSV too large (max 1MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Could not read request body")
		return
	}

	rows, err := csvio.Decode(bytes.NewReader(body))
	if err != nil {
		switch {
		case errors.Is(err, csvio.ErrMissingHeader):
			writeError(w, http.StatusBadRequest, "InvalidCSV", "CSV needs a header row with a Text column")
		default:
			writeError(w, http.StatusBadRequest, "InvalidCSV", err.Error())
		}
		return
	}

	result, err := h.service.Import(r.Context(), r.URL.Query().Get("account"), rows)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleExport handles GET /api/posts/export?account=
func (h *CSVHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Timeline(r.Context(), posts.ListPostsRequest{AccountID: r.URL.Query().Get("account")})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="posts.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := csvio.Encode(w, list, h.location); err != nil {
		log.Printf("Failed to write csv export: %v", err)
	}
}
