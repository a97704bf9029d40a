package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Perch/internal/core/posts"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Issues  []string `json:"issues,omitempty"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	writeJSON(w, statusCode, errorResponse{
		Error:   errorType,
		Message: message,
	})
}

// writeJSON encodes body with the given status
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers already sent
		log.Printf("Failed to encode response: %v", err)
	}
}

// decodeJSON reads a request body of at most 1MB into v, writing the error
// response itself when it returns false
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
			return false
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}

const maxBodyBytes = 1 * 1024 * 1024

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "ValidationFailed",
			Message: "Post failed validation",
			Issues:  posts.ValidationIssues(err),
		})

	case errors.Is(err, posts.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "AccountNotFound", err.Error())

	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NotFound", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
