package post

import (
	"net/http"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"Perch/internal/core/drafts"
	"Perch/internal/core/scheduler"
)

// ValidateResponse is the live composer preview
type ValidateResponse struct {
	Issues []string `json:"issues"`
	// Length counts code points, the unit of the length limit
	Length int `json:"length"`
	// Graphemes counts user-perceived characters, for display only
	Graphemes int `json:"graphemes"`
	Remaining int `json:"remaining"`
}

// ValidateHandler checks a draft without saving it
type ValidateHandler struct {
	service scheduler.Service
}

// NewValidateHandler creates a new validate handler
func NewValidateHandler(service scheduler.Service) *ValidateHandler {
	return &ValidateHandler{service: service}
}

// HandleValidate handles POST /api/posts/validate
// Always 200: an invalid draft is a normal answer here
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var d drafts.Draft
	if !decodeJSON(w, r, &d) {
		return
	}

	length := utf8.RuneCountInString(d.Text)
	writeJSON(w, http.StatusOK, ValidateResponse{
		Issues:    h.service.Validate(d),
		Length:    length,
		Graphemes: uniseg.GraphemeClusterCount(d.Text),
		Remaining: drafts.MaxTextLength - length,
	})
}
