package account

import (
	"log"
	"net/http"

	"Perch/internal/api/handlers"
	"Perch/internal/core/accounts"
	"Perch/internal/core/scheduler"
)

// ListResponse is the account picker payload
type ListResponse struct {
	Accounts []*accounts.Account `json:"accounts"`
}

// ListHandler lists the accounts posts can be scheduled for
type ListHandler struct {
	service scheduler.Service
}

// NewListHandler creates a new account list handler
func NewListHandler(service scheduler.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/accounts
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Accounts(r.Context())
	if err != nil {
		log.Printf("Failed to list accounts: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, ListResponse{Accounts: list})
}
