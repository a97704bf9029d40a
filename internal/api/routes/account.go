package routes

import (
	"github.com/go-chi/chi/v5"

	"Perch/internal/api/handlers/account"
	"Perch/internal/api/handlers/analytics"
	"Perch/internal/core/scheduler"
)

// RegisterAccountRoutes registers the account picker and dashboard endpoints
func RegisterAccountRoutes(r chi.Router, service scheduler.Service) {
	listHandler := account.NewListHandler(service)
	snapshotHandler := analytics.NewSnapshotHandler(service)

	r.Get("/api/accounts", listHandler.HandleList)
	r.Get("/api/analytics", snapshotHandler.HandleSnapshot)
}
