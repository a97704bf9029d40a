package routes

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"

	"Perch/internal/core/scheduler"
	"Perch/internal/web"
)

// RegisterWebRoutes registers the server-rendered pages
func RegisterWebRoutes(r chi.Router, service scheduler.Service, loc *time.Location) error {
	templates, err := web.NewTemplates()
	if err != nil {
		return fmt.Errorf("failed to load web templates: %w", err)
	}

	handlers := web.NewHandlers(templates, service, loc)

	r.Get("/", handlers.QueueHandler)
	r.Get("/calendar", handlers.CalendarHandler)
	return nil
}
