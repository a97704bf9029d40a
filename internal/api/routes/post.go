package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"Perch/internal/api/handlers/post"
	"Perch/internal/core/scheduler"
)

// RegisterPostRoutes registers the composer, queue and CSV endpoints on the router
// loc is the zone for datetimes given without an offset and for CSV export
func RegisterPostRoutes(r chi.Router, service scheduler.Service, loc *time.Location) {
	// Initialize handlers
	validateHandler := post.NewValidateHandler(service)
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service, loc)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	csvHandler := post.NewCSVHandler(service, loc)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", listHandler.HandleList)
		r.Post("/", createHandler.HandleCreate)
		r.Post("/validate", validateHandler.HandleValidate)

		// Registered before /{id} so they are not captured as ids
		r.Post("/import", csvHandler.HandleImport)
		r.Get("/export", csvHandler.HandleExport)

		r.Get("/{id}", getHandler.HandleGet)
		r.Delete("/{id}", deleteHandler.HandleDelete)
		r.Post("/{id}/reschedule", updateHandler.HandleReschedule)
		r.Post("/{id}/status", updateHandler.HandleStatus)
	})
}
