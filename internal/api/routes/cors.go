package routes

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware lets browser clients on allowedOrigins call the JSON API
func CORSMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-Id",
		},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300, // 5 minutes
	})
}
