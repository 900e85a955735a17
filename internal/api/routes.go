package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(handlers *Handlers, loggingMiddleware *LoggingMiddleware) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - ORDER MATTERS!
	r.Use(middleware.RequestID)      // Generate request ID first
	r.Use(middleware.RealIP)         // Extract real IP
	r.Use(loggingMiddleware.Handler) // Add logger to context with request ID
	r.Use(middleware.Recoverer)      // Panic recovery

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Event stream stays open, so it sits outside the timeout group
	r.Get("/v1/events", handlers.StreamEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/health", handlers.Health)

		// Rendered views
		r.Get("/", handlers.Page)
		r.Post("/select", handlers.SelectForm)
		r.Get("/view.txt", handlers.TextView)

		r.Route("/v1", func(r chi.Router) {
			r.Get("/state", handlers.GetState)
			r.Get("/jobs", handlers.ListJobs)
			r.Get("/jobs/current", handlers.CurrentJob)
			r.Put("/selection", handlers.Select)
		})
	})

	return r
}
