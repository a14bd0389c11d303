// Package router sets up all HTTP routes and middleware chains for the
// layout generation service. The API surface lives under /api/v1 behind
// bearer auth and a per-user rate limit.
package router

import (
	"github.com/go-chi/chi/v5"

	"layoutberg/internal/handlers"
	"layoutberg/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, tokenHash string, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check, no auth.
	r.Get("/healthz", api.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireToken(tokenHash))

		// Only the generation endpoint gets the rate limit.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Post("/generate", api.Generate)
		})

		r.Post("/validate-key", api.ValidateKey)
		r.Get("/models", api.Models)
		r.Get("/patterns", api.Patterns)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.ListTemplates)
			r.Post("/", api.CreateTemplate)
			r.Get("/{id}", api.GetTemplate)
			r.Put("/{id}", api.UpdateTemplate)
			r.Delete("/{id}", api.DeleteTemplate)
			r.Post("/{id}/use", api.UseTemplate)
		})

		r.Get("/usage", api.Usage)
		r.Get("/history", api.History)

		r.Post("/cache/flush", api.FlushCache)
	})

	return r
}
