// Package api provides HTTP router setup.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/credcheck/claimscope/internal/analyzer"
	"github.com/credcheck/claimscope/internal/config"
	"github.com/credcheck/claimscope/internal/database"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg *config.Config, engine *analyzer.Engine, store database.Store) http.Handler {
	r := chi.NewRouter()

	handler := NewHandler(engine, store)

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.RateLimits.RequestsPerMinute))

			r.Post("/analyze", handler.AnalyzeClaim)
			r.Get("/analyses/current", handler.CurrentAnalysis)

			r.Get("/history", handler.GetHistory)
			r.Delete("/history", handler.ClearHistory)

			r.Post("/reports", handler.SubmitReport)
			r.Get("/reports", handler.GetReports)
		})
	})

	return r
}
