package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"irp-planner/internal/api/handlers"
	"irp-planner/internal/platform/obs"
	"irp-planner/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root: handlers stay unaware
// of concrete adapters (SQLite vs. Postgres, in-memory vs. persisted).
func NewRouter(audit ports.AuditStore, cache ports.DistanceCache, metrics *obs.Metrics, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	planHandler := handlers.NewPlanHandler(audit, cache, metrics)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
	r.Route("/v1/plans", func(r chi.Router) {
		r.Post("/", planHandler.Create)
		r.Get("/{runID}", planHandler.Get)
	})

	return r
}
