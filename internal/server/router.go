package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshp123/gohome-robovac/internal/core"
)

// NewRouter mounts the shared endpoints and every plugin that serves HTTP.
func NewRouter(plugins []core.Plugin, metrics *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler)
	r.Method(http.MethodGet, "/metrics", MetricsHandler(metrics))
	r.Method(http.MethodGet, "/dashboards/*", DashboardsHandler(core.DashboardsMap(plugins)))
	r.Route("/plugins", RegistryRoutes(core.NewRegistryService(plugins)))

	for _, plugin := range plugins {
		if registrant, ok := plugin.(core.HTTPRegistrant); ok {
			registrant.RegisterHTTP(r)
		}
	}
	return r
}
