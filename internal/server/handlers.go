package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joshp123/gohome-robovac/internal/core"
)

// HealthHandler returns a simple OK for liveness checks.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// RegistryRoutes exposes plugin discovery as JSON.
func RegistryRoutes(registry *core.RegistryService) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			WriteJSON(w, http.StatusOK, registry.ListPlugins())
		})
		r.Get("/{pluginID}", func(w http.ResponseWriter, req *http.Request) {
			desc, ok := registry.DescribePlugin(chi.URLParam(req, "pluginID"))
			if !ok {
				WriteError(w, http.StatusNotFound, "plugin not found")
				return
			}
			WriteJSON(w, http.StatusOK, desc)
		})
	}
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON {"error": msg} body.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
