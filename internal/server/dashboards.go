package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

// DashboardsHandler serves dashboard JSON from an in-memory map keyed by URL
// path. The bare /dashboards/ path lists every served dashboard.
func DashboardsHandler(dashboards map[string][]byte) http.Handler {
	index := make([]string, 0, len(dashboards))
	for path := range dashboards {
		index = append(index, path)
	}
	slices.Sort(index)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.TrimSuffix(path, "/") == "/dashboards" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(index)
			return
		}
		if data, ok := dashboards[path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}

		http.NotFound(w, r)
	})
}
