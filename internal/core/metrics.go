package core

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegistry builds a registry holding the daemon build info and every
// plugin collector. A collector that clashes with one already registered is
// reported with the plugin that owns it.
func MetricsRegistry(version string, plugins []Plugin) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "gohome_robovac_build_info",
		Help:        "Build information",
		ConstLabels: prometheus.Labels{"version": version},
	}, func() float64 { return 1 }))

	for _, plugin := range plugins {
		for _, collector := range plugin.Collectors() {
			if err := registry.Register(collector); err != nil {
				return nil, fmt.Errorf("register %s collector: %w", plugin.ID(), err)
			}
		}
	}
	return registry, nil
}
