package router

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joshp123/gohome-robovac/internal/core"
)

// RegisterPlugins registers plugin services on the gRPC server and reports
// each plugin's startup health under its plugin id.
func RegisterPlugins(server *grpc.Server, hs *health.Server, plugins []core.Plugin) {
	for _, p := range plugins {
		p.RegisterGRPC(server)
		if hs == nil {
			continue
		}
		status := healthpb.HealthCheckResponse_SERVING
		if p.Health() == core.HealthError {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus(p.ID(), status)
	}
}
