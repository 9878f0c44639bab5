package robovac

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService names the grpc health entry of a device.
func HealthService(deviceID string) string {
	return "robovac." + deviceID
}

// HealthReporter mirrors device availability into the shared grpc health service.
type HealthReporter struct {
	hs *health.Server
}

func NewHealthReporter(hs *health.Server) *HealthReporter {
	return &HealthReporter{hs: hs}
}

func (h *HealthReporter) Report(d *Device) {
	if h == nil || h.hs == nil {
		return
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if d.Available() {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.hs.SetServingStatus(HealthService(d.ID()), status)
}
