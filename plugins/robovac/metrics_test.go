package robovac

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector(t *testing.T) {
	snapshot := runningSnapshot()
	snapshot["5"] = "Turbo"
	transport := newFakeTransport(snapshot)

	var fleet *Fleet
	collector := NewMetricsCollector(func() []*Device { return fleet.Devices() })
	log, _ := observedLogger()
	fleet = NewFleet(context.Background(), []DeviceConfig{t2118Config()}, Options{
		Dialer:  transport.dialer(),
		Log:     log,
		Metrics: collector,
	})
	fleet.Tick(context.Background())

	expected := `
# HELP gohome_robovac_activity Derived vacuum activity (label)
# TYPE gohome_robovac_activity gauge
gohome_robovac_activity{activity="cleaning",device_id="vac1",device_name="Hallway",model="T2118"} 1
# HELP gohome_robovac_available Whether the vacuum is reachable (1=yes, 0=no)
# TYPE gohome_robovac_available gauge
gohome_robovac_available{device_id="vac1",device_name="Hallway",model="T2118"} 1
# HELP gohome_robovac_battery_percent Battery percentage (0-100)
# TYPE gohome_robovac_battery_percent gauge
gohome_robovac_battery_percent{device_id="vac1",device_name="Hallway",model="T2118"} 50
# HELP gohome_robovac_fan_speed Fan speed (label)
# TYPE gohome_robovac_fan_speed gauge
gohome_robovac_fan_speed{device_id="vac1",device_name="Hallway",fan_speed="Max",model="T2118"} 1
# HELP gohome_robovac_polls_total Polls by result
# TYPE gohome_robovac_polls_total counter
gohome_robovac_polls_total{device_id="vac1",result="ok"} 1
# HELP gohome_robovac_translation_misses_total Device values missing from the model's value table
# TYPE gohome_robovac_translation_misses_total counter
gohome_robovac_translation_misses_total{command="MODE",model="T2118"} 1
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"gohome_robovac_activity",
		"gohome_robovac_available",
		"gohome_robovac_battery_percent",
		"gohome_robovac_fan_speed",
		"gohome_robovac_polls_total",
		"gohome_robovac_translation_misses_total",
	))
}

func TestMetricsUnavailableDevice(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	transport.getErr = errors.New("unreachable")

	var fleet *Fleet
	collector := NewMetricsCollector(func() []*Device { return fleet.Devices() })
	fleet = NewFleet(context.Background(), []DeviceConfig{t2118Config()}, Options{
		Dialer:  transport.dialer(),
		Metrics: collector,
	})
	for range UpdateRetries {
		fleet.Tick(context.Background())
	}

	expected := `
# HELP gohome_robovac_available Whether the vacuum is reachable (1=yes, 0=no)
# TYPE gohome_robovac_available gauge
gohome_robovac_available{device_id="vac1",device_name="Hallway",model="T2118"} 0
# HELP gohome_robovac_consecutive_failures Consecutive failed polls
# TYPE gohome_robovac_consecutive_failures gauge
gohome_robovac_consecutive_failures{device_id="vac1",device_name="Hallway",model="T2118"} 3
# HELP gohome_robovac_error Active vacuum error (label)
# TYPE gohome_robovac_error gauge
gohome_robovac_error{device_id="vac1",device_name="Hallway",error="Connection to the vacuum failed",model="T2118"} 1
# HELP gohome_robovac_polls_total Polls by result
# TYPE gohome_robovac_polls_total counter
gohome_robovac_polls_total{device_id="vac1",result="error"} 3
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"gohome_robovac_available",
		"gohome_robovac_consecutive_failures",
		"gohome_robovac_error",
		"gohome_robovac_polls_total",
	))
}
