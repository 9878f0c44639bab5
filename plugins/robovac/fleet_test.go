package robovac

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFleetKeepsConfigOrder(t *testing.T) {
	cfgs := []DeviceConfig{
		{ID: "b", Model: "T2118", IPAddress: "10.0.0.2"},
		{ID: "a", Model: "T9999", IPAddress: "10.0.0.1"},
	}
	fleet := NewFleet(context.Background(), cfgs, Options{Dialer: newFakeTransport(nil).dialer()})

	devices := fleet.Devices()
	require.Len(t, devices, 2)
	assert.Equal(t, "b", devices[0].ID())
	assert.Equal(t, "a", devices[1].ID())

	_, ok := fleet.Device("a")
	assert.True(t, ok)
	_, ok = fleet.Device("c")
	assert.False(t, ok)
}

func TestFleetTickUpdatesEveryDevice(t *testing.T) {
	first := newFakeTransport(runningSnapshot())
	second := newFakeTransport(runningSnapshot())
	fleet := NewFleet(context.Background(), nil, Options{})
	fleet.devices = []*Device{
		NewDevice(context.Background(), DeviceConfig{ID: "one", Model: "T2118", IPAddress: "10.0.0.1"}, Options{Dialer: first.dialer()}),
		NewDevice(context.Background(), DeviceConfig{ID: "two", Model: "T2118", IPAddress: "10.0.0.2"}, Options{Dialer: second.dialer()}),
	}

	fleet.Tick(context.Background())
	assert.Equal(t, 1, first.gets)
	assert.Equal(t, 1, second.gets)
}

func TestFleetRunStopsWithContext(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	fleet := NewFleet(context.Background(), []DeviceConfig{t2118Config()}, Options{Dialer: transport.dialer()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		fleet.Run(ctx, time.Hour)
		close(done)
	}()
	require.Eventually(t, func() bool {
		transport.mu.Lock()
		defer transport.mu.Unlock()
		return transport.gets == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestFleetClose(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	fleet := NewFleet(context.Background(), []DeviceConfig{t2118Config()}, Options{Dialer: transport.dialer()})
	require.NoError(t, fleet.Close(context.Background()))
	assert.True(t, transport.disabled)
}
