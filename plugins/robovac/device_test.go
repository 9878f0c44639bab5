package robovac

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshp123/gohome-robovac/plugins/robovac/engine"
	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

func runningSnapshot() map[string]any {
	return map[string]any{
		"15":  "Running",
		"5":   "auto",
		"102": "Max",
		"104": 50,
		"106": "no_error",
	}
}

func TestDeviceUpdateAppliesSnapshot(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	d, _ := newTestDevice(t2118Config(), transport)

	assert.Equal(t, "T2118", d.ModelCode())
	assert.Equal(t, LifecycleUninitialized, d.Lifecycle())
	assert.False(t, d.Available())

	d.Update(context.Background())
	state := d.State()
	assert.Equal(t, LifecycleReady, d.Lifecycle())
	assert.True(t, d.Available())
	assert.Equal(t, 50, state.Battery)
	assert.Equal(t, "Running", state.Status)
	assert.Equal(t, models.ActivityCleaning, state.Activity)
	assert.Equal(t, "auto", state.Mode)
	assert.Equal(t, "Max", state.FanSpeed)
	assert.False(t, state.HasError())
	assert.Equal(t, runningSnapshot(), d.Snapshot())
	assert.Equal(t, []string{"No Suction", "Standard", "Boost IQ", "Max"}, d.FanSpeeds())
}

func TestDeviceUnsupportedModel(t *testing.T) {
	cfg := t2118Config()
	cfg.Model = "T9999"
	transport := newFakeTransport(runningSnapshot())
	d, logs := newTestDevice(cfg, transport)

	assert.Nil(t, d.Declaration())
	assert.Equal(t, engine.SentinelUnsupportedModel, d.ErrorSentinel())
	assert.Equal(t, 1, logs.FilterMessage("model is not supported").Len())

	d.Update(context.Background())
	assert.Equal(t, 0, transport.gets)
	assert.Equal(t, engine.SentinelUnsupportedModel, d.State().ErrorCode)
	assert.Equal(t, "This model is not supported", d.State().ErrorLabel)
	assert.Zero(t, d.HostFeatures())
	assert.Empty(t, d.FanSpeeds())
}

func TestDeviceMissingIPAddress(t *testing.T) {
	cfg := t2118Config()
	cfg.IPAddress = ""
	transport := newFakeTransport(runningSnapshot())
	d, _ := newTestDevice(cfg, transport)

	d.Update(context.Background())
	assert.Equal(t, 0, transport.gets)
	assert.Equal(t, engine.SentinelIPAddress, d.ErrorSentinel())
	assert.Equal(t, "IP Address not set", d.Attributes()[engine.AttrError])
}

func TestDeviceWithoutTransport(t *testing.T) {
	d, _ := newTestDevice(t2118Config(), nil)
	d.Update(context.Background())
	assert.Equal(t, engine.SentinelInitializationFailed, d.ErrorSentinel())
	assert.Equal(t, LifecycleUninitialized, d.Lifecycle())
}

func TestDeviceDialFailure(t *testing.T) {
	log, _ := observedLogger()
	dial := func(context.Context, ConnectConfig, PushFunc) (Transport, error) {
		return nil, errors.New("no route")
	}
	d := NewDevice(context.Background(), t2118Config(), Options{Dialer: dial, Log: log})
	assert.Equal(t, engine.SentinelInitializationFailed, d.ErrorSentinel())
}

func TestDeviceDialReceivesBinding(t *testing.T) {
	var got ConnectConfig
	dial := func(_ context.Context, cfg ConnectConfig, _ PushFunc) (Transport, error) {
		got = cfg
		return newFakeTransport(nil), nil
	}
	cfg := DeviceConfig{ID: "vac2", Model: "T2276", IPAddress: "10.0.0.2", AccessToken: "secret"}
	NewDevice(context.Background(), cfg, Options{Dialer: dial})

	assert.Equal(t, "vac2", got.DeviceID)
	assert.Equal(t, "10.0.0.2", got.Host)
	assert.Equal(t, "secret", got.LocalKey)
	assert.Equal(t, "3.5", got.Binding.ProtocolVersion())
	assert.True(t, got.Binding.EmptyStatusPayload)
}

func TestDeviceRetryEscalation(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	d, logs := newTestDevice(t2118Config(), transport)
	d.Update(context.Background())
	require.True(t, d.Available())

	transport.setGetErr(errors.New("timeout"))
	for i := 1; i < UpdateRetries; i++ {
		d.Update(context.Background())
		assert.Equal(t, i, d.Failures())
		assert.Equal(t, LifecycleDegraded, d.Lifecycle())
		assert.True(t, d.Available())
		assert.Empty(t, d.ErrorSentinel())
	}

	d.Update(context.Background())
	assert.Equal(t, UpdateRetries, d.Failures())
	assert.Equal(t, LifecycleUnavailable, d.Lifecycle())
	assert.False(t, d.Available())
	assert.Equal(t, engine.SentinelConnectionFailed, d.ErrorSentinel())
	assert.Equal(t, models.ActivityError, d.State().Activity)
	assert.Equal(t, 1, logs.FilterMessage("maximum update retries reached, marking unavailable").Len())

	transport.setGetErr(nil)
	d.Update(context.Background())
	assert.Equal(t, 0, d.Failures())
	assert.Equal(t, LifecycleReady, d.Lifecycle())
	assert.Empty(t, d.ErrorSentinel())
	assert.Equal(t, models.ActivityCleaning, d.State().Activity)
}

func TestDeviceSuccessResetsFailuresBeforeEscalation(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	d, _ := newTestDevice(t2118Config(), transport)
	d.Update(context.Background())

	transport.setGetErr(errors.New("timeout"))
	d.Update(context.Background())
	d.Update(context.Background())
	require.Equal(t, 2, d.Failures())

	transport.setGetErr(nil)
	d.Update(context.Background())
	assert.Equal(t, 0, d.Failures())
	assert.Equal(t, LifecycleReady, d.Lifecycle())

	transport.setGetErr(errors.New("timeout"))
	d.Update(context.Background())
	d.Update(context.Background())
	assert.Equal(t, 2, d.Failures())
	assert.Equal(t, LifecycleDegraded, d.Lifecycle())
	assert.True(t, d.Available())
	assert.Empty(t, d.ErrorSentinel())
}

func TestDeviceFailuresBeforeFirstSuccess(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	transport.getErr = errors.New("connection refused")
	d, _ := newTestDevice(t2118Config(), transport)

	for i := 1; i < UpdateRetries; i++ {
		d.Update(context.Background())
		assert.Equal(t, LifecycleUninitialized, d.Lifecycle())
		assert.False(t, d.Available())
	}
	d.Update(context.Background())
	assert.Equal(t, LifecycleUnavailable, d.Lifecycle())
	assert.Equal(t, engine.SentinelConnectionFailed, d.ErrorSentinel())

	transport.setGetErr(nil)
	d.Update(context.Background())
	assert.Equal(t, LifecycleReady, d.Lifecycle())
	assert.True(t, d.Available())
}

func TestDevicePushDuringPoll(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	transport.seq = 1
	transport.entered = make(chan struct{}, 1)
	transport.release = make(chan struct{})
	d, _ := newTestDevice(t2118Config(), transport)

	polled := make(chan struct{})
	go func() {
		d.Update(context.Background())
		close(polled)
	}()
	<-transport.entered

	pushed := runningSnapshot()
	pushed["15"] = "Charging"
	pushDone := make(chan struct{})
	go func() {
		transport.push(Snapshot{DPs: pushed, Seq: 2})
		close(pushDone)
	}()
	select {
	case <-pushDone:
	case <-time.After(time.Second):
		t.Fatal("push blocked behind the in-flight poll")
	}
	assert.Equal(t, models.ActivityDocked, d.State().Activity)

	close(transport.release)
	<-polled
	assert.Equal(t, models.ActivityDocked, d.State().Activity, "older poll reply must not replace the push")
	assert.Equal(t, "Charging", d.Snapshot()["15"])
	assert.Equal(t, LifecycleReady, d.Lifecycle())
	assert.Equal(t, 0, d.Failures())

	transport.entered, transport.release = nil, nil
	transport.seq = 3
	d.Update(context.Background())
	assert.Equal(t, models.ActivityCleaning, d.State().Activity)
}

func TestDevicePushUpdatesState(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	var changes int
	log, _ := observedLogger()
	d := NewDevice(context.Background(), t2118Config(), Options{
		Dialer:   transport.dialer(),
		Log:      log,
		OnChange: func(*Device) { changes++ },
	})
	require.NotNil(t, transport.push)

	pushed := runningSnapshot()
	pushed["15"] = "Charging"
	pushed["104"] = 99
	transport.push(Snapshot{DPs: pushed})

	assert.Equal(t, 1, changes)
	assert.Equal(t, models.ActivityDocked, d.State().Activity)
	assert.Equal(t, 99, d.State().Battery)
	assert.Equal(t, LifecycleReady, d.Lifecycle())
}

func TestDeviceRemove(t *testing.T) {
	transport := newFakeTransport(runningSnapshot())
	d, _ := newTestDevice(t2118Config(), transport)
	require.NoError(t, d.Remove(context.Background()))
	assert.True(t, transport.disabled)
	assert.Equal(t, LifecycleRemoved, d.Lifecycle())
	assert.False(t, d.Available())

	d.Update(context.Background())
	assert.Equal(t, 0, transport.gets)

	transport.push(Snapshot{DPs: runningSnapshot()})
	assert.Empty(t, d.Snapshot())
}

func TestTransportErrorUnwraps(t *testing.T) {
	err := transportError("get", context.DeadlineExceeded)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "get", te.Op)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Same(t, te, transportError("set", te))
	assert.NoError(t, transportError("get", nil))
}
