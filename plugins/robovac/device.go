package robovac

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/joshp123/gohome-robovac/plugins/robovac/engine"
	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

// UpdateRetries is the number of consecutive failed polls before a device
// is marked unavailable.
const UpdateRetries = 3

// Lifecycle is the controller state of one device.
type Lifecycle string

const (
	LifecycleUninitialized Lifecycle = "uninitialized"
	LifecycleReady         Lifecycle = "ready"
	LifecycleDegraded      Lifecycle = "degraded"
	LifecycleUnavailable   Lifecycle = "unavailable"
	LifecycleRemoved       Lifecycle = "removed"
)

// DeviceConfig identifies one configured vacuum.
type DeviceConfig struct {
	ID          string
	Name        string
	Model       string
	IPAddress   string
	AccessToken string
	Description string
	MAC         string
}

// Options carries the collaborators shared by all devices.
type Options struct {
	Dialer       Dialer
	Timeout      time.Duration
	PingInterval time.Duration
	Log          *zap.SugaredLogger
	Metrics      *MetricsCollector
	// OnChange runs after derived state changes. It must not call back into
	// Update on the same device.
	OnChange func(*Device)
}

// Device owns the snapshot and derived state of one vacuum.
type Device struct {
	cfg       DeviceConfig
	modelCode string
	decl      *models.Declaration
	tr        *engine.Translator
	transport Transport
	timeout   time.Duration
	log       *zap.SugaredLogger
	metrics   *MetricsCollector
	onChange  func(*Device)

	// pollMu serializes polls; it is held across the transport call.
	pollMu sync.Mutex

	mu        sync.RWMutex
	snapshot  map[string]any
	seq       uint64
	state     engine.State
	failures  int
	lifecycle Lifecycle
	sentinel  string
}

// NewDevice resolves the model and dials the transport. Failures leave the
// device uninitialized with an error sentinel rather than returning an error.
func NewDevice(ctx context.Context, cfg DeviceConfig, opts Options) *Device {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	d := &Device{
		cfg:       cfg,
		modelCode: models.Prefix(cfg.Model),
		timeout:   opts.Timeout,
		log:       log.With("device", cfg.ID),
		metrics:   opts.Metrics,
		onChange:  opts.OnChange,
		snapshot:  map[string]any{},
		lifecycle: LifecycleUninitialized,
	}

	decl, err := models.Lookup(d.modelCode)
	if err != nil {
		d.log.Errorw("model is not supported", "model", cfg.Model, "error", err)
		d.sentinel = engine.SentinelUnsupportedModel
		return d
	}
	d.decl = decl
	d.tr = engine.NewTranslator(decl, d.log, func(cmd models.Command) {
		d.metrics.observeMiss(decl.Code, cmd)
	})

	if opts.Dialer == nil {
		d.log.Warnw("no transport configured", "model", decl.Code)
		d.sentinel = engine.SentinelInitializationFailed
		return d
	}
	transport, err := opts.Dialer(ctx, ConnectConfig{
		DeviceID:     cfg.ID,
		Host:         cfg.IPAddress,
		LocalKey:     cfg.AccessToken,
		Timeout:      opts.Timeout,
		PingInterval: opts.PingInterval,
		Binding:      decl.Binding,
	}, d.onPush)
	if err != nil {
		d.log.Errorw("failed to initialize vacuum connection", "model", decl.Code, "error", err)
		d.sentinel = engine.SentinelInitializationFailed
		return d
	}
	d.transport = transport
	d.log.Debugw("initialized vacuum connection", "model", decl.Code, "name", cfg.Name)
	return d
}

func (d *Device) ID() string {
	return d.cfg.ID
}

func (d *Device) Name() string {
	return d.cfg.Name
}

func (d *Device) Config() DeviceConfig {
	return d.cfg
}

// ModelCode is the five character model prefix.
func (d *Device) ModelCode() string {
	return d.modelCode
}

// Declaration is nil for unsupported models.
func (d *Device) Declaration() *models.Declaration {
	return d.decl
}

// Update polls the transport once. Errors are absorbed into the failure count.
func (d *Device) Update(ctx context.Context) {
	d.pollMu.Lock()
	defer d.pollMu.Unlock()

	d.mu.Lock()
	switch {
	case d.lifecycle == LifecycleRemoved:
		d.mu.Unlock()
		return
	case d.sentinel == engine.SentinelUnsupportedModel:
		d.mu.Unlock()
		d.log.Debugw("skipping update for unsupported model", "model", d.cfg.Model)
		return
	case d.cfg.IPAddress == "":
		d.sentinel = engine.SentinelIPAddress
		d.mu.Unlock()
		d.log.Warnw("cannot update vacuum: IP address not set", "name", d.cfg.Name)
		d.metrics.observePoll(d.cfg.ID, pollSkipped)
		return
	case d.transport == nil:
		d.sentinel = engine.SentinelInitializationFailed
		d.mu.Unlock()
		d.log.Warnw("cannot update vacuum: not initialized", "name", d.cfg.Name)
		d.metrics.observePoll(d.cfg.ID, pollSkipped)
		return
	}
	transport := d.transport
	d.mu.Unlock()

	pollCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	snapshot, err := transport.Get(pollCtx)
	if err != nil {
		d.recordFailure(transportError("get", err))
		return
	}
	if !d.apply(snapshot) {
		d.log.Debugw("dropped stale poll reply", "seq", snapshot.Seq)
	}
	d.metrics.observePoll(d.cfg.ID, pollOK)
	d.log.Debugw("updated vacuum", "name", d.cfg.Name)
	d.notify()
}

func (d *Device) recordFailure(err error) {
	d.mu.Lock()
	if d.lifecycle == LifecycleRemoved {
		d.mu.Unlock()
		return
	}
	d.failures++
	failures := d.failures
	switch {
	case failures >= UpdateRetries:
		d.lifecycle = LifecycleUnavailable
		d.sentinel = engine.SentinelConnectionFailed
	case d.lifecycle != LifecycleUninitialized:
		d.lifecycle = LifecycleDegraded
	}
	d.mu.Unlock()

	result := pollFailed
	if errors.Is(err, context.DeadlineExceeded) {
		result = pollTimeout
	}
	d.metrics.observePoll(d.cfg.ID, result)
	d.log.Warnw("failed to update vacuum",
		"name", d.cfg.Name,
		"failures", failures,
		"retries", UpdateRetries,
		"error", err,
	)
	if failures == UpdateRetries {
		d.log.Errorw("maximum update retries reached, marking unavailable", "name", d.cfg.Name)
	}
	d.notify()
}

func (d *Device) onPush(s Snapshot) {
	d.mu.RLock()
	removed := d.lifecycle == LifecycleRemoved
	d.mu.RUnlock()
	if removed {
		return
	}
	if !d.apply(s) {
		d.log.Debugw("dropped stale push", "seq", s.Seq)
		return
	}
	d.log.Debugw("applied pushed update", "dps", len(s.DPs))
	d.notify()
}

// apply replaces the snapshot and recomputes derived state atomically. Any
// reply proves the device reachable, but a snapshot older than the one
// already applied is dropped; apply reports whether it was used.
func (d *Device) apply(s Snapshot) bool {
	snapshot := maps.Clone(s.DPs)
	if snapshot == nil {
		snapshot = map[string]any{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lifecycle == LifecycleRemoved {
		return false
	}
	d.failures = 0
	d.lifecycle = LifecycleReady
	d.sentinel = ""
	if s.Seq != 0 && s.Seq < d.seq {
		return false
	}
	if s.Seq != 0 {
		d.seq = s.Seq
	}
	d.snapshot = snapshot
	d.state = engine.Project(snapshot, d.tr, d.state)
	return true
}

func (d *Device) notify() {
	if d.onChange != nil {
		d.onChange(d)
	}
}

// State is the derived state with any active error sentinel applied.
func (d *Device) State() engine.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stateLocked()
}

func (d *Device) stateLocked() engine.State {
	if d.sentinel == "" {
		return d.state
	}
	var activities map[string]models.Activity
	if d.decl != nil {
		activities = d.decl.Activities
	}
	return d.state.WithError(d.sentinel, activities)
}

func (d *Device) Lifecycle() Lifecycle {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lifecycle
}

func (d *Device) Failures() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.failures
}

// ErrorSentinel is empty unless a fixed device error is active.
func (d *Device) ErrorSentinel() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sentinel
}

// Snapshot returns a copy of the last applied DP values.
func (d *Device) Snapshot() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.snapshot)
}

func (d *Device) Attributes() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return engine.Attributes(d.stateLocked(), d.decl)
}

func (d *Device) HostFeatures() models.HostFeature {
	if d.decl == nil {
		return 0
	}
	return d.decl.HostFeatures
}

func (d *Device) ExtendedFeatures() models.ExtendedFeature {
	if d.decl == nil {
		return 0
	}
	return d.decl.ExtendedFeatures
}

func (d *Device) FanSpeeds() []string {
	return engine.FanSpeeds(d.decl)
}

// Available is false while the device is unavailable or was never initialized.
func (d *Device) Available() bool {
	switch d.Lifecycle() {
	case LifecycleUnavailable, LifecycleUninitialized, LifecycleRemoved:
		return false
	default:
		return true
	}
}

// Remove disables the transport. Later polls and pushes are ignored.
func (d *Device) Remove(ctx context.Context) error {
	d.pollMu.Lock()
	defer d.pollMu.Unlock()

	d.mu.Lock()
	transport := d.transport
	d.lifecycle = LifecycleRemoved
	d.mu.Unlock()

	if transport == nil {
		d.log.Debugw("cannot disable vacuum: not initialized")
		return nil
	}
	if err := transport.Disable(ctx); err != nil {
		return transportError("disable", err)
	}
	return nil
}
