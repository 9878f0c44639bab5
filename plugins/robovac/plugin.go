package robovac

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/joshp123/gohome-robovac/internal/config"
	"github.com/joshp123/gohome-robovac/internal/core"
)

//go:embed AGENTS.md
var agentsMD string

//go:embed dashboard.json
var dashboardJSON []byte

var (
	_ core.Plugin         = (*Plugin)(nil)
	_ core.HTTPRegistrant = (*Plugin)(nil)
)

// PluginOptions carries the daemon services the plugin reports into.
type PluginOptions struct {
	Health *health.Server
	Log    *zap.SugaredLogger
}

// Plugin implements the GoHome plugin contract.
type Plugin struct {
	cfg       Config
	fleet     *Fleet
	metrics   *MetricsCollector
	publisher *Publisher
	reporter  *HealthReporter
	session   *mqttClient
	log       *zap.SugaredLogger

	health        core.HealthStatus
	healthMessage string
}

// NewPlugin constructs the robovac plugin from config. It reports false when
// the config has no robovac section.
func NewPlugin(ctx context.Context, cfg *config.Config, opts PluginOptions) (*Plugin, bool) {
	if cfg == nil || cfg.Robovac == nil {
		return nil, false
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	runtimeCfg, err := ConfigFromFile(cfg)
	if err != nil {
		return failedPlugin(err), true
	}
	mqttCfg, err := MQTTConfigFromFile(cfg)
	if err != nil {
		return failedPlugin(err), true
	}
	mqttCfg.Log = log.Named("mqtt")
	session, err := newMQTTClient(mqttCfg)
	if err != nil {
		return failedPlugin(fmt.Errorf("connect mqtt: %w", err)), true
	}

	p := newPlugin(ctx, runtimeCfg, session, opts.Health, log)
	p.session = session
	return p, true
}

func failedPlugin(err error) *Plugin {
	return &Plugin{health: core.HealthError, healthMessage: err.Error(), log: zap.NewNop().Sugar()}
}

func newPlugin(ctx context.Context, cfg Config, ps pubSub, hs *health.Server, log *zap.SugaredLogger) *Plugin {
	p := &Plugin{
		cfg:       cfg,
		publisher: NewPublisher(ps, cfg.TopicPrefix, log.Named("publisher")),
		reporter:  NewHealthReporter(hs),
		log:       log,
		health:    core.HealthHealthy,
	}
	p.metrics = NewMetricsCollector(p.Devices)
	bridge := NewBridge(ps, cfg.TopicPrefix, log.Named("bridge"))
	p.fleet = NewFleet(ctx, cfg.Devices, Options{
		Dialer:       bridge.Dial,
		Timeout:      cfg.Timeout,
		PingInterval: cfg.PingInterval,
		Log:          log.Named("robovac"),
		Metrics:      p.metrics,
		OnChange:     p.onChange,
	})
	for _, d := range p.fleet.Devices() {
		p.onChange(d)
	}
	return p
}

func (p *Plugin) onChange(d *Device) {
	p.publisher.Publish(d)
	p.reporter.Report(d)
}

// Devices returns the configured devices, or nil when the plugin failed to start.
func (p *Plugin) Devices() []*Device {
	if p.fleet == nil {
		return nil
	}
	return p.fleet.Devices()
}

// Run polls the fleet at the configured refresh interval until ctx is done.
func (p *Plugin) Run(ctx context.Context) {
	if p.fleet == nil {
		return
	}
	p.fleet.Run(ctx, p.cfg.RefreshInterval)
}

// Close disables every device and disconnects from the broker.
func (p *Plugin) Close(ctx context.Context) error {
	if p.fleet == nil {
		return nil
	}
	err := p.fleet.Close(ctx)
	for _, d := range p.fleet.Devices() {
		p.reporter.Report(d)
		if clearErr := p.publisher.Clear(d.ID()); clearErr != nil {
			p.log.Warnw("failed to clear entity state", "device", d.ID(), "error", clearErr)
		}
	}
	if p.session != nil {
		p.session.close()
	}
	return err
}

func (p *Plugin) ID() string {
	return "robovac"
}

func (p *Plugin) Manifest() core.Manifest {
	return core.Manifest{
		PluginID:    "robovac",
		DisplayName: "Eufy RoboVac",
		Version:     "0.1.0",
		Services:    []string{"grpc.health.v1.Health"},
	}
}

func (p *Plugin) AgentsMD() string {
	return agentsMD
}

func (p *Plugin) Dashboards() []core.Dashboard {
	return []core.Dashboard{{Name: "robovac-overview", JSON: dashboardJSON}}
}

// RegisterGRPC is a no-op; device status is served by the shared health
// service under robovac.<device id>.
func (p *Plugin) RegisterGRPC(_ *grpc.Server) {}

func (p *Plugin) RegisterHTTP(r chi.Router) {
	if p.fleet == nil {
		return
	}
	r.Route("/vacuums", Routes(p.fleet, p.log.Named("api")))
}

func (p *Plugin) Collectors() []prometheus.Collector {
	if p.fleet == nil {
		return nil
	}
	return []prometheus.Collector{p.metrics}
}

func (p *Plugin) Health() core.HealthStatus {
	status, _ := p.status()
	return status
}

func (p *Plugin) HealthMessage() string {
	_, msg := p.status()
	return msg
}

func (p *Plugin) status() (core.HealthStatus, string) {
	if p.fleet == nil {
		return p.health, p.healthMessage
	}
	devices := p.fleet.Devices()
	if len(devices) == 0 {
		return core.HealthDegraded, "no vacuums configured"
	}
	available := 0
	for _, d := range devices {
		if d.Available() {
			available++
		}
	}
	msg := fmt.Sprintf("%d/%d vacuums available", available, len(devices))
	switch available {
	case len(devices):
		return core.HealthHealthy, msg
	case 0:
		return core.HealthError, msg
	default:
		return core.HealthDegraded, msg
	}
}
