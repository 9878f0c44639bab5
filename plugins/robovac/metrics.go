package robovac

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshp123/gohome-robovac/plugins/robovac/models"
)

type pollResult string

const (
	pollOK      pollResult = "ok"
	pollFailed  pollResult = "error"
	pollTimeout pollResult = "timeout"
	pollSkipped pollResult = "skipped"
)

// MetricsCollector exports the cached state of every device. Collect never
// talks to the devices.
type MetricsCollector struct {
	devices func() []*Device

	batteryPercent *prometheus.GaugeVec
	activity       *prometheus.GaugeVec
	available      *prometheus.GaugeVec
	failures       *prometheus.GaugeVec
	errorCode      *prometheus.GaugeVec
	fanSpeed       *prometheus.GaugeVec
	cleaningArea   *prometheus.GaugeVec
	cleaningTime   *prometheus.GaugeVec
	consumables    *prometheus.GaugeVec

	polls  *prometheus.CounterVec
	misses *prometheus.CounterVec
}

func NewMetricsCollector(devices func() []*Device) *MetricsCollector {
	labels := []string{"device_id", "device_name", "model"}
	activityLabels := []string{"device_id", "device_name", "model", "activity"}
	errorLabels := []string{"device_id", "device_name", "model", "error"}
	fanLabels := []string{"device_id", "device_name", "model", "fan_speed"}
	return &MetricsCollector{
		devices: devices,
		batteryPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_battery_percent",
			Help: "Battery percentage (0-100)",
		}, labels),
		activity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_activity",
			Help: "Derived vacuum activity (label)",
		}, activityLabels),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_available",
			Help: "Whether the vacuum is reachable (1=yes, 0=no)",
		}, labels),
		failures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_consecutive_failures",
			Help: "Consecutive failed polls",
		}, labels),
		errorCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_error",
			Help: "Active vacuum error (label)",
		}, errorLabels),
		fanSpeed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_fan_speed",
			Help: "Fan speed (label)",
		}, fanLabels),
		cleaningArea: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_cleaning_area_square_meters",
			Help: "Current cleaning area (square meters)",
		}, labels),
		cleaningTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_cleaning_time_seconds",
			Help: "Current cleaning time (seconds)",
		}, labels),
		consumables: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_robovac_consumable_duration",
			Help: "Consumable duration reported by the device",
		}, labels),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gohome_robovac_polls_total",
			Help: "Polls by result",
		}, []string{"device_id", "result"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gohome_robovac_translation_misses_total",
			Help: "Device values missing from the model's value table",
		}, []string{"model", "command"}),
	}
}

func (c *MetricsCollector) observePoll(deviceID string, result pollResult) {
	if c == nil {
		return
	}
	c.polls.WithLabelValues(deviceID, string(result)).Inc()
}

func (c *MetricsCollector) observeMiss(model string, cmd models.Command) {
	if c == nil {
		return
	}
	c.misses.WithLabelValues(model, string(cmd)).Inc()
}

func (c *MetricsCollector) gauges() []*prometheus.GaugeVec {
	return []*prometheus.GaugeVec{
		c.batteryPercent,
		c.activity,
		c.available,
		c.failures,
		c.errorCode,
		c.fanSpeed,
		c.cleaningArea,
		c.cleaningTime,
		c.consumables,
	}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges() {
		g.Describe(ch)
	}
	c.polls.Describe(ch)
	c.misses.Describe(ch)
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, g := range c.gauges() {
		g.Reset()
	}

	for _, d := range c.devices() {
		labels := prometheus.Labels{
			"device_id":   d.ID(),
			"device_name": d.Name(),
			"model":       d.ModelCode(),
		}
		state := d.State()

		c.failures.With(labels).Set(float64(d.Failures()))
		if d.Available() {
			c.available.With(labels).Set(1)
		} else {
			c.available.With(labels).Set(0)
		}
		if d.Lifecycle() != LifecycleUninitialized {
			c.batteryPercent.With(labels).Set(float64(state.Battery))
		}
		if v, ok := number(state.CleaningArea); ok {
			c.cleaningArea.With(labels).Set(v)
		}
		if v, ok := number(state.CleaningTime); ok {
			c.cleaningTime.With(labels).Set(v)
		}
		if v, ok := number(state.Consumables); ok {
			c.consumables.With(labels).Set(v)
		}

		if state.Activity != models.ActivityNone {
			c.activity.With(withLabel(labels, "activity", string(state.Activity))).Set(1)
		}
		if state.HasError() {
			c.errorCode.With(withLabel(labels, "error", state.ErrorLabel)).Set(1)
		}
		if state.FanSpeed != "" {
			c.fanSpeed.With(withLabel(labels, "fan_speed", state.FanSpeed)).Set(1)
		}
	}

	for _, g := range c.gauges() {
		g.Collect(ch)
	}
	c.polls.Collect(ch)
	c.misses.Collect(ch)
}

func withLabel(base prometheus.Labels, key, value string) prometheus.Labels {
	out := make(prometheus.Labels, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
