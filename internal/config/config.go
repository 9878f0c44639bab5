package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SchemaVersion          = 1
	DefaultPath            = "/etc/gohome-robovac/config.yaml"
	DefaultGRPCAddr        = "0.0.0.0:9000"
	DefaultHTTPAddr        = "0.0.0.0:8080"
	DefaultDashboardDir    = "/var/lib/gohome-robovac/dashboards"
	DefaultTopicPrefix     = "robovac"
	DefaultClientID        = "gohome-robovac"
	DefaultRefreshInterval = 20 * time.Second
	DefaultTimeout         = 5 * time.Second
	DefaultPingInterval    = 10 * time.Second
)

// Config is the daemon configuration file.
type Config struct {
	SchemaVersion int            `yaml:"schema_version"`
	Core          CoreConfig     `yaml:"core"`
	MQTT          MQTTConfig     `yaml:"mqtt"`
	Robovac       *RobovacConfig `yaml:"robovac"`
}

type CoreConfig struct {
	GRPCAddr     string `yaml:"grpc_addr"`
	HTTPAddr     string `yaml:"http_addr"`
	DashboardDir string `yaml:"dashboard_dir"`
}

// MQTTConfig points at the broker shared with the local protocol bridge.
type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	Username     string `yaml:"username"`
	PasswordFile string `yaml:"password_file"`
	ClientID     string `yaml:"client_id"`
	TopicPrefix  string `yaml:"topic_prefix"`
}

type RobovacConfig struct {
	RefreshInterval time.Duration  `yaml:"refresh_interval"`
	Timeout         time.Duration  `yaml:"timeout"`
	PingInterval    time.Duration  `yaml:"ping_interval"`
	Vacuums         []VacuumConfig `yaml:"vacuums"`
}

// VacuumConfig is one configured device entry.
type VacuumConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Model       string `yaml:"model"`
	IPAddress   string `yaml:"ip_address"`
	AccessToken string `yaml:"access_token"`
	Description string `yaml:"description"`
	MAC         string `yaml:"mac"`
}

// Load parses the YAML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes config bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Core.GRPCAddr == "" {
		cfg.Core.GRPCAddr = DefaultGRPCAddr
	}
	if cfg.Core.HTTPAddr == "" {
		cfg.Core.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.Core.DashboardDir == "" {
		cfg.Core.DashboardDir = DefaultDashboardDir
	}

	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = DefaultTopicPrefix
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultClientID
	}

	if cfg.Robovac == nil {
		return
	}
	if cfg.Robovac.RefreshInterval == 0 {
		cfg.Robovac.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Robovac.Timeout == 0 {
		cfg.Robovac.Timeout = DefaultTimeout
	}
	if cfg.Robovac.PingInterval == 0 {
		cfg.Robovac.PingInterval = DefaultPingInterval
	}
	for i := range cfg.Robovac.Vacuums {
		v := &cfg.Robovac.Vacuums[i]
		if v.Name == "" {
			v.Name = v.ID
		}
	}
}

// Validate enforces required invariants beyond YAML typing.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if cfg.SchemaVersion != SchemaVersion {
		return fmt.Errorf("schema_version must be %d", SchemaVersion)
	}

	if cfg.Core.GRPCAddr == "" {
		return fmt.Errorf("core.grpc_addr is required")
	}
	if cfg.Core.HTTPAddr == "" {
		return fmt.Errorf("core.http_addr is required")
	}

	if cfg.Robovac == nil {
		return nil
	}
	if len(cfg.Robovac.Vacuums) > 0 && cfg.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when vacuums are configured")
	}
	if cfg.Robovac.RefreshInterval < 0 {
		return fmt.Errorf("robovac.refresh_interval must be positive")
	}
	if cfg.Robovac.Timeout < 0 {
		return fmt.Errorf("robovac.timeout must be positive")
	}
	if cfg.Robovac.PingInterval < 0 {
		return fmt.Errorf("robovac.ping_interval must be positive")
	}

	seen := make(map[string]bool)
	for i, v := range cfg.Robovac.Vacuums {
		if v.ID == "" {
			return fmt.Errorf("robovac.vacuums[%d].id is required", i)
		}
		if v.Model == "" {
			return fmt.Errorf("robovac.vacuums[%d].model is required", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate vacuum id: %s", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// EnabledPlugins maps enabled plugin IDs based on config presence.
func EnabledPlugins(cfg *Config) map[string]bool {
	enabled := make(map[string]bool)
	if cfg == nil {
		return enabled
	}
	if cfg.Robovac != nil && len(cfg.Robovac.Vacuums) > 0 {
		enabled["robovac"] = true
	}
	return enabled
}

// ReadSecret reads a secret file, trimming surrounding whitespace. An empty
// path yields an empty secret.
func ReadSecret(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
