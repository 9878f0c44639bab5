package robovac

import (
	"fmt"
	"time"

	"github.com/joshp123/gohome-robovac/internal/config"
)

// Config defines runtime configuration for the robovac plugin.
type Config struct {
	RefreshInterval time.Duration
	Timeout         time.Duration
	PingInterval    time.Duration
	TopicPrefix     string
	Devices         []DeviceConfig
}

func ConfigFromFile(cfg *config.Config) (Config, error) {
	if cfg == nil || cfg.Robovac == nil {
		return Config{}, fmt.Errorf("robovac config is required")
	}
	out := Config{
		RefreshInterval: cfg.Robovac.RefreshInterval,
		Timeout:         cfg.Robovac.Timeout,
		PingInterval:    cfg.Robovac.PingInterval,
		TopicPrefix:     cfg.MQTT.TopicPrefix,
	}
	for _, v := range cfg.Robovac.Vacuums {
		out.Devices = append(out.Devices, DeviceConfig{
			ID:          v.ID,
			Name:        v.Name,
			Model:       v.Model,
			IPAddress:   v.IPAddress,
			AccessToken: v.AccessToken,
			Description: v.Description,
			MAC:         v.MAC,
		})
	}
	return out, nil
}

// MQTTConfigFromFile resolves the broker settings, reading the password file.
func MQTTConfigFromFile(cfg *config.Config) (MQTTConfig, error) {
	if cfg == nil {
		return MQTTConfig{}, fmt.Errorf("config is required")
	}
	password, err := config.ReadSecret(cfg.MQTT.PasswordFile)
	if err != nil {
		return MQTTConfig{}, fmt.Errorf("mqtt password: %w", err)
	}
	return MQTTConfig{
		Broker:   cfg.MQTT.Broker,
		Username: cfg.MQTT.Username,
		Password: password,
		ClientID: cfg.MQTT.ClientID,
	}, nil
}
