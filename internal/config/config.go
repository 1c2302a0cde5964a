package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"netdash/internal/auth"
)

// Config represents configuration data for the dashboard service.
type Config struct {
	ListenAddr        string         `yaml:"listen_addr" validate:"required"`
	MetricsIntervalMS int            `yaml:"metrics_interval_ms" validate:"min=100"`
	HistorySize       int            `yaml:"history_size" validate:"min=1,max=10000"`
	AlertLimit        int            `yaml:"alert_limit" validate:"min=1"`
	SessionTTLMinutes int            `yaml:"session_ttl_minutes" validate:"min=1"`
	TopologyFile      string         `yaml:"topology_file"`
	LogLevel          string         `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogDevelopment    bool           `yaml:"log_development"`
	Users             []auth.NewUser `yaml:"users" validate:"dive"`
}

// MetricsInterval is the traffic regeneration period.
func (c Config) MetricsInterval() time.Duration {
	return time.Duration(c.MetricsIntervalMS) * time.Millisecond
}

// SessionTTL is how long a login token stays valid.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// DefaultConfig returns sensible defaults in case no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":8080",
		MetricsIntervalMS: 2000,
		HistorySize:       20,
		AlertLimit:        100,
		SessionTTLMinutes: 720,
		LogLevel:          "info",
	}
}

var validate = validator.New()

// Load reads configuration from yaml file. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	defaults := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.MetricsIntervalMS <= 0 {
		cfg.MetricsIntervalMS = defaults.MetricsIntervalMS
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaults.HistorySize
	}
	if cfg.AlertLimit <= 0 {
		cfg.AlertLimit = defaults.AlertLimit
	}
	if cfg.SessionTTLMinutes <= 0 {
		cfg.SessionTTLMinutes = defaults.SessionTTLMinutes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
