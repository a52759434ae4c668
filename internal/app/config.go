package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are HCL files or directories. Empty runs with defaults.
	ConfigPaths []string

	LogFormat   string
	LogLevel    string
	HTTPPort    int // 0 disables the HTTP server
	WorkerCount int // 0 lets the graph choose
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("worker count cannot be negative")
	}
	return &cfg, nil
}
