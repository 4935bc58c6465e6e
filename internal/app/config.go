package app

import "errors"

// Config holds all the necessary configuration for a Harness instance to run.
type Config struct {
	AppPath string // deployed application directory: descriptor + static content

	Host string // listen host, defaults to loopback
	Port int    // listen port, 0 picks a free ephemeral port

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AppPath == "" {
		return nil, errors.New("AppPath is a required configuration field and cannot be empty")
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port < 0 {
		return nil, errors.New("Port must be 0 (ephemeral) or a positive port number")
	}

	return &cfg, nil
}
