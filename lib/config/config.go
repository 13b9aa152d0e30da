//
// config.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package config loads the settings shared by vtctl and httpd from
// VTCTL_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/markkurossi/vtctl/lib/log"
)

// Prefix is the environment variable prefix.
const Prefix = "vtctl"

// Config holds the settings.
type Config struct {
	Addr       string `envconfig:"ADDR" default:"localhost:8100"`
	Dir        string `envconfig:"DIR" default:"."`
	AutoCommit bool   `envconfig:"AUTOCOMMIT" default:"false"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev     bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Addr:     "localhost:8100",
		Dir:      ".",
		LogLevel: "info",
	}
}

// Log returns the logger configuration.
func (c *Config) Log() log.Config {
	return log.Config{
		Level:       c.LogLevel,
		Development: c.LogDev,
	}
}
