// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/tokenroute/lib/config"
)

// ConfigFlag is an embeddable struct that adds --config to a command's
// parameter struct.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to config file (default: $TOKENROUTE_CONFIG)"`
}

// LoadConfig loads --config if given, else TOKENROUTE_CONFIG if set,
// else the built-in defaults. It also returns a logger at the
// configured level, scoped with the command path.
func (f *ConfigFlag) LoadConfig(command string) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case f.ConfigPath != "":
		cfg, err = config.Load(f.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.LoadFromEnvironment()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, nil, err
	}

	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, NewCommandLogger(level).With("command", command), nil
}
