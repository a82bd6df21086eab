// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config implements "tokenroute config", which prints the
// effective configuration.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/lib/config"
)

type params struct {
	cli.ConfigFlag
	cli.JSONOutput
}

// Command returns the config command.
func Command() *cli.Command {
	var p params
	return &cli.Command{
		Name:    "config",
		Summary: "Print the effective configuration",
		Description: `Load the configuration the other commands would use (--config, then
$TOKENROUTE_CONFIG, then built-in defaults), validate it, and print it
as YAML. Variables in paths are shown expanded.`,
		Usage: "tokenroute config [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("config", &p) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("config takes no positional arguments, got %q", args[0])
			}
			cfg, _, err := p.LoadConfig("tokenroute config")
			if err != nil {
				return err
			}
			if done, err := p.EmitJSON(os.Stdout, cfg); done {
				return err
			}
			return writeYAML(os.Stdout, cfg)
		},
	}
}

func writeYAML(w io.Writer, cfg *config.Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}
