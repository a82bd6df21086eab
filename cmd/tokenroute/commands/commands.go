// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the tokenroute command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	communitycmd "github.com/bureau-foundation/tokenroute/cmd/tokenroute/community"
	configcmd "github.com/bureau-foundation/tokenroute/cmd/tokenroute/config"
	journalcmd "github.com/bureau-foundation/tokenroute/cmd/tokenroute/journal"
	routescmd "github.com/bureau-foundation/tokenroute/cmd/tokenroute/routes"
	rpgcmd "github.com/bureau-foundation/tokenroute/cmd/tokenroute/rpg"
	"github.com/bureau-foundation/tokenroute/lib/version"
)

// Root builds the complete command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "tokenroute",
		Description: `tokenroute: route token streams to typed handlers.

Each command line or request is a sequence of tokens. A routing table
matches literal tokens, converts argument tokens into typed values, and
calls the handler they lead to.`,
		Subcommands: []*cli.Command{
			rpgcmd.Command(),
			communitycmd.Command(),
			routescmd.Command(),
			journalcmd.Command(),
			configcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Printf("tokenroute %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Play the game with a saved world",
				Command:     "tokenroute rpg --state rpg.state",
			},
			{
				Description: "Serve the conference API",
				Command:     "tokenroute community serve --listen 127.0.0.1:8080",
			},
			{
				Description: "List a table's routes",
				Command:     "tokenroute routes community",
			},
		},
	}
}
