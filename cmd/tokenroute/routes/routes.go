// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package routes implements "tokenroute routes", which prints the
// routing tables built into the binary.
package routes

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/lib/community"
	"github.com/bureau-foundation/tokenroute/lib/routeinfo"
	"github.com/bureau-foundation/tokenroute/lib/router"
	"github.com/bureau-foundation/tokenroute/lib/rpg"
)

// Table is a named routing table.
type Table struct {
	Name   string
	Routes []router.Route
	Lint   []string
}

// Names lists the built-in tables.
func Names() []string {
	return []string{"community", "rpg"}
}

// Lookup builds the named table.
func Lookup(name string) (Table, error) {
	var (
		routes []router.Route
		lint   []string
	)
	switch name {
	case "rpg":
		table, err := rpg.NewRouter()
		if err != nil {
			return Table{}, err
		}
		routes, lint = table.Routes(), table.Lint()
	case "community":
		table, err := community.NewRouter()
		if err != nil {
			return Table{}, err
		}
		routes, lint = table.Routes(), table.Lint()
	default:
		return Table{}, fmt.Errorf("unknown table %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return Table{Name: name, Routes: routes, Lint: lint}, nil
}

// Fingerprint hashes the table's routes.
func (t Table) Fingerprint() routeinfo.Hash {
	return routeinfo.Fingerprint(t.Routes)
}

type params struct {
	cli.ConfigFlag
	cli.JSONOutput
}

// routeJSON is the --json form of one route.
type routeJSON struct {
	Pattern  string   `json:"pattern"`
	Leaf     string   `json:"leaf"`
	Arity    int      `json:"arity"`
	Outcomes []string `json:"outcomes"`
}

type tableJSON struct {
	Table       string         `json:"table"`
	Fingerprint routeinfo.Hash `json:"fingerprint"`
	Routes      []routeJSON    `json:"routes"`
	Warnings    []string       `json:"warnings"`
}

// Command returns the routes command.
func Command() *cli.Command {
	var p params
	return &cli.Command{
		Name:    "routes",
		Summary: "List the routes of a built-in table",
		Description: `Print every token pattern a routing table accepts, the leaf it reaches,
and the outcome types that leaf can produce. The table fingerprint
identifies the table's shape and is recorded in dispatch journals.

Tables: ` + strings.Join(Names(), ", "),
		Usage: "tokenroute routes [flags] <table>",
		Examples: []cli.Example{
			{Description: "Show the game's commands", Command: "tokenroute routes rpg"},
			{Description: "Fingerprint the conference API", Command: "tokenroute routes community --json | jq -r .fingerprint"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("routes", &p) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one table name (%s)", strings.Join(Names(), ", "))
			}
			_, logger, err := p.LoadConfig("tokenroute routes")
			if err != nil {
				return err
			}
			table, err := Lookup(args[0])
			if err != nil {
				return err
			}
			for _, warning := range table.Lint {
				logger.Warn("unreachable branch", "table", table.Name, "warning", warning)
			}
			if done, err := p.EmitJSON(os.Stdout, tableToJSON(table)); done {
				return err
			}
			return routeinfo.Render(os.Stdout, table.Routes, term.IsTerminal(int(os.Stdout.Fd())))
		},
	}
}

func tableToJSON(table Table) tableJSON {
	result := tableJSON{
		Table:       table.Name,
		Fingerprint: table.Fingerprint(),
		Routes:      make([]routeJSON, 0, len(table.Routes)),
		Warnings:    slices.Clone(table.Lint),
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	for _, route := range table.Routes {
		outcomes := make([]string, 0, route.Outcomes.Len())
		for _, member := range route.Outcomes.Members() {
			outcomes = append(outcomes, member.String())
		}
		result.Routes = append(result.Routes, routeJSON{
			Pattern:  route.String(),
			Leaf:     route.Leaf,
			Arity:    route.Arity,
			Outcomes: outcomes,
		})
	}
	return result
}
