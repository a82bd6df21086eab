// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "tokenroute",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "routes",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					called = "routes"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"routes"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "routes" {
		t.Errorf("dispatched to %q, want %q", called, "routes")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "tokenroute",
		Subcommands: []*Command{
			{
				Name: "community",
				Subcommands: []*Command{
					{
						Name: "dispatch",
						Run: func(_ context.Context, args []string, logger *slog.Logger) error {
							called = "community dispatch"
							receivedArgs = args
							if logger == nil {
								t.Error("Run received a nil logger")
							}
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"community", "dispatch", "GET", "/x"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "community dispatch" {
		t.Errorf("dispatched to %q, want %q", called, "community dispatch")
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "GET" {
		t.Errorf("args = %v, want [GET /x]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var params struct {
		State string `flag:"state" desc:"state file"`
		Seed  uint64 `flag:"seed" default:"7"`
	}
	var receivedArgs []string

	command := &Command{
		Name:  "rpg",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("rpg", &params) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--state", "/tmp/s", "positional"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.State != "/tmp/s" {
		t.Errorf("state = %q, want /tmp/s", params.State)
	}
	if params.Seed != 7 {
		t.Errorf("seed = %d, want default 7", params.Seed)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "positional" {
		t.Errorf("args = %v, want [positional]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "tokenroute",
		Subcommands: []*Command{
			{Name: "routes", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "community", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"rotues"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "routes"?`) {
		t.Errorf("error = %q, want a suggestion for routes", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var params struct {
		Journal string `flag:"journal"`
	}
	command := &Command{
		Name:  "rpg",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("rpg", &params) },
		Run:   func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--jurnal", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --journal?") {
		t.Errorf("error = %q, want a suggestion for --journal", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "tokenroute",
		Subcommands: []*Command{{Name: "version"}},
	}
	if err := root.Execute(context.Background(), nil); err == nil || err.Error() != "subcommand required" {
		t.Errorf("Execute(no args) error = %v, want subcommand required", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var params struct {
		JSONOutput
	}
	root := &Command{
		Name:        "tokenroute",
		Description: "Route token streams.",
		Subcommands: []*Command{
			{
				Name:    "routes",
				Summary: "Print a routing table",
				Flags:   func() *pflag.FlagSet { return FlagsFromParams("routes", &params) },
				Examples: []Example{
					{Description: "List rpg routes", Command: "tokenroute routes rpg"},
				},
			},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()
	for _, fragment := range []string{"Route token streams.", "Usage:\n  tokenroute <command> [flags]", "routes", "Print a routing table"} {
		if !strings.Contains(help, fragment) {
			t.Errorf("root help missing %q:\n%s", fragment, help)
		}
	}

	buffer.Reset()
	routes := root.Subcommands[0]
	routes.parent = root
	routes.PrintHelp(&buffer)
	help = buffer.String()
	for _, fragment := range []string{"tokenroute routes [flags]", "--json", "# List rpg routes"} {
		if !strings.Contains(help, fragment) {
			t.Errorf("routes help missing %q:\n%s", fragment, help)
		}
	}
}
