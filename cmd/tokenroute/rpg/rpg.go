// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpg implements the "tokenroute rpg" command: an interactive
// wizards-and-spells game whose every line is a token stream routed by
// lib/router.
package rpg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/lib/config"
	"github.com/bureau-foundation/tokenroute/lib/journal"
	"github.com/bureau-foundation/tokenroute/lib/routeinfo"
	"github.com/bureau-foundation/tokenroute/lib/routemetrics"
	"github.com/bureau-foundation/tokenroute/lib/rpg"
	"github.com/bureau-foundation/tokenroute/lib/snapshot"
)

type params struct {
	cli.ConfigFlag
	State   string `flag:"state" desc:"state file restored at start and saved at exit (overrides rpg.state_file)"`
	Seed    uint64 `flag:"seed" desc:"dice seed (overrides rpg.seed; 0 picks one)"`
	Journal string `flag:"journal" desc:"append every line to this dispatch journal (overrides journal.path)"`
	OnError string `flag:"on-error" desc:"continue or abort at the first unroutable line (overrides on_error)"`
}

// Command returns the rpg command.
func Command() *cli.Command {
	var p params
	return &cli.Command{
		Name:    "rpg",
		Summary: "Play the wizards-and-spells game on stdin",
		Description: `Read game commands from stdin, one per line, and print the outcome of
each. Lines are split on whitespace and routed token by token:

  roll_dice
  spells add <spell> <mana>
  spells <spell> cost
  wizards add <wizard> <mana>
  wizards <wizard> learn|cast <spell>
  wizards <wizard> channel <mana>
  wizards <wizard> mana`,
		Usage: "tokenroute rpg [flags] < commands.txt",
		Examples: []cli.Example{
			{Description: "Play interactively with a persistent world", Command: "tokenroute rpg --state ~/.local/state/tokenroute/rpg.state"},
			{Description: "Run a script, stopping at the first bad line", Command: "tokenroute rpg --on-error abort < script.txt"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("rpg", &p) },
		Run: func(ctx context.Context, _ []string, _ *slog.Logger) error {
			return run(ctx, &p)
		},
	}
}

func run(ctx context.Context, p *params) error {
	cfg, logger, err := p.LoadConfig("tokenroute rpg")
	if err != nil {
		return err
	}
	applyOverrides(cfg, p)
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := rpg.NewRouter()
	if err != nil {
		return err
	}

	seed := cfg.RPG.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	state := rpg.NewState(seed)
	if err := loadWorld(state, cfg.RPG, logger); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	session := &Session{
		Table:   table,
		State:   state,
		Metrics: routemetrics.New(routemetrics.WithSubsystem("rpg"), routemetrics.WithRegistry(registry)),
		OnError: cfg.OnError,
		Logger:  logger,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		session.Prompt = cfg.Prompt
	}

	if cfg.Journal.Path != "" {
		writer, err := journal.Open(cfg.Journal.Path, journal.Header{
			Table:       "rpg",
			Fingerprint: routeinfo.Fingerprint(table.Routes()),
		})
		if err != nil {
			return err
		}
		defer writer.Close()
		session.Journal = writer
	}

	logger.Debug("session starting", "seed", seed, "state_file", cfg.RPG.StateFile, "journal", cfg.Journal.Path)
	// Reading stdin cannot be interrupted, so an interrupt abandons the
	// session goroutine rather than waiting for the next line.
	sessionDone := make(chan error, 1)
	go func() { sessionDone <- session.Run(ctx, os.Stdin, os.Stdout) }()
	var runErr error
	select {
	case runErr = <-sessionDone:
	case <-ctx.Done():
		logger.Debug("session interrupted")
	}

	if outcomes, err := session.Metrics.Outcomes(registry); err == nil {
		logger.Info("session finished", "outcomes", outcomes)
	} else {
		logger.Warn("reading session metrics", "error", err)
	}

	if cfg.RPG.StateFile != "" {
		if err := saveWorld(state, cfg.RPG); err != nil {
			return errors.Join(runErr, err)
		}
		logger.Debug("state saved", "path", cfg.RPG.StateFile)
	}

	if errors.Is(runErr, ErrAborted) {
		return &cli.ExitError{Code: 2}
	}
	return runErr
}

func applyOverrides(cfg *config.Config, p *params) {
	if p.State != "" {
		cfg.RPG.StateFile = p.State
	}
	if p.Seed != 0 {
		cfg.RPG.Seed = p.Seed
	}
	if p.Journal != "" {
		cfg.Journal.Path = p.Journal
	}
	if p.OnError != "" {
		cfg.OnError = config.ErrorStrategy(p.OnError)
	}
}

// loadWorld restores the state file if it exists, and otherwise seeds
// the world from the config's spells and wizards.
func loadWorld(state *rpg.State, cfg config.RPGConfig, logger *slog.Logger) error {
	if cfg.StateFile != "" {
		var saved rpg.Snapshot
		err := snapshot.Load(cfg.StateFile, &saved)
		if err == nil {
			logger.Debug("state restored", "path", cfg.StateFile, "wizards", len(saved.Wizards))
			return state.Restore(saved)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return seedWorld(state, cfg)
}

// seedWorld adds configured spells then wizards in name order, so that
// the resulting world does not depend on map iteration.
func seedWorld(state *rpg.State, cfg config.RPGConfig) error {
	for _, name := range sortedKeys(cfg.Spells) {
		if err := rpg.AddSpell(state, rpg.Spell{Name: name}, rpg.Mana(cfg.Spells[name])); err != nil {
			return fmt.Errorf("seeding spell %q: %w", name, err)
		}
	}
	for _, name := range sortedKeys(cfg.Wizards) {
		if err := rpg.AddWizard(state, rpg.Wizard{Name: name}, rpg.Mana(cfg.Wizards[name])); err != nil {
			return fmt.Errorf("seeding wizard %q: %w", name, err)
		}
	}
	return nil
}

func saveWorld(state *rpg.State, cfg config.RPGConfig) error {
	compression, err := snapshot.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}
	return snapshot.Save(cfg.StateFile, state.Snapshot(), compression)
}

func sortedKeys(values map[string]uint32) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
