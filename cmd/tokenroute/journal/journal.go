// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal implements "tokenroute journal", for inspecting
// dispatch journals written by the rpg command.
package journal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/routes"
	"github.com/bureau-foundation/tokenroute/lib/codec"
	"github.com/bureau-foundation/tokenroute/lib/journal"
)

// Command returns the journal command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Summary: "Inspect dispatch journals",
		Subcommands: []*cli.Command{
			showCommand(),
			verifyCommand(),
		},
	}
}

type showParams struct {
	cli.JSONOutput
	Diagnostic bool `flag:"diag" desc:"print CBOR diagnostic notation, one item per line"`
}

func showCommand() *cli.Command {
	var p showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print a journal's header and records",
		Usage:   "tokenroute journal show [flags] <path>",
		Examples: []cli.Example{
			{Description: "List what a session did", Command: "tokenroute journal show rpg.journal"},
			{Description: "Inspect the raw encoding", Command: "tokenroute journal show --diag rpg.journal"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("show", &p) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a journal path")
			}
			if p.Diagnostic {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				return diagnose(os.Stdout, data)
			}

			header, records, err := journal.ReadFile(args[0])
			if err != nil {
				return err
			}
			if done, err := p.EmitJSON(os.Stdout, journalJSON{Header: header, Records: records}); done {
				return err
			}
			return show(os.Stdout, header, records)
		},
	}
}

type journalJSON struct {
	Header  journal.Header   `json:"header"`
	Records []journal.Record `json:"records"`
}

// show writes one line for the header and one per record.
func show(w io.Writer, header journal.Header, records []journal.Record) error {
	created := time.Unix(0, header.Created).UTC().Format(time.RFC3339)
	if _, err := fmt.Fprintf(w, "journal v%d table %s fingerprint %s created %s\n",
		header.Version, header.Table, header.Fingerprint.Short(), created); err != nil {
		return err
	}
	for _, record := range records {
		if _, err := fmt.Fprintln(w, describe(record)); err != nil {
			return err
		}
	}
	return nil
}

func describe(record journal.Record) string {
	prefix := fmt.Sprintf("%s %s %q", record.Timestamp().UTC().Format(time.RFC3339Nano), record.ID.String()[:8], strings.Join(record.Tokens, " "))
	if failure := record.Failure; failure != nil {
		line := fmt.Sprintf("%s failed %s at %d", prefix, failure.Kind, failure.Position)
		if failure.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %q?)", failure.Suggestion)
		}
		return line
	}
	return fmt.Sprintf("%s -> %s %s", prefix, record.Leaf, record.Outcome)
}

// diagnose writes each CBOR item in data as diagnostic notation, one
// per line. Items before a malformed one are still written.
func diagnose(w io.Writer, data []byte) error {
	items, err := codec.DiagnoseSequence(data)
	for _, item := range items {
		if _, writeErr := fmt.Fprintln(w, item); writeErr != nil {
			return writeErr
		}
	}
	return err
}

type verifyParams struct {
	cli.ConfigFlag
}

func verifyCommand() *cli.Command {
	var p verifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Check that a journal matches a built-in table",
		Description: `Decode every record of a journal and compare its header fingerprint
with the named built-in table. Exits non-zero when the table has changed
shape since the journal was written.`,
		Usage: "tokenroute journal verify [flags] <path> [table]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("verify", &p) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("expected a journal path and an optional table name")
			}
			_, logger, err := p.LoadConfig("tokenroute journal verify")
			if err != nil {
				return err
			}
			header, records, err := journal.ReadFile(args[0])
			if err != nil {
				return err
			}
			name := header.Table
			if len(args) == 2 {
				name = args[1]
			}
			if err := verify(header, name); err != nil {
				return err
			}
			logger.Info("journal verified", "table", name, "records", len(records))
			return nil
		},
	}
}

func verify(header journal.Header, tableName string) error {
	table, err := routes.Lookup(tableName)
	if err != nil {
		return err
	}
	if current := table.Fingerprint(); current != header.Fingerprint {
		return fmt.Errorf("%w: journal has %s, table %s is now %s",
			journal.ErrFingerprintMismatch, header.Fingerprint.Short(), tableName, current.Short())
	}
	return nil
}
