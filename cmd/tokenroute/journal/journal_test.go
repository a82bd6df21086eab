// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/routes"
	"github.com/bureau-foundation/tokenroute/lib/clock"
	"github.com/bureau-foundation/tokenroute/lib/journal"
	"github.com/bureau-foundation/tokenroute/lib/rpg"
)

// writeJournal dispatches lines through the rpg table into an
// in-memory journal and returns its bytes.
func writeJournal(t *testing.T, lines ...string) []byte {
	t.Helper()
	table, err := routes.Lookup("rpg")
	if err != nil {
		t.Fatal(err)
	}
	router, err := rpg.NewRouter()
	if err != nil {
		t.Fatal(err)
	}

	var buffer bytes.Buffer
	source := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	writer, err := journal.NewWriter(&buffer, journal.Header{Table: "rpg", Fingerprint: table.Fingerprint()}, journal.WithClock(source))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	state := rpg.NewState(7)
	for _, line := range lines {
		tokens := strings.Fields(line)
		if _, err := writer.Record(tokens, router.Dispatch(state, tokens)); err != nil {
			t.Fatalf("Record: %v", err)
		}
		source.Advance(time.Second)
	}
	return buffer.Bytes()
}

func TestShow(t *testing.T) {
	data := writeJournal(t, "spells add fireball 10", "spels fireball cost")
	header, records, err := journal.ReadAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	var out bytes.Buffer
	if err := show(&out, header, records); err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "journal v1 table rpg fingerprint "+header.Fingerprint.Short()) {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2026-03-01T12:00:00Z ") || !strings.HasSuffix(lines[1], `"spells add fireball 10" -> rpg.AddSpell error`) {
		t.Errorf("first record line = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], `"spels fireball cost" failed invalid_action at 0 (did you mean "spells"?)`) {
		t.Errorf("second record line = %q", lines[2])
	}
}

func TestDiagnose(t *testing.T) {
	data := writeJournal(t, "roll_dice", "roll_dice")

	var out bytes.Buffer
	if err := diagnose(&out, data); err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d items, want header and two records:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"table": "rpg"`) {
		t.Errorf("header notation = %q", lines[0])
	}

	if err := diagnose(&out, data[:len(data)-1]); err == nil {
		t.Error("diagnose of a truncated journal succeeded")
	}
}

func TestVerify(t *testing.T) {
	header, _, err := journal.ReadAll(bytes.NewReader(writeJournal(t, "roll_dice")))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if err := verify(header, "rpg"); err != nil {
		t.Errorf("verify against its own table: %v", err)
	}
	if err := verify(header, "community"); !errors.Is(err, journal.ErrFingerprintMismatch) {
		t.Errorf("verify against another table = %v, want ErrFingerprintMismatch", err)
	}
	if err := verify(header, "billing"); err == nil {
		t.Error("verify against an unknown table succeeded")
	}
}

func TestVerifyCommandAcceptsConfig(t *testing.T) {
	var verifyCmd *cli.Command
	for _, sub := range Command().Subcommands {
		if sub.Name == "verify" {
			verifyCmd = sub
		}
	}
	if verifyCmd == nil {
		t.Fatal("journal has no verify subcommand")
	}
	if verifyCmd.Flags == nil || verifyCmd.Flags().Lookup("config") == nil {
		t.Error("journal verify has no --config flag; its logger would ignore log_level")
	}
}
