// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bureau-foundation/tokenroute/lib/config"
	"github.com/bureau-foundation/tokenroute/lib/journal"
	"github.com/bureau-foundation/tokenroute/lib/routemetrics"
	"github.com/bureau-foundation/tokenroute/lib/router"
	"github.com/bureau-foundation/tokenroute/lib/rpg"
	"github.com/bureau-foundation/tokenroute/lib/testutil"
)

const script = `spells add fireball 10
wizards add Gandalf 15
wizards Gandalf learn fireball
wizards Gandalf cast fireball
wizards Gandalf mana
# comments and blank lines are skipped

spells frostbolt cost
rol_dice
wizards Gandalf cast fireball
`

func newSession(t *testing.T, onError config.ErrorStrategy) *Session {
	t.Helper()
	table, err := rpg.NewRouter()
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &Session{
		Table:   table,
		State:   rpg.NewState(1),
		OnError: onError,
		Logger:  testutil.DiscardLogger(),
	}
}

func TestSessionContinue(t *testing.T) {
	session := newSession(t, config.Continue)

	var out bytes.Buffer
	if err := session.Run(context.Background(), strings.NewReader(script), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		`"spells add fireball 10" ok`,
		`"wizards add Gandalf 15" ok`,
		`"wizards Gandalf learn fireball" ok`,
		`"wizards Gandalf cast fireball" ok`,
		`"wizards Gandalf mana" wizard Gandalf has 5 mana`,
		`"spells frostbolt cost" error: unknown spell: frostbolt`,
		`"rol_dice" failed: invalid action "rol_dice" at position 0 (did you mean "roll_dice"?)`,
		`"wizards Gandalf cast fireball" error: not enough mana: Gandalf has 5, fireball costs 10`,
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), out.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSessionAbort(t *testing.T) {
	session := newSession(t, config.Abort)

	var out bytes.Buffer
	err := session.Run(context.Background(), strings.NewReader(script), &out)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run error = %v, want ErrAborted", err)
	}
	if !errors.Is(err, router.ErrInvalidAction) {
		t.Errorf("Run error = %v, want it to wrap ErrInvalidAction", err)
	}

	// Domain errors are outcomes, not routing failures, so the
	// frostbolt line does not abort.
	if !strings.Contains(out.String(), "unknown spell: frostbolt") {
		t.Errorf("output missing domain error line:\n%s", out.String())
	}
	if strings.Count(out.String(), "\n") != 7 {
		t.Errorf("expected 7 lines before abort, got:\n%s", out.String())
	}
}

func TestSessionPrompt(t *testing.T) {
	session := newSession(t, config.Continue)
	session.Prompt = "> "

	var out bytes.Buffer
	if err := session.Run(context.Background(), strings.NewReader("roll_dice\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), `> "roll_dice" dice show `) {
		t.Errorf("output = %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\n> ") {
		t.Errorf("expected a final prompt before EOF, got %q", out.String())
	}
}

func TestSessionCancelled(t *testing.T) {
	session := newSession(t, config.Continue)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.Run(ctx, strings.NewReader("roll_dice\n"), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestSessionJournal(t *testing.T) {
	session := newSession(t, config.Continue)

	var buffer bytes.Buffer
	writer, err := journal.NewWriter(&buffer, journal.Header{Table: "rpg"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	session.Journal = writer

	input := "spells add fireball 10\nspells fireball\n"
	if err := session.Run(context.Background(), strings.NewReader(input), io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	_, records, err := journal.ReadAll(&buffer)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Failure != nil {
		t.Errorf("first record failed: %+v", records[0].Failure)
	}
	if records[1].Failure == nil || records[1].Failure.Kind != "not_enough_input" {
		t.Errorf("second record failure = %+v, want not_enough_input", records[1].Failure)
	}
}

func TestSeedWorld(t *testing.T) {
	state := rpg.NewState(1)
	err := seedWorld(state, config.RPGConfig{
		Spells:  map[string]uint32{"fireball": 10, "blink": 3},
		Wizards: map[string]uint32{"Merlin": 20},
	})
	if err != nil {
		t.Fatalf("seedWorld: %v", err)
	}

	snapshot := state.Snapshot()
	if len(snapshot.Spells) != 2 || snapshot.Spells["blink"] != 3 {
		t.Errorf("spells = %v", snapshot.Spells)
	}
	if snapshot.Wizards["Merlin"] != 20 {
		t.Errorf("wizards = %v", snapshot.Wizards)
	}
}

func TestSessionRecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	session := newSession(t, config.Continue)
	session.Metrics = routemetrics.New(routemetrics.WithSubsystem("rpg"), routemetrics.WithRegistry(registry))

	if err := session.Run(context.Background(), strings.NewReader(script), io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	outcomes, err := session.Metrics.Outcomes(registry)
	if err != nil {
		t.Fatalf("Outcomes: %v", err)
	}
	// Domain errors are successful dispatches; only the misspelled
	// line is a routing failure.
	if outcomes["ok"] != 7 || outcomes["invalid_action"] != 1 {
		t.Errorf("outcomes = %v, want ok=7 invalid_action=1", outcomes)
	}
}
