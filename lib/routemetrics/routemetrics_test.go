// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package routemetrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bureau-foundation/tokenroute/lib/clock"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

type counter struct{ calls int }

func (c *counter) bump() int {
	c.calls++
	return c.calls
}

func newTable(t *testing.T) *router.Router[*counter] {
	t.Helper()
	table, err := router.New[*counter](router.Select(
		router.On("bump", (*counter).bump),
	))
	if err != nil {
		t.Fatalf("router.New() error: %v", err)
	}
	return table
}

func TestDispatchRecordsOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := New(WithRegistry(registry), WithSubsystem("test"), WithClock(clock.Fake(time.Unix(0, 0))))
	table := newTable(t)
	state := &counter{}

	for _, tokens := range [][]string{
		{"bump"},
		{"bump"},
		{"bmp"},
		{"bump", "extra"},
		{},
	} {
		Dispatch(recorder, table, state, tokens)
	}

	if state.calls != 2 {
		t.Errorf("calls = %d, want 2", state.calls)
	}
	tests := []struct {
		outcome string
		want    float64
	}{
		{"ok", 2},
		{"invalid_action", 1},
		{"too_many_arguments", 1},
		{"not_enough_input", 1},
	}
	for _, test := range tests {
		got := testutil.ToFloat64(recorder.dispatches.WithLabelValues(test.outcome))
		if got != test.want {
			t.Errorf("dispatches_total{outcome=%q} = %v, want %v", test.outcome, got, test.want)
		}
	}
	if got := testutil.CollectAndCount(recorder.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}

	expected := `
# HELP tokenroute_test_dispatch_errors_total Total number of routing errors, by kind
# TYPE tokenroute_test_dispatch_errors_total counter
tokenroute_test_dispatch_errors_total{kind="invalid_action"} 1
tokenroute_test_dispatch_errors_total{kind="not_enough_input"} 1
tokenroute_test_dispatch_errors_total{kind="too_many_arguments"} 1
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "tokenroute_test_dispatch_errors_total"); err != nil {
		t.Errorf("GatherAndCompare() error: %v", err)
	}
}

func TestNilRecorder(t *testing.T) {
	table := newTable(t)
	state := &counter{}

	result := Dispatch(nil, table, state, []string{"bump"})
	if !result.IsOk() {
		t.Fatalf("Dispatch() failed: %v", result.Err())
	}
	if state.calls != 1 {
		t.Errorf("calls = %d, want 1", state.calls)
	}
}

func TestOutcome(t *testing.T) {
	table := newTable(t)
	if got := Outcome(table.Dispatch(&counter{}, []string{"bump"})); got != "ok" {
		t.Errorf("Outcome(ok) = %q, want %q", got, "ok")
	}
	if got := Outcome(table.Dispatch(&counter{}, []string{"nope"})); got != "invalid_action" {
		t.Errorf("Outcome(invalid) = %q, want %q", got, "invalid_action")
	}
}

func TestOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := New(WithRegistry(registry), WithSubsystem("rpg"))
	table := newTable(t)
	state := &counter{}

	for _, tokens := range [][]string{{"bump"}, {"bump"}, {"bmp"}} {
		Dispatch(recorder, table, state, tokens)
	}

	outcomes, err := recorder.Outcomes(registry)
	if err != nil {
		t.Fatalf("Outcomes() error: %v", err)
	}
	if len(outcomes) != 2 || outcomes["ok"] != 2 || outcomes["invalid_action"] != 1 {
		t.Errorf("Outcomes() = %v, want ok=2 invalid_action=1", outcomes)
	}
}

func TestOutcomesIgnoresOtherSubsystems(t *testing.T) {
	registry := prometheus.NewRegistry()
	game := New(WithRegistry(registry), WithSubsystem("rpg"))
	api := New(WithRegistry(registry), WithSubsystem("community"))
	table := newTable(t)

	Dispatch(api, table, &counter{}, []string{"bump"})

	outcomes, err := game.Outcomes(registry)
	if err != nil {
		t.Fatalf("Outcomes() error: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("Outcomes() = %v, want none for an idle recorder", outcomes)
	}

	var idle *Recorder
	if outcomes, err := idle.Outcomes(registry); outcomes != nil || err != nil {
		t.Errorf("nil Recorder Outcomes() = %v, %v", outcomes, err)
	}
}
