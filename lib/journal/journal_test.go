// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/tokenroute/lib/clock"
	"github.com/bureau-foundation/tokenroute/lib/routeinfo"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

type tally struct{ n int }

func (t *tally) add(amount amount) int {
	t.n += int(amount)
	return t.n
}

type amount int

func (a *amount) UnmarshalText(text []byte) error {
	if string(text) == "one" {
		*a = 1
		return nil
	}
	return errors.New("only one is supported")
}

func newTable(t *testing.T) *router.Router[*tally] {
	t.Helper()
	table, err := router.New[*tally](router.Select(router.On("add", (*tally).add)))
	if err != nil {
		t.Fatalf("router.New() error: %v", err)
	}
	return table
}

func headerFor(table *router.Router[*tally]) Header {
	return Header{Table: "tally", Fingerprint: routeinfo.Fingerprint(table.Routes())}
}

func TestWriteRead(t *testing.T) {
	table := newTable(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.Fake(start)

	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, headerFor(table), WithClock(fake))
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	state := &tally{}
	for _, tokens := range [][]string{{"add", "one"}, {"add", "two"}, {"ad"}} {
		if _, err := writer.Record(tokens, table.Dispatch(state, tokens)); err != nil {
			t.Fatalf("Record(%v) error: %v", tokens, err)
		}
		fake.Advance(time.Second)
	}

	header, records, err := ReadAll(&buffer)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if header.Version != FormatVersion || header.Table != "tally" {
		t.Errorf("header = %+v", header)
	}
	if header.Fingerprint != routeinfo.Fingerprint(table.Routes()) {
		t.Errorf("header fingerprint = %s", header.Fingerprint)
	}
	if header.Created != start.UnixNano() {
		t.Errorf("header created = %d, want %d", header.Created, start.UnixNano())
	}
	if len(records) != 3 {
		t.Fatalf("read %d records, want 3", len(records))
	}

	ok := records[0]
	if !slices.Equal(ok.Tokens, []string{"add", "one"}) || ok.Outcome != "int" || ok.Leaf != "journal.(*tally).add" || ok.Failure != nil {
		t.Errorf("record 0 = %+v", ok)
	}
	if !ok.Timestamp().Equal(start) {
		t.Errorf("record 0 time = %v, want %v", ok.Timestamp(), start)
	}

	conversion := records[1].Failure
	if conversion == nil || conversion.Kind != "value_conversion_failed" || conversion.Token != "two" || conversion.Position != 1 {
		t.Errorf("record 1 failure = %+v", conversion)
	}

	invalid := records[2].Failure
	if invalid == nil || invalid.Kind != "invalid_action" || invalid.Suggestion != "add" {
		t.Errorf("record 2 failure = %+v", invalid)
	}
	if records[2].Timestamp().Sub(start) != 2*time.Second {
		t.Errorf("record 2 time = %v", records[2].Timestamp())
	}

	if records[0].ID == records[1].ID {
		t.Error("records share an ID")
	}
}

func TestOpenAppends(t *testing.T) {
	table := newTable(t)
	path := filepath.Join(t.TempDir(), "dispatch.journal")
	state := &tally{}

	for session := range 2 {
		writer, err := Open(path, headerFor(table))
		if err != nil {
			t.Fatalf("Open() session %d error: %v", session, err)
		}
		tokens := []string{"add", "one"}
		if _, err := writer.Record(tokens, table.Dispatch(state, tokens)); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Close() error: %v", err)
		}
	}

	_, records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("read %d records, want 2 (one per session)", len(records))
	}
}

func TestOpenRejectsOtherTable(t *testing.T) {
	table := newTable(t)
	path := filepath.Join(t.TempDir(), "dispatch.journal")

	writer, err := Open(path, headerFor(table))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	writer.Close()

	other := Header{Table: "other", Fingerprint: routeinfo.Fingerprint(nil)}
	if _, err := Open(path, other); !errors.Is(err, ErrFingerprintMismatch) {
		t.Errorf("Open() with another table error = %v, want ErrFingerprintMismatch", err)
	}
}

func TestReadAllRejectsBadHeader(t *testing.T) {
	var buffer bytes.Buffer
	if _, err := NewWriter(&buffer, Header{Version: 99}); err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	if _, _, err := ReadAll(&buffer); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("ReadAll() error = %v, want ErrUnsupportedVersion", err)
	}

	if _, _, err := ReadAll(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Errorf("ReadAll(empty) error = %v, want io.EOF", err)
	}
}
