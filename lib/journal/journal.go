// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal records dispatches as an append-only CBOR stream.
//
// A journal is a header followed by any number of records, each a
// single CBOR data item:
//
//	Header | Record | Record | ...
//
// The header carries the fingerprint of the routing table the records
// were dispatched against. Appending to a journal written for a
// different table fails with [ErrFingerprintMismatch], so a journal's
// records can always be replayed against the table that produced them.
package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/tokenroute/lib/clock"
	"github.com/bureau-foundation/tokenroute/lib/codec"
	"github.com/bureau-foundation/tokenroute/lib/routeinfo"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

// FormatVersion is written to every header.
const FormatVersion = 1

var (
	// ErrFingerprintMismatch is returned when appending to a journal
	// whose header names a different routing table.
	ErrFingerprintMismatch = errors.New("journal belongs to a different routing table")

	// ErrUnsupportedVersion is returned for headers with an unknown
	// FormatVersion.
	ErrUnsupportedVersion = errors.New("unsupported journal version")
)

// Header opens every journal.
type Header struct {
	Version     int            `cbor:"version" json:"version"`
	Table       string         `cbor:"table" json:"table"`
	Fingerprint routeinfo.Hash `cbor:"fingerprint" json:"fingerprint"`

	// Created is in Unix nanoseconds.
	Created int64 `cbor:"created" json:"created"`
}

// Record is one dispatch. Exactly one of Outcome and Failure is set.
type Record struct {
	ID     uuid.UUID `cbor:"id" json:"id"`
	Time   int64     `cbor:"time" json:"time"`
	Tokens []string  `cbor:"tokens" json:"tokens"`

	// Leaf and Outcome describe a successful dispatch: the leaf that
	// ran and the union member type it produced.
	Leaf    string `cbor:"leaf,omitempty" json:"leaf,omitempty"`
	Outcome string `cbor:"outcome,omitempty" json:"outcome,omitempty"`

	Failure *Failure `cbor:"failure,omitempty" json:"failure,omitempty"`
}

// Failure is the diagnostic of a failed dispatch.
type Failure struct {
	Kind       string `cbor:"kind" json:"kind"`
	Token      string `cbor:"token,omitempty" json:"token,omitempty"`
	Position   int    `cbor:"position" json:"position"`
	Suggestion string `cbor:"suggestion,omitempty" json:"suggestion,omitempty"`
}

// Timestamp returns Time as a time.Time.
func (r Record) Timestamp() time.Time {
	return time.Unix(0, r.Time)
}

// NewRecord describes result, the outcome of dispatching tokens.
func NewRecord(tokens []string, result router.Result, at time.Time) Record {
	record := Record{
		ID:     uuid.New(),
		Time:   at.UnixNano(),
		Tokens: append([]string(nil), tokens...),
	}
	if value, ok := result.Value(); ok {
		record.Leaf = value.Leaf()
		record.Outcome = value.Type().String()
		return record
	}
	failure := result.Failure()
	record.Failure = &Failure{
		Kind:       failure.Kind.String(),
		Token:      failure.Token,
		Position:   failure.Position,
		Suggestion: failure.Suggestion,
	}
	return record
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the clock used for timestamps.
func WithClock(source clock.Clock) Option {
	return func(w *Writer) {
		w.clock = source
	}
}

// Writer appends records to a journal. It is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	encoder *codec.Encoder
	closer  io.Closer
	clock   clock.Clock
	header  Header
}

// NewWriter writes header to w and returns a Writer appending after
// it. Zero Version and Created fields are filled in.
func NewWriter(w io.Writer, header Header, options ...Option) (*Writer, error) {
	writer := newWriter(w, header, options)
	if writer.header.Created == 0 {
		writer.header.Created = writer.clock.Now().UnixNano()
	}
	if err := writer.encoder.Encode(writer.header); err != nil {
		return nil, fmt.Errorf("writing journal header: %w", err)
	}
	return writer, nil
}

func newWriter(w io.Writer, header Header, options []Option) *Writer {
	if header.Version == 0 {
		header.Version = FormatVersion
	}
	writer := &Writer{
		encoder: codec.NewEncoder(w),
		clock:   clock.Real(),
		header:  header,
	}
	for _, option := range options {
		option(writer)
	}
	return writer
}

// Open opens the journal at path for appending, creating it with
// header if it does not exist. An existing journal must carry the same
// table fingerprint as header.
func Open(path string, header Header, options ...Option) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	if info.Size() == 0 {
		writer, err := NewWriter(file, header, options...)
		if err != nil {
			file.Close()
			return nil, err
		}
		writer.closer = file
		return writer, nil
	}

	existing, err := readHeader(codec.NewDecoder(file))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("journal %s: %w", path, err)
	}
	if existing.Fingerprint != header.Fingerprint {
		file.Close()
		return nil, fmt.Errorf("journal %s: %w (journal %s, table %s)",
			path, ErrFingerprintMismatch, existing.Fingerprint.Short(), header.Fingerprint.Short())
	}
	writer := newWriter(file, existing, options)
	writer.closer = file
	return writer, nil
}

// Header returns the journal's header.
func (w *Writer) Header() Header {
	return w.header
}

// Record appends the outcome of dispatching tokens and returns the
// record written.
func (w *Writer) Record(tokens []string, result router.Result) (Record, error) {
	record := NewRecord(tokens, result, w.clock.Now())

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.encoder.Encode(record); err != nil {
		return Record{}, fmt.Errorf("writing journal record: %w", err)
	}
	return record, nil
}

// Close closes the underlying file for writers created by Open.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// ReadAll decodes a journal.
func ReadAll(r io.Reader) (Header, []Record, error) {
	decoder := codec.NewDecoder(r)
	header, err := readHeader(decoder)
	if err != nil {
		return Header{}, nil, err
	}

	var records []Record
	for {
		var record Record
		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			return header, records, nil
		}
		if err != nil {
			return header, records, fmt.Errorf("reading journal record %d: %w", len(records), err)
		}
		records = append(records, record)
	}
}

// ReadFile decodes the journal at path.
func ReadFile(path string) (Header, []Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer file.Close()
	return ReadAll(file)
}

func readHeader(decoder *codec.Decoder) (Header, error) {
	var header Header
	if err := decoder.Decode(&header); err != nil {
		return Header{}, fmt.Errorf("reading journal header: %w", err)
	}
	if header.Version != FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	return header, nil
}
