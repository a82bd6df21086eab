// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that timestamps journal records or measures dispatch latency
// takes a Clock instead of calling time.Now directly. Production code
// passes Real(); tests pass Fake() and move time explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	writer := journal.NewWriter(buffer, header, journal.WithClock(c))
//	c.Advance(5 * time.Second)
package clock
