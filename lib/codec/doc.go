// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides tokenroute's standard CBOR encoding
// configuration.
//
// JSON is used for external interfaces (the community HTTP API, CLI
// --json output). CBOR is used for everything tokenroute writes to
// disk: dispatch journals and state snapshots.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical data always produces identical bytes, which keeps
// snapshots diffable and journal records comparable.
//
// Argument types used by routing tables implement
// encoding.TextMarshaler and encoding.TextUnmarshaler. The codec
// encodes them as CBOR text strings through those methods, so a value
// converted from a token encodes back to the same token.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For streams (journals):
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// # Struct Tag Rules
//
// A `cbor` tag marks a type that is only ever serialized as CBOR.
// fxamacker/cbor reads `json` tags when `cbor` tags are absent, so a
// `json` tag alone serves both encodings. Types that are written to
// disk and also printed with --json (journal headers and records)
// carry both tags with the same key, so the two forms never drift.
//
// # Decoding Limits
//
// Decoding rejects duplicate map keys and bounds nesting depth and
// collection sizes, so a corrupt file fails with an error rather than
// an outsized allocation.
package codec
