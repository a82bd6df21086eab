// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package routeinfo describes routing tables: a stable fingerprint for
// identifying a table across processes and journal files, and a
// human-readable route listing.
package routeinfo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// tableDomainKey is the BLAKE3 key for table fingerprints: the ASCII
// domain name zero-padded to 32 bytes. Changing it invalidates every
// recorded fingerprint.
var tableDomainKey = [32]byte{
	't', 'o', 'k', 'e', 'n', 'r', 'o', 'u', 't', 'e', '.', 't', 'a', 'b', 'l', 'e',
}

// Fingerprint hashes the route list in declaration order. Order is
// part of a table's meaning (the first matching branch wins), so
// reordering branches changes the fingerprint. Each route contributes
// its pattern tokens and its outcome types; leaf function names do
// not, so renaming a Go function keeps the fingerprint.
func Fingerprint(routes []router.Route) Hash {
	hasher, err := blake3.NewKeyed(tableDomainKey[:])
	if err != nil {
		panic("routeinfo: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var scratch []byte
	field := func(value string) {
		scratch = binary.AppendUvarint(scratch[:0], uint64(len(value)))
		scratch = append(scratch, value...)
		hasher.Write(scratch)
	}
	for _, route := range routes {
		scratch = binary.AppendUvarint(scratch[:0], uint64(len(route.Pattern)))
		hasher.Write(scratch)
		for _, token := range route.Pattern {
			field(token)
		}
		field(route.Outcomes.String())
	}

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex digits, for display.
func (h Hash) Short() string {
	return h.String()[:12]
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash parses a 64-character hex string.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing table fingerprint: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("parsing table fingerprint: got %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
