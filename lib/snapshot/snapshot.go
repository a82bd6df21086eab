// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists a CBOR-encoded value to a single file,
// optionally compressed. The rpg command uses it to carry game state
// across sessions.
//
// File layout:
//
//	magic "TRSN" | version (1 byte) | compression (1 byte) |
//	uncompressed size (uvarint) | body
//
// Files are written atomically (temporary file, fsync, rename), so a
// reader never sees a partial snapshot.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/tokenroute/lib/codec"
)

const (
	magic   = "TRSN"
	version = 1

	// maxBodySize bounds the size field so a corrupt header cannot
	// trigger a huge allocation.
	maxBodySize = 64 << 20
)

// ErrCorrupt is wrapped by errors for malformed snapshot files.
var ErrCorrupt = errors.New("corrupt snapshot")

// Encode serializes value and frames it. If the requested algorithm
// does not shrink the body, it is stored uncompressed.
func Encode(value any, algorithm Compression) ([]byte, error) {
	body, err := codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	stored, err := compress(body, algorithm)
	if errors.Is(err, errIncompressible) {
		algorithm, stored = CompressionNone, body
	} else if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(magic)+2+binary.MaxVarintLen64+len(stored))
	frame = append(frame, magic...)
	frame = append(frame, version, byte(algorithm))
	frame = binary.AppendUvarint(frame, uint64(len(body)))
	return append(frame, stored...), nil
}

// Decode unframes data and decodes the body into value. It returns
// the compression the body was stored with.
func Decode(data []byte, value any) (Compression, error) {
	header := len(magic) + 2
	if len(data) < header || string(data[:len(magic)]) != magic {
		return 0, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if data[len(magic)] != version {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, data[len(magic)])
	}
	algorithm := Compression(data[len(magic)+1])

	size, n := binary.Uvarint(data[header:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad size field", ErrCorrupt)
	}
	if size > maxBodySize {
		return 0, fmt.Errorf("%w: body size %d exceeds limit", ErrCorrupt, size)
	}

	body, err := decompress(data[header+n:], algorithm, int(size))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := codec.Unmarshal(body, value); err != nil {
		return 0, fmt.Errorf("decoding snapshot: %w", err)
	}
	return algorithm, nil
}

// Save atomically writes value to path. The file has mode 0600 and
// the parent directory must exist.
func Save(path string, value any, algorithm Compression) error {
	data, err := Encode(value, algorithm)
	if err != nil {
		return err
	}

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary snapshot file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary snapshot file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary snapshot file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary snapshot file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}

	if parentDirectory, err := os.Open(filepath.Dir(path)); err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}

// Load reads path into value. When the file does not exist the error
// wraps os.ErrNotExist.
func Load(path string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := Decode(data, value); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
