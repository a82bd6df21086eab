// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type gameState struct {
	Spells  map[string]uint32   `cbor:"spells"`
	Wizards map[string]uint32   `cbor:"wizards"`
	Known   map[string][]string `cbor:"known"`
}

// largeState is repetitive enough that both algorithms compress it.
func largeState() gameState {
	state := gameState{
		Spells:  make(map[string]uint32),
		Wizards: make(map[string]uint32),
		Known:   make(map[string][]string),
	}
	for i := range 200 {
		spell := fmt.Sprintf("spell-%03d", i)
		wizard := fmt.Sprintf("wizard-%03d", i)
		state.Spells[spell] = uint32(i)
		state.Wizards[wizard] = 100
		state.Known[wizard] = []string{"spell-000", "spell-001", spell}
	}
	return state
}

func TestEncodeDecode(t *testing.T) {
	for _, algorithm := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(algorithm.String(), func(t *testing.T) {
			original := largeState()
			data, err := Encode(original, algorithm)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}

			var decoded gameState
			stored, err := Decode(data, &decoded)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if stored != algorithm {
				t.Errorf("stored compression = %s, want %s", stored, algorithm)
			}
			if len(decoded.Spells) != 200 || decoded.Wizards["wizard-042"] != 100 || len(decoded.Known["wizard-007"]) != 3 {
				t.Errorf("decoded state does not match original")
			}
		})
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	data, err := Encode(map[string]uint32{"a": 1}, CompressionZstd)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var decoded map[string]uint32
	stored, err := Decode(data, &decoded)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if stored != CompressionNone {
		t.Errorf("stored compression = %s, want none", stored)
	}
	if decoded["a"] != 1 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	valid, err := Encode(largeState(), CompressionLZ4)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("XXXX"), valid[4:]...)},
		{"bad version", append(append([]byte("TRSN"), 9), valid[5:]...)},
		{"truncated body", valid[:len(valid)-10]},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var decoded gameState
			if _, err := Decode(test.data, &decoded); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.snapshot")

	var missing gameState
	if err := Load(path, &missing); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	original := largeState()
	if err := Save(path, original, CompressionZstd); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file left behind: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	var loaded gameState
	if err := Load(path, &loaded); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.Known) != len(original.Known) {
		t.Errorf("loaded %d wizards, want %d", len(loaded.Known), len(original.Known))
	}
}

func TestParseCompression(t *testing.T) {
	for _, name := range []string{"", "none", "lz4", "zstd"} {
		algorithm, err := ParseCompression(name)
		if err != nil {
			t.Errorf("ParseCompression(%q) error: %v", name, err)
			continue
		}
		if name != "" && algorithm.String() != name {
			t.Errorf("ParseCompression(%q).String() = %q", name, algorithm)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded, want error")
	}
}
