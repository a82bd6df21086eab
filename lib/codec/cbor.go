// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding.
var encMode cbor.EncMode

// decMode accepts standard CBOR with bounded nesting and sizes, and
// rejects duplicate map keys. Unknown fields are ignored.
var decMode cbor.DecMode

// Decoding limits. Journals and snapshots are read back from disk and
// may be truncated or hand-edited; a corrupt length prefix must fail
// instead of allocating.
const (
	maxNestedLevels = 16
	maxElements     = 1 << 20
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Argument types (rpg.Spell, community.RoomID, ...) encode as text
	// strings via MarshalText rather than as their underlying struct.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Map keys are always strings. Only affects any-typed targets.
		DefaultMapType:   reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler:  cbor.TextUnmarshalerTextString,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  maxNestedLevels,
		MaxArrayElements: maxElements,
		MaxMapPairs:      maxElements,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns a CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// first data item in data and the remaining bytes.
func Diagnose(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

// DiagnoseSequence renders every item of a CBOR sequence (RFC 8742),
// such as a journal, as one notation string per item. A malformed item
// fails with its byte offset; the items before it are still returned.
func DiagnoseSequence(data []byte) ([]string, error) {
	var items []string
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(remaining)
		if err != nil {
			return items, fmt.Errorf("codec: item %d at byte %d: %w", len(items), len(data)-len(remaining), err)
		}
		items = append(items, notation)
		remaining = rest
	}
	return items, nil
}
