// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

// Cursor is an immutable view over a token sequence. Advancing
// produces a new Cursor; the underlying slice is never modified.
type Cursor struct {
	tokens []string
	offset int
}

// NewCursor returns a Cursor positioned at the first of tokens. The
// slice is borrowed, not copied, and must not be modified while the
// Cursor is in use.
func NewCursor(tokens []string) Cursor {
	return Cursor{tokens: tokens}
}

// Peek returns the next token without consuming it. The boolean is
// false when the cursor is exhausted.
func (c Cursor) Peek() (string, bool) {
	if c.offset >= len(c.tokens) {
		return "", false
	}
	return c.tokens[c.offset], true
}

// Rest returns a Cursor over every token after the next one. Rest of
// an empty cursor is an empty cursor.
func (c Cursor) Rest() Cursor {
	if c.offset >= len(c.tokens) {
		return c
	}
	return Cursor{tokens: c.tokens, offset: c.offset + 1}
}

// Empty reports whether no tokens remain.
func (c Cursor) Empty() bool {
	return c.offset >= len(c.tokens)
}

// Len returns the number of remaining tokens.
func (c Cursor) Len() int {
	return len(c.tokens) - c.offset
}

// Position returns the index of the next token within the original
// sequence. For an exhausted cursor this equals the sequence length.
func (c Cursor) Position() int {
	return c.offset
}

// Remaining returns a copy of the tokens not yet consumed.
func (c Cursor) Remaining() []string {
	if c.Empty() {
		return nil
	}
	remaining := make([]string, c.Len())
	copy(remaining, c.tokens[c.offset:])
	return remaining
}
