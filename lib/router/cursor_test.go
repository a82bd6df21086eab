// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"slices"
	"testing"
)

func TestCursor_PeekAndRest(t *testing.T) {
	tokens := []string{"wizards", "add", "Gandalf"}
	cursor := NewCursor(tokens)

	token, ok := cursor.Peek()
	if !ok || token != "wizards" {
		t.Fatalf("Peek() = %q, %v, want \"wizards\", true", token, ok)
	}

	rest := cursor.Rest()
	if token, _ := rest.Peek(); token != "add" {
		t.Errorf("Rest().Peek() = %q, want \"add\"", token)
	}
	if rest.Position() != 1 {
		t.Errorf("Rest().Position() = %d, want 1", rest.Position())
	}

	// The original cursor is unaffected.
	if token, _ := cursor.Peek(); token != "wizards" {
		t.Errorf("original Peek() after Rest() = %q, want \"wizards\"", token)
	}
	if cursor.Len() != 3 || rest.Len() != 2 {
		t.Errorf("Len() = %d/%d, want 3/2", cursor.Len(), rest.Len())
	}
}

func TestCursor_Empty(t *testing.T) {
	cursor := NewCursor(nil)
	if !cursor.Empty() {
		t.Fatal("NewCursor(nil).Empty() = false")
	}
	if token, ok := cursor.Peek(); ok || token != "" {
		t.Errorf("Peek() on empty = %q, %v, want \"\", false", token, ok)
	}
	if rest := cursor.Rest(); !rest.Empty() || rest.Position() != 0 {
		t.Errorf("Rest() of empty cursor moved to position %d", rest.Position())
	}

	exhausted := NewCursor([]string{"one"}).Rest()
	if !exhausted.Empty() {
		t.Error("cursor past the last token is not empty")
	}
	if exhausted.Position() != 1 {
		t.Errorf("exhausted Position() = %d, want 1", exhausted.Position())
	}
	if exhausted.Remaining() != nil {
		t.Errorf("exhausted Remaining() = %v, want nil", exhausted.Remaining())
	}
}

func TestCursor_RemainingIsACopy(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	cursor := NewCursor(tokens).Rest()

	remaining := cursor.Remaining()
	if !slices.Equal(remaining, []string{"b", "c"}) {
		t.Fatalf("Remaining() = %v, want [b c]", remaining)
	}
	remaining[0] = "mutated"
	if tokens[1] != "b" {
		t.Errorf("modifying Remaining() changed the source slice: %v", tokens)
	}
}
