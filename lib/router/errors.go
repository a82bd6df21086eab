// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "fmt"

// ErrorKind classifies a dispatch failure. The set is closed.
type ErrorKind uint8

const (
	// NotEnoughInput: a Selector, Binder or Leaf needed a token but the
	// cursor was exhausted.
	NotEnoughInput ErrorKind = iota + 1

	// TooManyArguments: a Leaf was fully applied but tokens remained.
	TooManyArguments

	// InvalidAction: no branch of a Selector matched the next token.
	InvalidAction

	// ValueConversionFailed: a token could not be converted to the
	// type a Binder or Leaf parameter required.
	ValueConversionFailed
)

// String returns the snake_case name of the kind.
func (kind ErrorKind) String() string {
	switch kind {
	case NotEnoughInput:
		return "not_enough_input"
	case TooManyArguments:
		return "too_many_arguments"
	case InvalidAction:
		return "invalid_action"
	case ValueConversionFailed:
		return "value_conversion_failed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind
// regardless of token, position or cause.
var (
	ErrNotEnoughInput        = &Error{Kind: NotEnoughInput}
	ErrTooManyArguments      = &Error{Kind: TooManyArguments}
	ErrInvalidAction         = &Error{Kind: InvalidAction}
	ErrValueConversionFailed = &Error{Kind: ValueConversionFailed}
)

// Error is a dispatch failure. The diagnostic it renders depends only
// on the failing token and its position, never on which branches were
// tried before it.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Token is the offending token: the unmatched token for
	// InvalidAction, the unconvertible token for ValueConversionFailed,
	// and the first surplus token for TooManyArguments. Empty for
	// NotEnoughInput.
	Token string

	// Position is the index of Token in the dispatched sequence. For
	// NotEnoughInput it is the sequence length.
	Position int

	// Suggestion is the closest key offered by the Selector that
	// rejected Token, or empty. Only set for InvalidAction.
	Suggestion string

	// Err is the conversion failure for ValueConversionFailed.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotEnoughInput:
		return fmt.Sprintf("not enough input: expected a token at position %d", e.Position)
	case TooManyArguments:
		return fmt.Sprintf("too many arguments: unexpected %q at position %d", e.Token, e.Position)
	case InvalidAction:
		if e.Suggestion != "" {
			return fmt.Sprintf("invalid action %q at position %d (did you mean %q?)", e.Token, e.Position, e.Suggestion)
		}
		return fmt.Sprintf("invalid action %q at position %d", e.Token, e.Position)
	case ValueConversionFailed:
		return fmt.Sprintf("cannot convert %q at position %d: %v", e.Token, e.Position, e.Err)
	default:
		return fmt.Sprintf("%s at position %d", e.Kind, e.Position)
	}
}

// Unwrap returns the conversion cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

func notEnoughInput(input Cursor) *Error {
	return &Error{Kind: NotEnoughInput, Position: input.Position()}
}

func tooManyArguments(input Cursor, token string) *Error {
	return &Error{Kind: TooManyArguments, Token: token, Position: input.Position()}
}

func conversionFailed(input Cursor, token string, cause error) *Error {
	return &Error{Kind: ValueConversionFailed, Token: token, Position: input.Position(), Err: cause}
}
