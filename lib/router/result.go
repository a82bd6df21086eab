// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

// Result is the outcome of a dispatch: either a [Value] or an
// [*Error]. The zero Result is not meaningful; build one with [Ok] or
// [Fail].
type Result struct {
	value   Value
	failure *Error
}

// Ok returns a successful Result carrying value.
func Ok(value Value) Result {
	return Result{value: value}
}

// Fail returns a failed Result. Panics if err is nil.
func Fail(err *Error) Result {
	if err == nil {
		panic("router.Fail: nil error")
	}
	return Result{failure: err}
}

// IsOk reports whether the Result is a success.
func (r Result) IsOk() bool { return r.failure == nil }

// Value returns the success value. The boolean is false for a failed
// Result.
func (r Result) Value() (Value, bool) {
	if r.failure != nil {
		return Value{}, false
	}
	return r.value, true
}

// Failure returns the dispatch error, or nil on success.
func (r Result) Failure() *Error { return r.failure }

// Err returns the dispatch error as an error interface. On success it
// returns a nil interface, not a typed nil pointer.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	return r.failure
}

// Unwrap splits the Result into the conventional Go pair.
func (r Result) Unwrap() (Value, error) {
	if r.failure != nil {
		return Value{}, r.failure
	}
	return r.value, nil
}

// Map applies transform to a successful value. A failed Result passes
// through unchanged.
func (r Result) Map(transform func(Value) Value) Result {
	if r.failure != nil {
		return r
	}
	return Ok(transform(r.value))
}

// AndThen chains a further fallible step onto a successful value. A
// failed Result passes through unchanged and next is not called.
func (r Result) AndThen(next func(Value) Result) Result {
	if r.failure != nil {
		return r
	}
	return next(r.value)
}
