// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "reflect"

// Value is a successful dispatch outcome: a payload tagged with its
// member of the producing Selector's [Union].
type Value struct {
	member  int
	typ     reflect.Type
	payload any
	leaf    string
}

// Type returns the union member type of the payload. This is the
// declared result type of the leaf, so an interface-typed result such
// as error reports the interface, not the dynamic type.
func (v Value) Type() reflect.Type { return v.typ }

// Member returns the index of Type in the union of the Selector that
// produced the value.
func (v Value) Member() int { return v.member }

// Payload returns the leaf's return value. A leaf that returns nothing
// yields [Unit].
func (v Value) Payload() any { return v.payload }

// Leaf returns the name of the leaf that produced the value.
func (v Value) Leaf() string { return v.leaf }

// As extracts the payload as T. It succeeds only when T is exactly the
// value's union member type; a nil interface payload of member type T
// yields T's zero value and true.
func As[T any](v Value) (T, bool) {
	var zero T
	if v.typ != reflect.TypeFor[T]() {
		return zero, false
	}
	if v.payload == nil {
		return zero, true
	}
	typed, ok := v.payload.(T)
	return typed, ok
}
