// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"errors"
	"fmt"
	"reflect"
)

// Dispatch routes tokens through root with ctx bound as the first
// argument of every leaf. The returned Result is root's, untouched.
//
// Dispatch does not validate the table; a leaf that cannot accept the
// arguments its route binds causes a panic. Use [New] to validate once
// up front.
func Dispatch[C any](root *Selector, ctx C, tokens []string) Result {
	args := make([]reflect.Value, 1, 4)
	args[0] = reflect.ValueOf(&ctx).Elem()
	return root.route(NewCursor(tokens), args)
}

// DispatchWithoutContext routes tokens through root with nothing
// pre-bound.
func DispatchWithoutContext(root *Selector, tokens []string) Result {
	return root.route(NewCursor(tokens), nil)
}

// Router is a validated routing table whose leaves take a context of
// type C as their first parameter.
type Router[C any] struct {
	root *Selector
}

// New validates root for context type C: every leaf must accept the
// context, then the value of each enclosing Binder, and every further
// parameter must be buildable from a token. All problems are reported
// together.
func New[C any](root *Selector) (*Router[C], error) {
	if root == nil {
		return nil, errors.New("router: nil root selector")
	}
	if err := root.check([]reflect.Type{reflect.TypeFor[C]()}, nil); err != nil {
		return nil, fmt.Errorf("router: invalid routing table: %w", err)
	}
	return &Router[C]{root: root}, nil
}

// MustNew is like [New] but panics on error.
func MustNew[C any](root *Selector) *Router[C] {
	table, err := New[C](root)
	if err != nil {
		panic(err.Error())
	}
	return table
}

// Dispatch routes tokens with ctx bound as the first argument.
func (r *Router[C]) Dispatch(ctx C, tokens []string) Result {
	return Dispatch(r.root, ctx, tokens)
}

// Root returns the root Selector.
func (r *Router[C]) Root() *Selector { return r.root }

// Outcomes returns the union of every result type the table can
// produce.
func (r *Router[C]) Outcomes() Union { return r.root.union }

// Routes lists every leaf route, counting the context as bound.
func (r *Router[C]) Routes() []Route { return Routes(r.root, 1) }

// Lint reports branches that can never be selected.
func (r *Router[C]) Lint() []string { return Lint(r.root) }
