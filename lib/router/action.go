// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"reflect"
)

// Handler is one of the three routing shapes: [*Leaf], [*Selector] or
// [*Binder]. The set is closed.
type Handler interface {
	Branch

	// Outcomes returns the union of result types this handler can
	// produce.
	Outcomes() Union

	// route consumes input and the bound arguments to produce a Result.
	route(input Cursor, args []reflect.Value) Result

	// check verifies that the handler accepts the argument types bound
	// on the way to it. path names the route for error messages.
	check(bound []reflect.Type, path []string) error

	// walk visits every leaf reachable from the handler.
	walk(visitor *walker, path []string, bound int)
}

// Branch is anything that can be listed in a Selector: an [Action], or
// a bare [Handler], which is treated as a catch-all.
type Branch interface {
	action() Action
}

// Action pairs an optional match key with a handler. An Action without
// a key is a catch-all.
type Action struct {
	key     string
	named   bool
	handler Handler
}

// On returns an Action that matches when the next token equals key
// byte for byte. The matched token is consumed before target runs.
// target is a [Handler] or a function, which is wrapped with [Func].
// Panics if target is neither.
func On(key string, target any) Action {
	return Action{key: key, named: true, handler: handlerOf(target)}
}

// Otherwise returns a catch-all Action: it matches any token and
// consumes none itself. target is as for [On].
func Otherwise(target any) Action {
	return Action{handler: handlerOf(target)}
}

// Key returns the match key. The boolean is false for a catch-all.
func (a Action) Key() (string, bool) { return a.key, a.named }

// Handler returns the handler the action delegates to.
func (a Action) Handler() Handler { return a.handler }

func (a Action) action() Action { return a }

func handlerOf(target any) Handler {
	switch typed := target.(type) {
	case nil:
		panic("router: nil action target")
	case Handler:
		if value := reflect.ValueOf(typed); value.Kind() == reflect.Pointer && value.IsNil() {
			panic(fmt.Sprintf("router: nil %T action target", typed))
		}
		return typed
	default:
		return Func(target)
	}
}
