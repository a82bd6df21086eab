// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bureau-foundation/tokenroute/lib/suggest"
)

// Selector is an ordered list of branches. Dispatch tries them in
// declaration order and the first match wins, so a catch-all declared
// before a named branch shadows it.
type Selector struct {
	actions []Action
	keys    []string
	union   Union
}

// NewSelector builds a Selector from branches. It fails if there are
// no branches, if a branch has no handler, or if more than one branch
// is a catch-all.
func NewSelector(branches ...Branch) (*Selector, error) {
	if len(branches) == 0 {
		return nil, errors.New("router: selector has no branches")
	}

	selector := &Selector{actions: make([]Action, 0, len(branches))}
	catchAll := -1
	outcomes := make([]Union, 0, len(branches))
	for position, branch := range branches {
		if branch == nil {
			return nil, fmt.Errorf("router: selector branch %d is nil", position)
		}
		action := branch.action()
		if action.handler == nil {
			return nil, fmt.Errorf("router: selector branch %d has no handler", position)
		}
		if action.named {
			selector.keys = append(selector.keys, action.key)
		} else {
			if catchAll >= 0 {
				return nil, fmt.Errorf("router: selector branches %d and %d are both catch-alls", catchAll, position)
			}
			catchAll = position
		}
		selector.actions = append(selector.actions, action)
		outcomes = append(outcomes, action.handler.Outcomes())
	}
	selector.union = Merge(outcomes...)
	return selector, nil
}

// Select is like [NewSelector] but panics on error.
func Select(branches ...Branch) *Selector {
	selector, err := NewSelector(branches...)
	if err != nil {
		panic(err.Error())
	}
	return selector
}

// Actions returns a copy of the branches in declaration order.
func (s *Selector) Actions() []Action {
	actions := make([]Action, len(s.actions))
	copy(actions, s.actions)
	return actions
}

// Outcomes returns the flattened union of every branch's outcomes.
func (s *Selector) Outcomes() Union { return s.union }

func (s *Selector) action() Action { return Action{handler: s} }

func (s *Selector) route(input Cursor, args []reflect.Value) Result {
	token, ok := input.Peek()
	if !ok {
		return Fail(notEnoughInput(input))
	}

	for _, action := range s.actions {
		next := input
		if action.named {
			if action.key != token {
				continue
			}
			next = input.Rest()
		}
		return action.handler.route(next, args).Map(s.retag)
	}

	return Fail(&Error{
		Kind:       InvalidAction,
		Token:      token,
		Position:   input.Position(),
		Suggestion: suggest.Closest(token, s.keys),
	})
}

// retag re-expresses a branch's value in terms of this Selector's
// union.
func (s *Selector) retag(value Value) Value {
	value.member = s.union.IndexOf(value.typ)
	return value
}

func (s *Selector) check(bound []reflect.Type, path []string) error {
	var errs []error
	for _, action := range s.actions {
		branchPath := path
		if action.named {
			branchPath = append(path[:len(path):len(path)], action.key)
		}
		if err := action.handler.check(bound, branchPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Selector) walk(visitor *walker, path []string, bound int) {
	catchAll := false
	seen := make(map[string]bool, len(s.keys))
	for _, action := range s.actions {
		if !action.named {
			catchAll = true
			action.handler.walk(visitor, path, bound)
			continue
		}
		switch {
		case catchAll:
			visitor.warn(path, "branch %q is shadowed by a catch-all declared before it", action.key)
		case seen[action.key]:
			visitor.warn(path, "branch %q is declared more than once; only the first is reachable", action.key)
		}
		seen[action.key] = true
		action.handler.walk(visitor, append(path[:len(path):len(path)], action.key), bound)
	}
}
