// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"fmt"
	"strings"
)

// Route describes one leaf reachable from a Selector.
type Route struct {
	// Pattern is the token shape that reaches the leaf: literal keys,
	// and "<Type>" for each token converted into an argument.
	Pattern []string

	// Leaf is the leaf's name.
	Leaf string

	// Arity is the leaf's total parameter count.
	Arity int

	// Outcomes is the leaf's own result union.
	Outcomes Union
}

// String joins the pattern with spaces.
func (r Route) String() string { return strings.Join(r.Pattern, " ") }

// Routes lists every leaf reachable from root in declaration order.
// prebound is the number of arguments supplied before the first token:
// 1 for [Dispatch], 0 for [DispatchWithoutContext]. Leaf parameters
// beyond the bound ones appear in the pattern as placeholders.
func Routes(root *Selector, prebound int) []Route {
	visitor := &walker{}
	root.walk(visitor, nil, prebound)
	return visitor.routes
}

// Lint reports, for every Selector under root, named branches that
// dispatch can never reach: those after a catch-all and repeated keys.
func Lint(root *Selector) []string {
	visitor := &walker{}
	root.walk(visitor, nil, 0)
	return visitor.warnings
}

type walker struct {
	routes   []Route
	warnings []string
}

func (w *walker) warn(path []string, format string, args ...any) {
	location := strings.Join(path, " ")
	if location == "" {
		location = "(root)"
	}
	w.warnings = append(w.warnings, location+": "+fmt.Sprintf(format, args...))
}
