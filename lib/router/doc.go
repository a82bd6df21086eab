// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package router dispatches a flat sequence of string tokens through a
// declaratively composed tree of named actions to exactly one leaf
// handler.
//
// A routing table is built once from three handler shapes:
//
//   - [Selector]: an ordered list of branches tried in declaration
//     order. A branch built with [On] matches when its key equals the
//     next token exactly and consumes that token. A branch built with
//     [Otherwise], or a bare handler, is a catch-all: it always matches
//     and consumes nothing itself. At most one catch-all is allowed per
//     Selector, and it should come last since the first match wins.
//   - [Binder]: consumes one token, converts it to a typed value
//     ([Argument], [Arg]), and continues into a nested Selector with
//     that value appended to the bound arguments.
//   - [Leaf]: an ordinary Go function. Its parameters are the bound
//     arguments in order (the dispatch context first, then one per
//     enclosing Binder); any parameters beyond those are filled from
//     the remaining tokens. Once the function is fully applied, any
//     leftover token is an error.
//
// For example:
//
//	table := router.Select(
//	    router.On("roll_dice", rpg.RollDice),
//	    router.On("wizards", router.Select(
//	        router.On("add", rpg.AddWizard),
//	        router.Arg[rpg.Wizard](
//	            router.On("learn", rpg.Learn),
//	        ),
//	    )),
//	)
//	result := router.Dispatch(table, state, []string{"wizards", "add", "Gandalf", "50"})
//
// Every Selector computes, at construction, the [Union] of the result
// types of every leaf reachable from it: nested unions are flattened
// and duplicates collapse. A successful [Result] carries a [Value]
// tagged with its member of that union. A failed Result carries an
// [*Error] whose [ErrorKind] is one of NotEnoughInput,
// TooManyArguments, InvalidAction or ValueConversionFailed.
//
// Routing tables are immutable after construction and may be shared by
// concurrent dispatches. The router never inspects the context; any
// locking it needs is the context's own business. Dispatch performs no
// I/O and never retries: the first error short-circuits the walk.
//
// [New] validates every leaf signature against the argument types that
// reach it, so that a validated [Router] never panics during dispatch.
// The package-level [Dispatch] skips validation and panics if a leaf
// cannot accept what its route binds.
package router
