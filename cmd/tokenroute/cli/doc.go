// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the tokenroute
// CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. The tree is assembled in cmd/tokenroute/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing and help output.
//
// Unknown subcommands and flags get a "did you mean" suggestion from
// lib/suggest (edit distance <= 3).
//
// Parameter structs bind flags from struct tags via [FlagsFromParams].
// Embedding [ConfigFlag] adds --config and config loading; embedding
// [JSONOutput] adds --json.
package cli
