// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads tokenroute configuration.
//
// Configuration is loaded from a single file named by either the
// TOKENROUTE_CONFIG environment variable (via [LoadFromEnvironment])
// or a --config flag (via [Load]). There is no discovery and no
// per-field environment override. Commands run with [Default] when
// neither is given.
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas allowed; anything else is YAML.
//
// ${HOME} and ${VAR:-default} patterns are expanded in path fields
// after loading.
//
// This package depends on no other tokenroute packages.
package config
