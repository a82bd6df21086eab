// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds test helpers shared across tokenroute
// packages.
//
// [RequireReceive] and [RequireClosed] bound a channel wait with a
// wall-clock timeout so that a broken server fails its test instead of
// hanging the run. [DiscardLogger] is a logger for code under test whose
// output does not matter.
package testutil
