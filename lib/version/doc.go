// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the tokenroute binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X. When a build omits them, [Commit] falls back to the VCS
// revision the Go toolchain stamped into the binary.
package version
