// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package community is a conference-management API routed by
// [router]. A request is its path segments followed by its method, so
// that "GET /conferences/cppnow2020/speakers/326" becomes the tokens
//
//	conferences cppnow2020 speakers 326 GET
//
// The method is just the last token: the cursor knows nothing about
// HTTP. [NewHandler] serves the table over net/http.
package community
