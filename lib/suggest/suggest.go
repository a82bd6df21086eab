// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest finds the closest known name to a mistyped one.
package suggest

// MaxDistance is the largest edit distance still worth suggesting. It
// catches common typos (transpositions, dropped characters, extra
// characters) without offering unrelated names.
const MaxDistance = 3

// Closest returns the candidate nearest to unknown by edit distance,
// or "" if none is within MaxDistance. Ties go to the lexicographically
// smaller candidate, so the answer does not depend on candidate order.
func Closest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := MaxDistance + 1

	for _, candidate := range candidates {
		distance := Levenshtein(unknown, candidate)
		if distance < bestDistance || (distance == bestDistance && candidate < bestName) {
			bestDistance = distance
			bestName = candidate
		}
	}

	return bestName
}

// Levenshtein computes the Levenshtein edit distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to change one string into the other.
func Levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Use a single row of the distance matrix, updated in place.
	// This is O(min(m,n)) space instead of O(m*n).
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := previous[i] + 1
			insertion := current[i-1] + 1
			substitution := previous[i-1] + cost

			current[i] = min(deletion, min(insertion, substitution))
		}

		previous = current
	}

	return previous[len(a)]
}
