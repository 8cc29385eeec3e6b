// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_complete.go - implementation of Complete(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - Emits each unordered pair {i,j} with i<j exactly once.
//
// Complexity:
//   - Time: O(n) vertices + O(n²) edges.
//   - Space: O(n) for the id slice.

package builder

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that builds the complete simple graph K_n.
func Complete(n int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodComplete, "n", n, minCompleteNodes); err != nil {
			return nil, err
		}

		ids := addVertices(t, n)
		// Pairs in stable lexicographic order (i,j), i<j.
		return ids, connectAll(t, cfg, methodComplete, ids)
	}
}
