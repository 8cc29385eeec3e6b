// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Emits edges i -> i+1 for i=0..n-2.
//
// Complexity: O(n) vertices + O(n-1) edges.

package builder

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodPath, "n", n, minPathNodes); err != nil {
			return nil, err
		}

		ids := addVertices(t, n)
		for i := 0; i+1 < n; i++ {
			if err := connect(t, cfg, methodPath, ids[i], ids[i+1]); err != nil {
				return ids, err
			}
		}

		return ids, nil
	}
}
