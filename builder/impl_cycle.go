// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewVertices).
//   - Emits edges in stable order i -> (i+1)%n for i=0..n-1.
//
// Complexity: O(n) vertices + O(n) edges.

package builder

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-vertex simple cycle C_n.
func Cycle(n int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodCycle, "n", n, minCycleNodes); err != nil {
			return nil, err
		}

		ids := addVertices(t, n)
		for i := 0; i < n; i++ {
			// for i==n-1 the ring closes back to 0
			if err := connect(t, cfg, methodCycle, ids[i], ids[(i+1)%n]); err != nil {
				return ids, err
			}
		}

		return ids, nil
	}
}
