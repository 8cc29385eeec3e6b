// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - The center is the first returned id; leaves follow.
//   - Emits center -> leaf in leaf order.
//
// Complexity: O(n) vertices + O(n-1) edges.

package builder

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a star with one center and n-1 leaves.
func Star(n int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodStar, "n", n, minStarNodes); err != nil {
			return nil, err
		}

		ids := addVertices(t, n)
		center := ids[0]
		for _, leaf := range ids[1:] {
			if err := connect(t, cfg, methodStar, center, leaf); err != nil {
				return ids, err
			}
		}

		return ids, nil
	}
}
