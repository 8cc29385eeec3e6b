// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_bipartite.go - implementation of CompleteBipartite(n1, n2) constructor.
//
// Contract:
//   - n1 ≥ 1 and n2 ≥ 1 (else ErrTooFewVertices).
//   - Left side ids come first, then the right side.
//   - Emits left_i -> right_j, left side outer.
//
// Complexity: O(n1+n2) vertices + O(n1*n2) edges.

package builder

import "fmt"

const (
	methodCompleteBipartite = "CompleteBipartite"
	minPartitionSize        = 1
)

// CompleteBipartite returns a Constructor that builds K_{n1,n2}.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if n1 < minPartitionSize || n2 < minPartitionSize {
			return nil, fmt.Errorf("%s: n1=%d, n2=%d (each must be ≥ %d): %w",
				methodCompleteBipartite, n1, n2, minPartitionSize, ErrTooFewVertices)
		}

		ids := addVertices(t, n1+n2)
		left, right := ids[:n1], ids[n1:]
		for _, u := range left {
			for _, v := range right {
				if err := connect(t, cfg, methodCompleteBipartite, u, v); err != nil {
					return ids, err
				}
			}
		}

		return ids, nil
	}
}
