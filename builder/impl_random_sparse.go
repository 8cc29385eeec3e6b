// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices); p ∈ [0,1] (else ErrInvalidProbability).
//   - 0<p<1 requires cfg.rng (else ErrNeedRandSource). p=0 and p=1 are
//     deterministic and need no RNG.
//   - Undirected: each pair (i<j) is drawn once. Directed: each ordered pair
//     (i≠j) is drawn once, i outer.
//
// Complexity: O(n²) pair checks.
//
// Determinism: fixed seed and options give the same edges in the same order.

package builder

import "fmt"

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that builds an Erdős–Rényi G(n,p) graph.
func RandomSparse(n int, p float64) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodRandomSparse, "n", n, minRandomSparseVertices); err != nil {
			return nil, err
		}
		if p < probMin || p > probMax {
			return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return nil, fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		ids := addVertices(t, n)
		keep := func() bool {
			switch {
			case p == probMin:
				return false
			case p == probMax:
				return true
			default:
				return cfg.rng.Float64() < p
			}
		}

		for i := 0; i < n; i++ {
			start := i + 1
			if cfg.directed {
				start = 0
			}
			for j := start; j < n; j++ {
				if i == j || !keep() {
					continue
				}
				if err := connect(t, cfg, methodRandomSparse, ids[i], ids[j]); err != nil {
					return ids, err
				}
			}
		}

		return ids, nil
	}
}
