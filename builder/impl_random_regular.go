// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_random_regular.go - implementation of RandomRegular(n, d) constructor.
//
// Contract:
//   - Undirected only (else ErrUnsupportedGraphMode).
//   - n ≥ 1, 0 ≤ d < n and n*d even (else ErrTooFewVertices).
//   - Requires cfg.rng (else ErrNeedRandSource).
//   - Stub-matching with a bounded number of shuffles; a matching with a loop
//     or a repeated pair is rejected (else ErrConstructFailed).
//
// Complexity: O(n*d) per attempt, constant-bounded attempts.

package builder

import "fmt"

const (
	methodRandomRegular     = "RandomRegular"
	minRRVertices           = 1
	maxStubMatchingAttempts = 64
)

// RandomRegular returns a Constructor that builds a simple d-regular graph.
func RandomRegular(n, d int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if cfg.directed {
			return nil, fmt.Errorf("%s: only undirected edges are supported: %w",
				methodRandomRegular, ErrUnsupportedGraphMode)
		}
		if err := validateMin(methodRandomRegular, "n", n, minRRVertices); err != nil {
			return nil, err
		}
		if d < 0 || d >= n {
			return nil, fmt.Errorf("%s: degree must be in [0,%d), got %d: %w",
				methodRandomRegular, n, d, ErrTooFewVertices)
		}
		if (n*d)%2 != 0 {
			return nil, fmt.Errorf("%s: n*d must be even (n=%d, d=%d): %w",
				methodRandomRegular, n, d, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return nil, fmt.Errorf("%s: rng is required: %w", methodRandomRegular, ErrNeedRandSource)
		}

		stubs := make([]int, 0, n*d)
		for i := 0; i < n; i++ {
			for k := 0; k < d; k++ {
				stubs = append(stubs, i)
			}
		}

		// Find a simple pairing before touching the target.
		rng := cfg.rng
		found := len(stubs) == 0
		for attempt := 0; attempt < maxStubMatchingAttempts && !found; attempt++ {
			rng.Shuffle(len(stubs), func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })
			found = simplePairing(stubs)
		}
		if !found {
			return nil, fmt.Errorf("%s: failed to construct after %d attempts: %w",
				methodRandomRegular, maxStubMatchingAttempts, ErrConstructFailed)
		}

		ids := addVertices(t, n)
		for i := 0; i < len(stubs); i += 2 {
			if err := connect(t, cfg, methodRandomRegular, ids[stubs[i]], ids[stubs[i+1]]); err != nil {
				return ids, err
			}
		}

		return ids, nil
	}
}

// simplePairing reports whether consecutive stub pairs form no loop and no
// repeated pair.
func simplePairing(stubs []int) bool {
	seen := make(map[[2]int]struct{}, len(stubs)/2)
	for i := 0; i < len(stubs); i += 2 {
		u, v := stubs[i], stubs[i+1]
		if u == v {
			return false
		}
		if u > v {
			u, v = v, u
		}
		key := [2]int{u, v}
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}

	return true
}
