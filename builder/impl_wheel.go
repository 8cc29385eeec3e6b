// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_wheel.go - implementation of Wheel(n) constructor.
//
// Contract:
//   - n ≥ 4 (else ErrTooFewVertices); the rim is C_{n-1}.
//   - Rim ids come first, the hub is the last returned id.
//   - Emits rim edges first, then hub -> rim spokes in rim order.
//
// Complexity: O(n) vertices + O(2n-2) edges.

package builder

import "fmt"

const (
	methodWheel   = "Wheel"
	minWheelNodes = 4 // outer cycle has size n-1 which must be ≥ 3
)

// Wheel returns a Constructor that builds W_n.
func Wheel(n int) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		if err := validateMin(methodWheel, "n", n, minWheelNodes); err != nil {
			return nil, err
		}

		rim, err := Cycle(n-1)(t, cfg)
		if err != nil {
			return rim, fmt.Errorf("%s: base cycle C_%d: %w", methodWheel, n-1, err)
		}

		hub := t.AddVertex()
		ids := append(rim, hub)
		for _, r := range rim {
			if err := connect(t, cfg, methodWheel, hub, r); err != nil {
				return ids, err
			}
		}

		return ids, nil
	}
}
