// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// impl_platonic.go - implementation of PlatonicSolid(name, withCenter).
//
// Contract:
//   - Unknown name → ErrOptionViolation.
//   - Shell vertices come first in index order; with withCenter the hub is the
//     last returned id and is joined to every shell vertex.
//   - Shell edges are emitted in the fixed order of platonicEdgeSets.
//
// Complexity: O(V+E) for the chosen solid.

package builder

import "fmt"

const methodPlatonicSolid = "PlatonicSolid"

// PlatonicSolid returns a Constructor that builds the graph of a Platonic solid.
func PlatonicSolid(name PlatonicName, withCenter bool) Constructor {
	return func(t Target, cfg builderConfig) ([]int, error) {
		n, ok := platonicVertexCounts[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown solid %q: %w", methodPlatonicSolid, name, ErrOptionViolation)
		}
		edges, ok := platonicEdgeSets[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing edge set for %q: %w", methodPlatonicSolid, name, ErrConstructFailed)
		}

		ids := addVertices(t, n)
		for _, ch := range edges {
			if err := connect(t, cfg, methodPlatonicSolid, ids[ch.U], ids[ch.V]); err != nil {
				return ids, err
			}
		}

		if withCenter {
			hub := t.AddVertex()
			shell := ids
			ids = append(ids, hub)
			for _, v := range shell {
				if err := connect(t, cfg, methodPlatonicSolid, hub, v); err != nil {
					return ids, err
				}
			}
		}

		return ids, nil
	}
}
