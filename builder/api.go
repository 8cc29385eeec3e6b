// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(t, bopts, cons...). Resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order produce
//     identical edge sequences.
//   - Safety: never panic; return sentinel errors from constructors.
//
// AI-Hints:
//   - Compose several constructors in one Build call; each returns its own
//     vertex ids, so disjoint components come out in call order.
//   - Use WithSeed(...) to freeze stochastic paths (RandomSparse/RandomRegular).

package builder

import (
	"fmt"

	"github.com/katalvlaran/fourd/core"
)

// Target is anything vertices and edges can be added to. *layout.Graph
// satisfies it.
type Target interface {
	AddVertex() int
	AddEdge(source, target int, opts ...core.EdgeOption) (int, error)
}

// Constructor applies a deterministic mutation to t and returns the ids of
// the vertices it created, in creation order. Constructors MUST:
//   - Validate parameters before touching t and return sentinel errors.
//   - Preserve determinism for the same config and call order.
type Constructor func(t Target, cfg builderConfig) ([]int, error)

// Build resolves the builder configuration from bopts and applies all
// constructors to t in order. It returns the concatenated vertex ids.
// Any constructor error is wrapped with "Build: %w" and returned
// immediately; vertices and edges added before the failure stay in t.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: sum of their costs.
//
// Errors:
//   - ErrConstructFailed for a nil target or constructor.
//   - Whatever the constructors return (wrapped).
func Build(t Target, bopts []BuilderOption, cons ...Constructor) ([]int, error) {
	if t == nil {
		return nil, fmt.Errorf("Build: nil target: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)

	var all []int
	for i, fn := range cons {
		if fn == nil {
			return all, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		ids, err := fn(t, cfg)
		all = append(all, ids...)
		if err != nil {
			return all, fmt.Errorf("Build: %w", err)
		}
	}

	return all, nil
}

// =============================================================================
// Topology factories (declarations) - implemented in impl_*.go
// =============================================================================
//
// Each factory returns a Constructor closure. The closure MUST emit edges in a
// stable, documented order and return only wrapped sentinel errors.

// Cycle builds an n-vertex simple cycle C_n (n ≥ 3).
//func Cycle(n int) Constructor

// Path builds a simple path P_n (n ≥ 2).
//func Path(n int) Constructor

// Star builds a star with the center first and n-1 leaves (n ≥ 2).
//func Star(n int) Constructor

// Wheel builds a wheel W_n = C_{n-1} + hub, hub last (n ≥ 4).
//func Wheel(n int) Constructor

// Complete builds the complete simple graph K_n (n ≥ 1).
//func Complete(n int) Constructor

// CompleteBipartite builds K_{n1,n2}, left side first.
//func CompleteBipartite(n1, n2 int) Constructor

// Grid builds an R×C 4-neighborhood grid in row-major order.
//func Grid(rows, cols int) Constructor

// RandomSparse builds an Erdős–Rényi G(n,p) graph. Requires cfg.rng for 0<p<1.
//func RandomSparse(n int, p float64) Constructor

// RandomRegular builds a d-regular simple graph via stub-matching with bounded retries.
//func RandomRegular(n, d int) Constructor

// PlatonicSolid builds a fixed Platonic topology; optionally adds a center hub.
//func PlatonicSolid(name PlatonicName, withCenter bool) Constructor
