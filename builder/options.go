// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes constructors by mutating a builderConfig before
// construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithStrengthFn overrides the per-edge strength generator. Panics on nil.
func WithStrengthFn(fn StrengthFn) BuilderOption {
	if fn == nil {
		panic("builder: WithStrengthFn(nil)")
	}
	return func(c *builderConfig) {
		c.strengthFn = fn
	}
}

// WithDirected makes constructors emit directed edges. Each edge then lifts
// its target in the layout; no mirror edge is added.
func WithDirected(directed bool) BuilderOption {
	return func(c *builderConfig) {
		c.directed = directed
	}
}
