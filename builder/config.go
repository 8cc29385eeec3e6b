// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng        = nil              (pure/deterministic unless seeded)
//   - strengthFn = DefaultStrengthFn (every edge has strength 1)
//   - directed   = false

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Strength generator for emitted edges.
	strengthFn StrengthFn
	// Emit directed edges (subject to the layout's gravity term).
	directed bool
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:        nil,
		strengthFn: DefaultStrengthFn,
		directed:   false,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
