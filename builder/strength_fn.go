// Package builder provides internal helper functions and types
// for configuring edge-strength distributions in graph constructors.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultEdgeStrength is the strength assigned to each edge when no custom
// StrengthFn is provided.
const DefaultEdgeStrength float64 = 1

// StrengthFn produces an edge strength given an optional *rand.Rand source.
// It must be deterministic for a given RNG seed.
type StrengthFn func(rng *rand.Rand) float64

// DefaultStrengthFn always returns DefaultEdgeStrength.
func DefaultStrengthFn(_ *rand.Rand) float64 {
	return DefaultEdgeStrength
}

// ConstantStrengthFn returns a StrengthFn that always yields value.
// Panics if value < 0 or is not finite.
func ConstantStrengthFn(value float64) StrengthFn {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantStrengthFn: value must be finite and ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformStrengthFn returns a StrengthFn sampling uniformly in [min, max).
// Panics if min < 0 or max < min.
// If rng is nil, yields DefaultEdgeStrength as a deterministic fallback.
func UniformStrengthFn(min, max float64) StrengthFn {
	if min < 0 || max < min || math.IsInf(max, 0) {
		panic(fmt.Sprintf("UniformStrengthFn: require 0 ≤ min ≤ max < ∞, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultEdgeStrength
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// NormalStrengthFn returns a StrengthFn sampling N(mean, stddev), clipped at 0.
// Panics if stddev < 0. If rng is nil, yields DefaultEdgeStrength.
func NormalStrengthFn(mean, stddev float64) StrengthFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalStrengthFn: stddev must be ≥ 0, got %f", stddev))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultEdgeStrength
		}

		return math.Max(0, rng.NormFloat64()*stddev+mean)
	}
}

// ExponentialStrengthFn returns a StrengthFn sampling Exp(rate).
// Panics if rate <= 0. If rng is nil, yields DefaultEdgeStrength.
func ExponentialStrengthFn(rate float64) StrengthFn {
	if rate <= 0 {
		panic(fmt.Sprintf("ExponentialStrengthFn: rate must be > 0, got %f", rate))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultEdgeStrength
		}

		return rng.ExpFloat64() / rate
	}
}
