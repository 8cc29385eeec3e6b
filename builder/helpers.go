// Package builder: internal helpers shared by the impl_*.go constructors.
package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fourd/core"
)

// addVertices inserts n fresh vertices into t and returns their ids.
// Complexity: O(n).
func addVertices(t Target, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = t.AddVertex()
	}

	return ids
}

// connect adds one edge u→v carrying the configured strength and direction.
// A strength function that yields a negative or non-finite value is reported
// as ErrOptionViolation instead of reaching core.WithStrength, which panics.
func connect(t Target, cfg builderConfig, method string, u, v int) error {
	s := cfg.strengthFn(cfg.rng)
	if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%s: strength %g for %d→%d: %w", method, s, u, v, ErrOptionViolation)
	}
	opts := []core.EdgeOption{core.WithStrength(s)}
	if cfg.directed {
		opts = append(opts, core.WithDirected(true))
	}
	if _, err := t.AddEdge(u, v, opts...); err != nil {
		return fmt.Errorf("%s: AddEdge(%d→%d): %w", method, u, v, err)
	}

	return nil
}

// connectAll connects every unordered pair of ids once, lexicographically.
// Complexity: O(m²) for m = len(ids).
func connectAll(t Target, cfg builderConfig, method string, ids []int) error {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if err := connect(t, cfg, method, ids[i], ids[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateMin returns ErrTooFewVertices wrapped with context when got < min.
func validateMin(method, name string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d < min=%d: %w", method, name, got, min, ErrTooFewVertices)
	}

	return nil
}
