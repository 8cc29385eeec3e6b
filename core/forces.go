// File: forces.go
// Role: Pairwise force laws and edge priority relations.
// Determinism:
//   - PairwiseRepulsion is deterministic unless the two points are closer
//     than epsilon; then it draws from the supplied RNG.

package core

import (
	"math/rand"

	"github.com/katalvlaran/fourd/vector"
)

// jitter bounds the random push returned for coincident points.
const jitter = 0.01

// gravityScale converts Settings.Gravity into a per-unit-distance force.
const gravityScale = 1e-6

// PairwiseRepulsion returns the repulsive force exerted on a by b:
//
//	repulsion/(ε + d²) · (a − b)/(ε + d²)
//
// When d < ε the law is singular; a small random vector in [0, jitter)³ is
// returned instead. rng must not be nil.
//
// Complexity: O(1).
func PairwiseRepulsion(a, b vector.Vec, s Settings, rng *rand.Rand) vector.Vec {
	diff := vector.Sub(a, b)
	d2 := vector.Dot(diff, diff)
	if d2 < s.Epsilon*s.Epsilon {
		return vector.Random(rng, 0, jitter)
	}
	denom := s.Epsilon + d2

	return vector.Scale(s.Repulsion/(denom*denom), diff)
}

// Attraction returns the spring force F of e given its endpoints; the caller
// applies source.Acceleration −= F and target.Acceleration += F.
//
//	F = attraction·strength·count·(source − target)
//
// Directed edges with non-zero gravity add gravity·1e-6·strength·d along +Y,
// lifting the target above the source.
//
// Complexity: O(1).
func (e *Edge) Attraction(source, target *Vertex, s Settings) vector.Vec {
	diff := vector.Sub(source.Position, target.Position)
	k := s.Attraction * e.Strength * float64(e.Count)
	f := vector.Scale(k, diff)
	if e.Directed && s.Gravity != 0 {
		lift := s.Gravity * gravityScale * e.Strength * vector.Norm(diff)
		f.Y += lift
	}

	return f
}

// Apply adds e's spring force to its endpoints' accelerations.
func (e *Edge) Apply(source, target *Vertex, s Settings) {
	f := e.Attraction(source, target, s)
	source.Acceleration = vector.Sub(source.Acceleration, f)
	target.Acceleration = vector.Add(target.Acceleration, f)
}

// SharesVertex reports whether e and o have an endpoint in common.
func (e *Edge) SharesVertex(o *Edge) bool {
	return e.Source == o.Source || e.Source == o.Target ||
		e.Target == o.Source || e.Target == o.Target
}

// Less orders edges by Order, breaking ties by ID.
func (e *Edge) Less(o *Edge) bool {
	if e.Order != o.Order {
		return e.Order < o.Order
	}
	return e.ID < o.ID
}

// Depends reports whether e precedes o in priority and shares an endpoint
// with it. Distinct edges sharing an endpoint are totally ordered by Depends.
func (e *Edge) Depends(o *Edge) bool {
	return e.ID != o.ID && e.Less(o) && e.SharesVertex(o)
}

// Other returns the endpoint of e opposite vid, or 0 if vid is not an endpoint.
func (e *Edge) Other(vid int) int {
	switch vid {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return 0
}
