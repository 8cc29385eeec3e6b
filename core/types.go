package core

import (
	"errors"
	"math"

	"github.com/katalvlaran/fourd/vector"
)

// Sentinel errors for core operations.
var (
	// ErrNilVertex indicates a nil *Vertex was passed to the arena.
	ErrNilVertex = errors.New("core: vertex is nil")

	// ErrNilEdge indicates a nil *Edge was passed to the arena.
	ErrNilEdge = errors.New("core: edge is nil")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrDuplicateID indicates an id is already present in the arena.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrLoopNotAllowed indicates an edge whose endpoints coincide.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrVertexHasEdges indicates RemoveVertex on a vertex that still has incident edges.
	ErrVertexHasEdges = errors.New("core: vertex still has incident edges")

	// ErrBadSettings indicates a settings value outside its domain.
	ErrBadSettings = errors.New("core: invalid settings")
)

// Vertex is a particle of the layout.
//
// Position, Velocity and Acceleration change every tick. Innovation, Integral
// and Projected are the chained accumulators of two-level dynamics:
// Innovation is how far the vertex's velocity lags its coarse counterpart,
// Integral is its damped running sum, Projected is the correction applied on
// the last tick.
type Vertex struct {
	ID int

	Position     vector.Vec
	Velocity     vector.Vec
	Acceleration vector.Vec

	Innovation vector.Vec
	Integral   vector.Vec
	Projected  vector.Vec

	// Coarser is the id of the coarse-level counterpart, 0 when not yet coarsened.
	Coarser int

	// Finer holds the ids of the finer vertices this vertex represents.
	// Empty for vertices of the finest level.
	Finer map[int]struct{}
}

// NewVertex returns a vertex at rest at pos.
func NewVertex(id int, pos vector.Vec) *Vertex {
	return &Vertex{ID: id, Position: pos, Finer: make(map[int]struct{})}
}

// ResetDynamics zeroes velocity, acceleration and the two-level accumulators.
func (v *Vertex) ResetDynamics() {
	v.Velocity = vector.Zero
	v.Acceleration = vector.Zero
	v.Innovation = vector.Zero
	v.Integral = vector.Zero
	v.Projected = vector.Zero
}

// Edge is a spring between Source and Target.
type Edge struct {
	ID       int
	Source   int
	Target   int
	Directed bool
	Strength float64

	// Order is a random priority in [0,1) fixed at creation.
	Order float64

	// Count is the number of finer edges this edge represents (≥1).
	Count int

	// Coarser is the id of the coarse-level counterpart, 0 when none.
	Coarser int
}

// EdgeOption configures an edge before it is stored.
type EdgeOption func(*Edge)

// WithDirected marks the edge as directed.
func WithDirected(directed bool) EdgeOption {
	return func(e *Edge) { e.Directed = directed }
}

// WithStrength scales the edge's attraction. Panics on negative or
// non-finite values.
func WithStrength(strength float64) EdgeOption {
	if strength < 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		panic("core: WithStrength requires a finite non-negative value")
	}
	return func(e *Edge) { e.Strength = strength }
}

// NewEdge builds an undirected unit-strength edge and applies opts.
func NewEdge(id, source, target int, order float64, opts ...EdgeOption) *Edge {
	e := &Edge{
		ID:       id,
		Source:   source,
		Target:   target,
		Strength: 1.0,
		Order:    order,
		Count:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
