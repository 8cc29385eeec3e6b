package core

import "sync/atomic"

// IDs hands out identifiers for one hierarchy: graphs, vertices and edges
// each have their own monotonic sequence starting at 1. Zero is never issued
// and means "none" wherever an id field is optional.
//
// Counters are atomic so an allocator can be read from diagnostics while the
// hierarchy is being mutated; mutation itself is serialized by the owner.
type IDs struct {
	graph  uint64
	vertex uint64
	edge   uint64
}

// NewIDs returns a fresh allocator.
func NewIDs() *IDs { return &IDs{} }

// NextGraph returns the next graph id.
func (ids *IDs) NextGraph() int { return int(atomic.AddUint64(&ids.graph, 1)) }

// NextVertex returns the next vertex id.
func (ids *IDs) NextVertex() int { return int(atomic.AddUint64(&ids.vertex, 1)) }

// NextEdge returns the next edge id.
func (ids *IDs) NextEdge() int { return int(atomic.AddUint64(&ids.edge, 1)) }

// ResetElements restarts the vertex and edge sequences. Graph ids are kept so
// levels created before the reset stay distinguishable.
func (ids *IDs) ResetElements() {
	atomic.StoreUint64(&ids.vertex, 0)
	atomic.StoreUint64(&ids.edge, 0)
}

// Reset restarts every sequence.
func (ids *IDs) Reset() {
	atomic.StoreUint64(&ids.graph, 0)
	ids.ResetElements()
}
