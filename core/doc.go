// Package core defines the particles and springs of a force-directed layout
// and the per-level store that owns them.
//
// A Vertex is a charged particle: position, velocity and acceleration,
// three chained accumulators used by two-level dynamics, and optional links
// into the next coarser level (Coarser) or the next finer one (Finer).
// An Edge is a spring between two vertices. It carries a random priority
// (Order) assigned once at creation and a multiplicity (Count) that grows
// when several finer edges collapse onto it.
//
// Ownership model:
//
//   - An Arena exclusively owns the vertices and edges of one level.
//   - Vertices and edges refer to each other only by integer id; incidence
//     lives in the Arena (Arena.Incident), never as pointers between them.
//   - Links between levels (Vertex.Coarser, Vertex.Finer, Edge.Coarser) are
//     non-owning id lookups.
//
// IDs are handed out by an IDs allocator scoped to one hierarchy, so two
// independent hierarchies never collide.
//
// Forces:
//
//	PairwiseRepulsion(a, b) = repulsion/(ε + d²) · (a − b)/(ε + d²)   d ≥ ε
//	                        = small random vector                     d < ε
//	Edge.Attraction        = k·strength·count·(source − target)       (+ gravity on directed edges)
//
// Settings holds the numeric knobs shared by every level; it can be built with
// functional options or loaded from YAML.
//
// Concurrency: nothing in this package locks. The owner of a hierarchy
// serializes access (see package layout).
package core
