// Package fourd lays out graphs in three dimensions with a multilevel
// force-directed simulation that keeps running while the graph changes.
//
// 🚀 What is fourd?
//
//	A layout engine for live graphs. Every mutation (add or remove a vertex
//	or an edge) is propagated down a chain of ever coarser graphs built by
//	incremental matching, and each tick moves the coarse levels first so the
//	fine levels inherit their large-scale motion:
//		• Forces: octree-approximated repulsion, spring attraction, directed gravity
//		• Hierarchy: dynamic maximal matching with bounded flip cascades
//		• Two-level dynamics: EMA trend estimation from the coarser level
//		• Fixtures: classic graph generators and a small edge-list language
//		• Recording: per-tick snapshots in badger, Prometheus level metrics
//
// Under the hood, everything is organized under these subpackages:
//
//	vector/    3D vectors and 3×3 matrices on top of gonum r3
//	core/      vertices, edges, id allocation, forces, settings
//	octree/    spatial tree for far-field repulsion
//	matching/  fine-to-coarse correspondence of two adjacent levels
//	layout/    the Graph hierarchy, ticks and snapshots
//	builder/   deterministic and random graph constructors
//	grammar/   edge-list parser
//	record/    snapshot store
//	metrics/   Prometheus collectors
//	cmd/fourd  command-line driver
//
// Quick example:
//
//	g := layout.New(3)
//	a, b := g.AddVertex(), g.AddVertex()
//	g.AddEdge(a, b)
//	for i := 0; i < 100; i++ {
//		snap := g.Layout()
//		_ = snap.V // positions of the root level
//	}
//
//	go get github.com/katalvlaran/fourd
package fourd
