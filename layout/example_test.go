package layout_test

import (
	"fmt"

	"github.com/katalvlaran/fourd/layout"
	"github.com/katalvlaran/fourd/vector"
)

// ExampleGraph_Layout ticks a six-vertex ring through a two-level hierarchy.
func ExampleGraph_Layout() {
	g := layout.New(1, layout.WithSeed(42))

	ring := make([]int, 6)
	for i := range ring {
		ring[i] = g.AddVertex()
	}
	for i := range ring {
		if _, err := g.AddEdge(ring[i], ring[(i+1)%len(ring)]); err != nil {
			fmt.Println("error:", err)
			return
		}
	}

	var snap layout.Snapshot
	for i := 0; i < 100; i++ {
		snap = g.Layout()
	}

	finite := true
	for _, v := range snap.V {
		finite = finite && vector.IsFinite(vector.Vec{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]})
	}
	fmt.Println("levels:", g.Levels())
	fmt.Println("vertices:", len(snap.V), "edges:", len(snap.E))
	fmt.Println("finite:", finite)
	fmt.Println("invariants:", g.CheckInvariants())
	// Output:
	// levels: 1
	// vertices: 6 edges: 6
	// finite: true
	// invariants: <nil>
}

// ExampleGraph_Stats shows the per-level view of a contracted edge.
func ExampleGraph_Stats() {
	g := layout.New(2)
	a, b := g.AddVertex(), g.AddVertex()
	_, _ = g.AddEdge(a, b)

	for _, st := range g.Stats() {
		fmt.Printf("depth %d: %d vertices, %d edges, %d matched\n", st.Depth, st.Vertices, st.Edges, st.Matched)
	}
	// Output:
	// depth 0: 2 vertices, 1 edges, 1 matched
	// depth 1: 1 vertices, 0 edges, 0 matched
	// depth 2: 0 vertices, 0 edges, 0 matched
}
