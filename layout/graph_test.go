package layout_test

import (
	"encoding/json"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/layout"
	"github.com/katalvlaran/fourd/matching"
	"github.com/katalvlaran/fourd/vector"
)

func position(t *testing.T, g *layout.Graph, id int) vector.Vec {
	t.Helper()
	v, ok := g.Vertex(id)
	require.True(t, ok)
	return v.Position
}

func separation(t *testing.T, g *layout.Graph, a, b int) float64 {
	t.Helper()
	return vector.Distance(position(t, g, a), position(t, g, b))
}

// TestRepulsionSeparates VERIFIES that two unconnected vertices drift apart.
func TestRepulsionSeparates(t *testing.T) {
	g := layout.New(0, layout.WithSeed(5))
	a, b := g.AddVertex(), g.AddVertex()
	require.True(t, g.SetPosition(a, vector.Vec{X: 0.1, Y: 0.2, Z: 0.3}))
	require.True(t, g.SetPosition(b, vector.Vec{X: 0.4, Y: 0.1, Z: 0.35}))

	initial := separation(t, g, a, b)
	prev := initial
	for i := 0; i < 10; i++ {
		g.Layout()
		d := separation(t, g, a, b)
		require.GreaterOrEqual(t, d, prev, "tick %d", i)
		prev = d
	}
	assert.Greater(t, prev, initial)
}

// TestAttractionContracts VERIFIES that a lone spring strictly shortens.
func TestAttractionContracts(t *testing.T) {
	s := core.NewSettings(core.WithRepulsion(0))
	g := layout.New(0, layout.WithSettings(s), layout.WithSeed(5))
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)
	g.SetPosition(a, vector.Vec{X: -50})
	g.SetPosition(b, vector.Vec{X: 50, Y: 3})

	prev := separation(t, g, a, b)
	for i := 0; i < 50; i++ {
		g.Layout()
		d := separation(t, g, a, b)
		require.Less(t, d, prev, "tick %d", i)
		require.Positive(t, d)
		prev = d
	}
}

// TestGravityLiftsTarget VERIFIES the vertical drift along directed edges.
func TestGravityLiftsTarget(t *testing.T) {
	s := core.NewSettings(core.WithRepulsion(0), core.WithAttraction(0))
	g := layout.New(0, layout.WithSettings(s))
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b, core.WithDirected(true))
	require.NoError(t, err)
	g.SetPosition(a, vector.Zero)
	g.SetPosition(b, vector.Vec{X: 10})

	for i := 0; i < 20; i++ {
		g.Layout()
	}
	assert.Greater(t, position(t, g, b).Y, position(t, g, a).Y)
}

// TestAddRemoveVertexRestoresHierarchy VERIFIES that add+remove of a vertex
// leaves every level's counts unchanged.
func TestAddRemoveVertexRestoresHierarchy(t *testing.T) {
	g := layout.New(2, layout.WithSeed(9))
	var vs []int
	for i := 0; i < 8; i++ {
		vs = append(vs, g.AddVertex())
	}
	for i := range vs {
		_, err := g.AddEdge(vs[i], vs[(i+1)%len(vs)])
		require.NoError(t, err)
	}
	before := g.Stats()

	x := g.AddVertex()
	require.True(t, g.RemoveVertex(x))

	after := g.Stats()
	require.Len(t, after, 3)
	for i := range before {
		assert.Equal(t, before[i].Vertices, after[i].Vertices, "level %d", i)
		assert.Equal(t, before[i].Edges, after[i].Edges, "level %d", i)
	}

	// Same with an edge attached in between.
	y := g.AddVertex()
	_, err := g.AddEdge(y, vs[0])
	require.NoError(t, err)
	require.True(t, g.RemoveVertex(y))
	require.NoError(t, g.CheckInvariants())
	after = g.Stats()
	for i := range before {
		assert.Equal(t, before[i].Vertices, after[i].Vertices, "level %d", i)
		assert.Equal(t, before[i].Edges, after[i].Edges, "level %d", i)
	}
}

// TestLevelsChain VERIFIES the depth of the coarser chain.
func TestLevelsChain(t *testing.T) {
	for _, levels := range []int{0, 1, 3} {
		g := layout.New(levels)
		assert.Equal(t, levels, g.Levels())
		lvl := g
		for i := 0; i < levels; i++ {
			lvl = lvl.Coarser()
			require.NotNil(t, lvl)
		}
		assert.Nil(t, lvl.Coarser())
		assert.Zero(t, lvl.Levels())
	}
	assert.Panics(t, func() { layout.New(-1) })
}

// TestRandomMutationsKeepInvariants VERIFIES the cross-level correspondence
// and independence of matched edges under random mutation and ticking.
func TestRandomMutationsKeepInvariants(t *testing.T) {
	for _, rule := range []matching.Rule{matching.RuleGreedy, matching.RuleLocalMinimum} {
		t.Run(rule.String(), func(t *testing.T) {
			g := layout.New(3, layout.WithSeed(21), layout.WithMatchingRule(rule))
			rng := rand.New(rand.NewSource(4))
			var vs []int
			for i := 0; i < 16; i++ {
				vs = append(vs, g.AddVertex())
			}
			for step := 0; step < 200; step++ {
				switch r := rng.Intn(10); {
				case r < 6:
					s, d := vs[rng.Intn(len(vs))], vs[rng.Intn(len(vs))]
					_, err := g.AddEdge(s, d)
					if s == d {
						require.ErrorIs(t, err, core.ErrLoopNotAllowed)
					} else {
						require.NoError(t, err)
					}
				case r < 8:
					if ids := g.EdgeIDs(); len(ids) > 0 {
						require.True(t, g.RemoveEdge(ids[rng.Intn(len(ids))]))
					}
				case r < 9:
					i := rng.Intn(len(vs))
					require.True(t, g.RemoveVertex(vs[i]))
					vs[i] = g.AddVertex()
				default:
					g.Layout()
				}
				require.NoError(t, g.CheckInvariants(), "step %d", step)
			}
		})
	}
}

// TestTetrahedronTick VERIFIES the snapshot of one tick on K4.
func TestTetrahedronTick(t *testing.T) {
	g := layout.New(0, layout.WithSeed(3))
	var vs, es []int
	for i := 0; i < 4; i++ {
		vs = append(vs, g.AddVertex())
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			id, err := g.AddEdge(vs[i], vs[j])
			require.NoError(t, err)
			es = append(es, id)
		}
	}
	before := make(map[int]vector.Vec)
	for _, id := range vs {
		before[id] = position(t, g, id)
	}

	snap := g.Layout()
	require.Len(t, snap.V, 4)
	require.Len(t, snap.E, 6)
	for i, v := range snap.V {
		assert.Equal(t, vs[i], v.ID)
		assert.NotEqual(t, vector.Array(before[v.ID]), v.Position)
	}
	for i, e := range snap.E {
		assert.Equal(t, es[i], e.ID)
	}
}

// TestManyIsolatedVertices VERIFIES termination and output size with no edges.
func TestManyIsolatedVertices(t *testing.T) {
	g := layout.New(0, layout.WithSeed(8))
	for i := 0; i < 1000; i++ {
		g.AddVertex()
	}
	snap := g.Layout()
	assert.Len(t, snap.V, 1000)
	assert.Empty(t, snap.E)
}

// TestTwoLevelCascade VERIFIES one tick across a two-level cascade.
func TestTwoLevelCascade(t *testing.T) {
	g := layout.New(2, layout.WithSeed(2))
	a, b := g.AddVertex(), g.AddVertex()
	e, err := g.AddEdge(a, b)
	require.NoError(t, err)

	snap := g.Layout()
	assert.Len(t, snap.V, 2)
	assert.Len(t, snap.E, 1)
	assert.True(t, g.IsMatched(e))

	stats := g.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, 1, stats[1].Vertices)
	assert.Zero(t, stats[1].Edges)
	assert.Zero(t, stats[2].Vertices)
	for _, st := range stats {
		assert.Equal(t, uint64(1), st.Ticks)
	}
	require.NoError(t, g.CheckInvariants())
}

// TestTwoLevelTracksCoarseMotion VERIFIES that, with local forces switched
// off, fine velocities converge to the velocity of their coarse vertex.
func TestTwoLevelTracksCoarseMotion(t *testing.T) {
	s := core.NewSettings(
		core.WithAttraction(0),
		core.WithRepulsion(0),
		core.WithFriction(0),
		core.WithGravity(0),
	)
	g := layout.New(1, layout.WithSettings(s), layout.WithSeed(4))
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)

	cid := g.CoarseVertexOf(a)
	require.NotZero(t, cid)
	require.Equal(t, cid, g.CoarseVertexOf(b))
	target := vector.Vec{X: 1, Y: -0.5, Z: 0.25}
	require.True(t, g.Coarser().SetVelocity(cid, target))

	initial := vector.Norm(target)
	for i := 0; i < 300; i++ {
		g.Layout()
	}
	for _, id := range []int{a, b} {
		v, ok := g.Vertex(id)
		require.True(t, ok)
		assert.Less(t, vector.Distance(v.Velocity, target), 0.1*initial)
	}
	coarse, ok := g.Coarser().Vertex(cid)
	require.True(t, ok)
	assert.InDelta(t, 0, vector.Distance(coarse.Velocity, target), 1e-12)
}

func TestUnknownIDs(t *testing.T) {
	g := layout.New(1)
	a := g.AddVertex()

	assert.False(t, g.RemoveVertex(99))
	assert.False(t, g.RemoveEdge(99))
	assert.False(t, g.SetPosition(99, vector.Zero))
	_, ok := g.Vertex(99)
	assert.False(t, ok)

	_, err := g.AddEdge(a, 99)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.AddEdge(a, a)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)
	assert.Equal(t, 1, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
}

func TestClearResetsIDs(t *testing.T) {
	g := layout.New(1)
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)
	g.Layout()

	require.True(t, g.Clear())
	assert.Zero(t, g.VertexCount())
	assert.Zero(t, g.Coarser().VertexCount())
	assert.Equal(t, 1, g.ID())
	assert.Equal(t, 2, g.Coarser().ID())
	assert.Equal(t, 1, g.AddVertex())
	for _, st := range g.Stats() {
		assert.Zero(t, st.Ticks)
		assert.Zero(t, st.Flips)
	}
}

func TestVertexReturnsCopy(t *testing.T) {
	g := layout.New(0)
	id := g.AddVertex()
	v, ok := g.Vertex(id)
	require.True(t, ok)
	v.Position = vector.Vec{X: 1e6}
	assert.NotEqual(t, v.Position, position(t, g, id))
}

func TestSeedDeterminism(t *testing.T) {
	build := func() layout.Snapshot {
		g := layout.New(2, layout.WithSeed(77))
		var vs []int
		for i := 0; i < 10; i++ {
			vs = append(vs, g.AddVertex())
		}
		for i := 1; i < len(vs); i++ {
			_, err := g.AddEdge(vs[i-1], vs[i])
			require.NoError(t, err)
		}
		var snap layout.Snapshot
		for i := 0; i < 5; i++ {
			snap = g.Layout()
		}
		return snap
	}
	assert.Equal(t, build(), build())
}

func TestSnapshotJSON(t *testing.T) {
	g := layout.New(0)
	a, b := g.AddVertex(), g.AddVertex()
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)

	raw, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "id")
	vs := generic["V"].([]interface{})
	require.Len(t, vs, 2)
	assert.Contains(t, vs[0], "position")
	es := generic["E"].([]interface{})
	require.Len(t, es, 1)
	assert.Equal(t, float64(a), es[0].(map[string]interface{})["source"])
	assert.Equal(t, float64(b), es[0].(map[string]interface{})["target"])
}

// TestConcurrentAccess VERIFIES that one hierarchy may be driven from several
// goroutines and that separate hierarchies are independent.
func TestConcurrentAccess(t *testing.T) {
	shared := layout.New(2, layout.WithSeed(1))
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			own := layout.New(1)
			var last int
			for i := 0; i < 25; i++ {
				id := shared.AddVertex()
				if last != 0 {
					_, _ = shared.AddEdge(last, id)
				}
				last = id
				own.AddVertex()
				shared.Layout()
			}
			own.Layout()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, shared.VertexCount())
	require.NoError(t, shared.CheckInvariants())
}

// TestConcurrentReaders VERIFIES that queries running alongside mutations
// and ticks always observe a quiescent hierarchy.
func TestConcurrentReaders(t *testing.T) {
	g := layout.New(2, layout.WithSeed(3))
	done := make(chan struct{})

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := g.Snapshot()
				live := make(map[int]bool, len(snap.V))
				for _, v := range snap.V {
					live[v.ID] = true
				}
				for _, e := range snap.E {
					assert.True(t, live[e.Source] && live[e.Target], "edge %d dangles", e.ID)
				}
				assert.NoError(t, g.CheckInvariants())
				assert.Len(t, g.Stats(), 3)
				_ = g.Coarser().EdgeIDs()
			}
		}()
	}

	var last int
	for i := 0; i < 60; i++ {
		id := g.AddVertex()
		if last != 0 {
			_, err := g.AddEdge(last, id)
			require.NoError(t, err)
		}
		if i%7 == 6 {
			require.True(t, g.RemoveVertex(last))
			id = g.AddVertex()
		}
		last = id
		g.Layout()
	}
	close(done)
	wg.Wait()
	require.NoError(t, g.CheckInvariants())
}

// TestStiffSpringStaysFinite VERIFIES that a spring far outside the stable
// step size saturates at MaxSpeed instead of diverging.
func TestStiffSpringStaysFinite(t *testing.T) {
	for _, k := range []float64{3, 1e308} {
		s := core.NewSettings(core.WithAttraction(k))
		require.NoError(t, s.Validate())
		g := layout.New(1, layout.WithSettings(s), layout.WithSeed(2))
		a, b := g.AddVertex(), g.AddVertex()
		_, err := g.AddEdge(a, b, core.WithStrength(4))
		require.NoError(t, err)

		require.NotPanics(t, func() {
			for i := 0; i < 200; i++ {
				g.Layout()
			}
		}, "attraction %g", k)
		for _, id := range []int{a, b} {
			v, ok := g.Vertex(id)
			require.True(t, ok)
			assert.True(t, vector.IsFinite(v.Position), "attraction %g", k)
			assert.LessOrEqual(t, vector.Norm(v.Velocity), s.MaxSpeed*(1+1e-9), "attraction %g", k)
		}
		require.NoError(t, g.CheckInvariants())
	}
}

func TestSetRejectsNonFinite(t *testing.T) {
	g := layout.New(0)
	a := g.AddVertex()
	before := position(t, g, a)

	assert.False(t, g.SetPosition(a, vector.Vec{X: math.NaN()}))
	assert.False(t, g.SetVelocity(a, vector.Vec{Y: math.Inf(1)}))
	assert.Equal(t, before, position(t, g, a))
	assert.True(t, g.SetVelocity(a, vector.Vec{Z: 1}))
}
