package matching_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/matching"
	"github.com/katalvlaran/fourd/vector"
)

// level is a bare arena-backed Coarsener.
type level struct {
	arena *core.Arena
	ids   *core.IDs
}

func newLevel() *level { return &level{arena: core.NewArena(), ids: core.NewIDs()} }

func (l *level) AddVertex() int {
	id := l.ids.NextVertex()
	if err := l.arena.AddVertex(core.NewVertex(id, vector.Zero)); err != nil {
		panic(err)
	}
	return id
}

func (l *level) AddEdge(s, t int, opts ...core.EdgeOption) (int, error) {
	id := l.ids.NextEdge()
	if err := l.arena.AddEdge(core.NewEdge(id, s, t, 0, opts...)); err != nil {
		return 0, err
	}
	return id, nil
}

func (l *level) RemoveVertex(id int) bool {
	_, err := l.arena.RemoveVertex(id)
	return err == nil
}

func (l *level) RemoveEdge(id int) bool {
	_, err := l.arena.RemoveEdge(id)
	return err == nil
}

func (l *level) Arena() *core.Arena { return l.arena }

// harness drives a fine arena and its Matching the way a layout level does.
type harness struct {
	t      *testing.T
	fine   *core.Arena
	ids    *core.IDs
	coarse *level
	m      *matching.Matching
}

func newHarness(t *testing.T, opts ...matching.Option) *harness {
	h := &harness{t: t, fine: core.NewArena(), ids: core.NewIDs(), coarse: newLevel()}
	h.m = matching.New(h.fine, h.coarse, opts...)
	return h
}

func (h *harness) addVertex() int {
	id := h.ids.NextVertex()
	require.NoError(h.t, h.fine.AddVertex(core.NewVertex(id, vector.Vec{X: float64(id)})))
	h.m.VertexAdded(id)
	return id
}

func (h *harness) addEdge(s, t int, order float64) int {
	id := h.ids.NextEdge()
	require.NoError(h.t, h.fine.AddEdge(core.NewEdge(id, s, t, order)))
	h.m.EdgeAdded(id)
	return id
}

func (h *harness) removeEdge(id int) {
	e, err := h.fine.RemoveEdge(id)
	require.NoError(h.t, err)
	h.m.EdgeRemoved(e)
}

func (h *harness) removeVertex(id int) {
	for _, eid := range h.fine.Incident(id) {
		h.removeEdge(eid)
	}
	h.m.VertexRemoved(id)
	_, err := h.fine.RemoveVertex(id)
	require.NoError(h.t, err)
}

// check asserts the correspondence invariants and greedy maximality.
func (h *harness) check(maximal bool) {
	h.t.Helper()
	require.Zero(h.t, h.m.Pending())
	require.NoError(h.t, h.m.CheckInvariants())
	if !maximal {
		return
	}
	covered := make(map[int]bool)
	for _, e := range h.fine.Edges() {
		if h.m.IsMatched(e.ID) {
			covered[e.Source], covered[e.Target] = true, true
		}
	}
	for _, e := range h.fine.Edges() {
		assert.True(h.t, covered[e.Source] || covered[e.Target], "edge %d could still be matched", e.ID)
	}
}

func TestSingleEdgeIsMatched(t *testing.T) {
	h := newHarness(t)
	a, b := h.addVertex(), h.addVertex()
	assert.Zero(t, h.coarse.arena.VertexCount(), "isolated vertices are not coarsened")

	e := h.addEdge(a, b, 0.7)
	h.check(true)
	assert.True(t, h.m.IsMatched(e))
	assert.Equal(t, 1, h.coarse.arena.VertexCount())
	assert.Zero(t, h.coarse.arena.EdgeCount())

	cid := h.m.CoarseVertex(a)
	require.NotZero(t, cid)
	assert.Equal(t, cid, h.m.CoarseVertex(b))
	cv := h.coarse.arena.Vertex(cid)
	assert.Len(t, cv.Finer, 2)
	assert.InDelta(t, 1.5, cv.Position.X, 1e-12, "coarse vertex starts at the midpoint")
	assert.Equal(t, cid, h.fine.Vertex(a).Coarser)
}

func TestPathPrefersLowerOrder(t *testing.T) {
	h := newHarness(t)
	a, b, c := h.addVertex(), h.addVertex(), h.addVertex()
	bc := h.addEdge(b, c, 0.5)
	require.True(t, h.m.IsMatched(bc))

	ab := h.addEdge(a, b, 0.1)
	h.check(true)
	assert.True(t, h.m.IsMatched(ab))
	assert.False(t, h.m.IsMatched(bc))

	// {a,b} and {c} joined by the coarse image of bc.
	assert.Equal(t, 2, h.coarse.arena.VertexCount())
	assert.Equal(t, 1, h.coarse.arena.EdgeCount())
	assert.NotZero(t, h.m.CoarseEdge(bc))
	assert.Zero(t, h.m.CoarseEdge(ab))
}

func TestMultiplicityAndRemoval(t *testing.T) {
	h := newHarness(t)
	a, b, c, d := h.addVertex(), h.addVertex(), h.addVertex(), h.addVertex()
	ab := h.addEdge(a, b, 0.1)
	cd := h.addEdge(c, d, 0.2)
	ac := h.addEdge(a, c, 0.7)
	bd := h.addEdge(b, d, 0.8)
	ad := h.addEdge(a, d, 0.9)
	h.check(true)

	assert.True(t, h.m.IsMatched(ab))
	assert.True(t, h.m.IsMatched(cd))
	require.Equal(t, 2, h.coarse.arena.VertexCount())
	require.Equal(t, 1, h.coarse.arena.EdgeCount())
	ce := h.m.CoarseEdge(ac)
	assert.Equal(t, ce, h.m.CoarseEdge(bd))
	assert.Equal(t, ce, h.m.CoarseEdge(ad))
	assert.Equal(t, 3, h.coarse.arena.Edge(ce).Count)

	h.removeEdge(ab)
	h.check(true)
	assert.True(t, h.m.IsMatched(cd))
	assert.False(t, h.m.IsMatched(ac))
	assert.Equal(t, 3, h.coarse.arena.VertexCount())
	assert.Equal(t, 2, h.coarse.arena.EdgeCount())
	assert.Equal(t, 2, h.coarse.arena.Edge(h.m.CoarseEdge(ac)).Count)

	h.removeEdge(bd)
	h.check(true)
	assert.Zero(t, h.m.CoarseVertex(b), "isolated vertex loses its coarse counterpart")
	assert.Equal(t, 2, h.coarse.arena.VertexCount())
}

func TestRemoveMatchedPromotesNeighbor(t *testing.T) {
	h := newHarness(t)
	a, b, c := h.addVertex(), h.addVertex(), h.addVertex()
	ab := h.addEdge(a, b, 0.1)
	bc := h.addEdge(b, c, 0.3)
	ca := h.addEdge(c, a, 0.6)
	h.check(true)
	require.True(t, h.m.IsMatched(ab))

	h.removeEdge(ab)
	h.check(true)
	assert.True(t, h.m.IsMatched(bc))
	assert.False(t, h.m.IsMatched(ca))
}

// TestRemovalCascadesThroughDependents VERIFIES that removing an edge
// re-evaluates the edges it preceded and lets the change ripple on.
func TestRemovalCascadesThroughDependents(t *testing.T) {
	h := newHarness(t)
	a, b, c, d := h.addVertex(), h.addVertex(), h.addVertex(), h.addVertex()
	ab := h.addEdge(a, b, 0.1)
	bc := h.addEdge(b, c, 0.2)
	cd := h.addEdge(c, d, 0.3)
	h.check(true)
	require.True(t, h.m.IsMatched(ab))
	require.False(t, h.m.IsMatched(bc))
	require.True(t, h.m.IsMatched(cd))

	h.removeEdge(ab)
	h.check(true)
	assert.True(t, h.m.IsMatched(bc))
	assert.False(t, h.m.IsMatched(cd))
	assert.Zero(t, h.m.CoarseVertex(a), "isolated endpoint released")
}

// TestLocalMinimumIsNotMaximal VERIFIES that the local-minimum rule leaves
// an increasing path under-matched while the greedy rule covers it.
func TestLocalMinimumIsNotMaximal(t *testing.T) {
	build := func(rule matching.Rule) (*harness, [3]int) {
		h := newHarness(t, matching.WithRule(rule))
		a, b, c, d := h.addVertex(), h.addVertex(), h.addVertex(), h.addVertex()
		return h, [3]int{h.addEdge(a, b, 0.1), h.addEdge(b, c, 0.2), h.addEdge(c, d, 0.3)}
	}

	h, es := build(matching.RuleLocalMinimum)
	h.check(false)
	assert.True(t, h.m.IsMatched(es[0]))
	assert.False(t, h.m.IsMatched(es[1]))
	assert.False(t, h.m.IsMatched(es[2]), "cd is free but has a lower-order neighbor")

	h, es = build(matching.RuleGreedy)
	h.check(true)
	assert.True(t, h.m.IsMatched(es[0]))
	assert.True(t, h.m.IsMatched(es[2]))
}

// TestEqualOrdersBreakByID VERIFIES that Depends orders ties by edge id.
func TestEqualOrdersBreakByID(t *testing.T) {
	for _, rule := range []matching.Rule{matching.RuleGreedy, matching.RuleLocalMinimum} {
		h := newHarness(t, matching.WithRule(rule))
		a, b, c := h.addVertex(), h.addVertex(), h.addVertex()
		ab := h.addEdge(a, b, 0.5)
		bc := h.addEdge(b, c, 0.5)
		h.check(true)
		assert.True(t, h.m.IsMatched(ab), rule.String())
		assert.False(t, h.m.IsMatched(bc), rule.String())
		assert.False(t, h.m.MatchEquation(bc), rule.String())
	}
}

func TestParallelEdgesCollapse(t *testing.T) {
	h := newHarness(t)
	a, b := h.addVertex(), h.addVertex()
	e1 := h.addEdge(a, b, 0.4)
	e2 := h.addEdge(b, a, 0.2)
	h.check(true)
	assert.True(t, h.m.IsMatched(e2))
	assert.False(t, h.m.IsMatched(e1))
	assert.Zero(t, h.m.CoarseEdge(e1), "edge inside a contracted pair has no coarse image")
	assert.Equal(t, 1, h.coarse.arena.VertexCount())
}

func TestAddRemoveVertexRestoresCounts(t *testing.T) {
	h := newHarness(t)
	a, b, c := h.addVertex(), h.addVertex(), h.addVertex()
	h.addEdge(a, b, 0.3)
	h.addEdge(b, c, 0.6)
	h.check(true)
	fv, fe := h.fine.VertexCount(), h.fine.EdgeCount()
	cv, ce := h.coarse.arena.VertexCount(), h.coarse.arena.EdgeCount()

	x := h.addVertex()
	h.removeVertex(x)
	h.check(true)
	assert.Equal(t, fv, h.fine.VertexCount())
	assert.Equal(t, fe, h.fine.EdgeCount())
	assert.Equal(t, cv, h.coarse.arena.VertexCount())
	assert.Equal(t, ce, h.coarse.arena.EdgeCount())

	h.removeVertex(b)
	h.check(true)
	assert.Zero(t, h.coarse.arena.VertexCount())
	assert.Zero(t, h.coarse.arena.EdgeCount())
}

func TestForcedMatchIsReverted(t *testing.T) {
	h := newHarness(t)
	a, b, c := h.addVertex(), h.addVertex(), h.addVertex()
	ab := h.addEdge(a, b, 0.1)
	bc := h.addEdge(b, c, 0.9)

	require.ErrorIs(t, h.m.Match(ab), matching.ErrAlreadyMatched)
	require.ErrorIs(t, h.m.Unmatch(bc), matching.ErrNotMatched)
	require.ErrorIs(t, h.m.Match(99), matching.ErrEdgeNotFound)

	require.NoError(t, h.m.Match(bc))
	assert.True(t, h.m.IsMatched(bc))
	assert.False(t, h.m.IsMatched(ab), "conflicting neighbor unmatched first")
	require.NoError(t, h.m.CheckInvariants())

	h.m.ProcessQueue()
	h.check(true)
	assert.True(t, h.m.IsMatched(ab))
	assert.False(t, h.m.IsMatched(bc))

	require.NoError(t, h.m.Unmatch(ab))
	require.NoError(t, h.m.CheckInvariants())
	h.m.ProcessQueue()
	h.check(true)
	assert.True(t, h.m.IsMatched(ab))
}

func TestLocalMinimumRule(t *testing.T) {
	h := newHarness(t, matching.WithRule(matching.RuleLocalMinimum))
	assert.Equal(t, matching.RuleLocalMinimum, h.m.Rule())
	a, b, c, d := h.addVertex(), h.addVertex(), h.addVertex(), h.addVertex()
	ab := h.addEdge(a, b, 0.5)
	bc := h.addEdge(b, c, 0.1)
	cd := h.addEdge(c, d, 0.7)
	h.check(false)

	// bc is the only local minimum; ab and cd both touch it.
	assert.True(t, h.m.IsMatched(bc))
	assert.False(t, h.m.IsMatched(ab))
	assert.False(t, h.m.IsMatched(cd))
	assert.True(t, h.m.MatchEquation(bc))
	assert.False(t, h.m.MatchEquation(cd))
}

// TestRandomMutations VERIFIES invariants after every step of a random
// insert/remove sequence, for both rules.
func TestRandomMutations(t *testing.T) {
	for _, rule := range []matching.Rule{matching.RuleGreedy, matching.RuleLocalMinimum} {
		t.Run(rule.String(), func(t *testing.T) {
			h := newHarness(t, matching.WithRule(rule))
			rng := rand.New(rand.NewSource(11))
			var vs []int
			for i := 0; i < 12; i++ {
				vs = append(vs, h.addVertex())
			}
			for step := 0; step < 300; step++ {
				switch r := rng.Intn(10); {
				case r < 6:
					s, d := vs[rng.Intn(len(vs))], vs[rng.Intn(len(vs))]
					if s == d {
						continue
					}
					h.addEdge(s, d, rng.Float64())
				case r < 9:
					if ids := h.fine.EdgeIDs(); len(ids) > 0 {
						h.removeEdge(ids[rng.Intn(len(ids))])
					}
				default:
					i := rng.Intn(len(vs))
					h.removeVertex(vs[i])
					vs[i] = h.addVertex()
				}
				h.check(rule == matching.RuleGreedy)
			}
			st := h.m.Stats()
			assert.Zero(t, st.Pending)
			assert.Positive(t, st.Flips)
			assert.Positive(t, st.HighWater)
		})
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	a, b := h.addVertex(), h.addVertex()
	h.addEdge(a, b, 0.5)
	h.m.Clear()
	assert.Zero(t, h.m.CoarseVertex(a))
	assert.Equal(t, matching.Stats{}, h.m.Stats())
}

func TestRuleNames(t *testing.T) {
	for _, r := range []matching.Rule{matching.RuleGreedy, matching.RuleLocalMinimum} {
		got, err := matching.ParseRule(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := matching.ParseRule("best")
	require.Error(t, err)
	assert.Panics(t, func() { matching.WithRule(matching.Rule(9)) })
}
