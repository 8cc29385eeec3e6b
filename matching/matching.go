package matching

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/fourd/core"
)

// Matching maintains the correspondence between one fine level and the
// coarse level it owns.
type Matching struct {
	fine   *core.Arena
	coarse Coarsener
	rule   Rule

	vmap    map[int]int  // fine vertex -> coarse vertex, 0 = not yet coarsened
	emap    map[int]int  // fine edge -> coarse edge, 0 = none
	matched map[int]bool // fine edge -> matched flag
	pairs   map[pair]int // unordered coarse endpoints -> coarse edge

	queue  *workQueue
	flips  uint64
	budget func(edges int) int // flip cap of one drain
}

// pair is an unordered pair of coarse vertex ids, lo < hi.
type pair struct{ lo, hi int }

func pairOf(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}

// New binds fine to coarse. The coarse level must be empty and must not be
// written to by anyone else afterwards.
func New(fine *core.Arena, coarse Coarsener, opts ...Option) *Matching {
	m := &Matching{
		fine:    fine,
		coarse:  coarse,
		rule:    RuleGreedy,
		vmap:    make(map[int]int),
		emap:    make(map[int]int),
		matched: make(map[int]bool),
		pairs:   make(map[pair]int),
		queue:   newWorkQueue(),
		budget:  flipBudget,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Coarse returns the coarse level.
func (m *Matching) Coarse() Coarsener { return m.coarse }

// Rule returns the eligibility rule in use.
func (m *Matching) Rule() Rule { return m.rule }

// CoarseVertex returns the coarse counterpart of fine vertex v, 0 if none.
func (m *Matching) CoarseVertex(v int) int { return m.vmap[v] }

// CoarseEdge returns the coarse counterpart of fine edge e, 0 if none.
func (m *Matching) CoarseEdge(e int) int { return m.emap[e] }

// IsMatched reports the recorded flag of fine edge e.
func (m *Matching) IsMatched(e int) bool { return m.matched[e] }

// Pending returns the number of queued edges.
func (m *Matching) Pending() int { return m.queue.len() }

// Stats returns a summary of the current state.
func (m *Matching) Stats() Stats {
	n := 0
	for _, ok := range m.matched {
		if ok {
			n++
		}
	}
	return Stats{Matched: n, Pending: m.queue.len(), Flips: m.flips, HighWater: m.queue.highWater}
}

// VertexAdded records a new fine vertex as not yet coarsened. Isolated
// vertices get a coarse counterpart only once an edge touches them.
func (m *Matching) VertexAdded(v int) {
	m.setVertexMap(v, 0)
	m.ProcessQueue()
}

// EdgeAdded mirrors a new fine edge into the coarse level and schedules it
// together with its neighbors, whose eligibility may depend on it.
func (m *Matching) EdgeAdded(e int) {
	edge := m.mustFineEdge(e)
	m.matched[e] = false
	m.attachEdge(e)
	m.enqueueAround(edge.Source, edge.Target, 0)
	m.ProcessQueue()
}

// EdgeRemoved updates the coarse level after edge has been removed from the
// fine arena.
//
// Steps:
//  1. Drop edge from the queue.
//  2. Matched: split its coarse vertex back into singletons.
//     Unmatched: release its coarse edge.
//  3. Release the coarse vertex of any endpoint left isolated.
//  4. Enqueue the edges that depended on edge and drain.
func (m *Matching) EdgeRemoved(edge *core.Edge) {
	m.queue.remove(edge)
	u, v := edge.Source, edge.Target

	if m.matched[edge.ID] {
		delete(m.matched, edge.ID)
		m.split(u, v)
	} else {
		m.detachEdge(edge.ID)
		delete(m.matched, edge.ID)
	}
	delete(m.emap, edge.ID)

	for _, w := range [2]int{u, v} {
		if m.fine.Degree(w) == 0 && m.vmap[w] != 0 {
			m.releaseVertex(w)
		}
	}
	m.enqueueDependents(edge)
	m.ProcessQueue()
}

// VertexRemoved forgets fine vertex v. Its incident edges must already have
// been removed through EdgeRemoved.
func (m *Matching) VertexRemoved(v int) {
	if m.fine.Degree(v) != 0 {
		panic(errors.Wrapf(ErrInvariant, "vertex %d removed with %d incident edges", v, m.fine.Degree(v)))
	}
	if m.vmap[v] != 0 {
		m.releaseVertex(v)
	}
	delete(m.vmap, v)
	m.ProcessQueue()
}

// MatchEquation reports whether fine edge e should be matched under the
// configured rule.
func (m *Matching) MatchEquation(e int) bool {
	if m.fine.EdgeCount() < 2 {
		return true
	}
	edge := m.mustFineEdge(e)
	for _, w := range [2]int{edge.Source, edge.Target} {
		for _, fid := range m.fine.Incident(w) {
			if !m.fine.Edge(fid).Depends(edge) {
				continue
			}
			if m.rule == RuleLocalMinimum || m.matched[fid] {
				return false
			}
		}
	}
	return true
}

// flipBudget bounds the transitions of one drain.
func flipBudget(edges int) int {
	return 4*(edges+1)*(edges+1) + 64
}

// ProcessQueue drains the work-queue, lowest order first, flipping every edge
// whose recorded flag disagrees with MatchEquation. Panics with
// ErrQueueDiverged when the drain exceeds its flip budget.
func (m *Matching) ProcessQueue() {
	budget := m.budget(m.fine.EdgeCount())
	flips := 0
	for {
		e, ok := m.queue.pop()
		if !ok {
			break
		}
		if !m.fine.HasEdge(e) {
			continue
		}
		want := m.MatchEquation(e)
		if want == m.matched[e] {
			continue
		}
		flips++
		if flips > budget {
			panic(errors.Wrapf(ErrQueueDiverged, "%d flips over %d edges", flips, m.fine.EdgeCount()))
		}
		if want {
			m.match(e)
		} else {
			m.unmatch(e)
		}
	}
	if flips > 0 {
		klog.V(2).Infof("matching: drained with %d flips, %d coarse vertices, %d coarse edges",
			flips, m.coarse.Arena().VertexCount(), m.coarse.Arena().EdgeCount())
	}
}

// Match contracts fine edge e regardless of eligibility and schedules it for
// re-evaluation. The queue is not drained; call ProcessQueue to return to the
// fixpoint.
func (m *Matching) Match(e int) error {
	if !m.fine.HasEdge(e) {
		return ErrEdgeNotFound
	}
	if m.matched[e] {
		return ErrAlreadyMatched
	}
	m.match(e)
	m.queue.push(m.fine.Edge(e))
	return nil
}

// Unmatch reverses the contraction of fine edge e and schedules it for
// re-evaluation. The queue is not drained.
func (m *Matching) Unmatch(e int) error {
	if !m.fine.HasEdge(e) {
		return ErrEdgeNotFound
	}
	if !m.matched[e] {
		return ErrNotMatched
	}
	m.unmatch(e)
	m.queue.push(m.fine.Edge(e))
	return nil
}

// Clear forgets every correspondence. The caller clears the coarse level.
func (m *Matching) Clear() {
	m.vmap = make(map[int]int)
	m.emap = make(map[int]int)
	m.matched = make(map[int]bool)
	m.pairs = make(map[pair]int)
	m.queue.clear()
	m.flips = 0
}

func (m *Matching) mustFineEdge(e int) *core.Edge {
	edge := m.fine.Edge(e)
	if edge == nil {
		panic(errors.Wrapf(ErrInvariant, "fine edge %d missing", e))
	}
	return edge
}

// enqueueDependents schedules every live edge that edge precedes.
func (m *Matching) enqueueDependents(edge *core.Edge) {
	for _, w := range [2]int{edge.Source, edge.Target} {
		for _, fid := range m.fine.Incident(w) {
			if other := m.fine.Edge(fid); edge.Depends(other) {
				m.queue.push(other)
			}
		}
	}
}

// enqueueAround schedules every edge touching u or v except skip.
func (m *Matching) enqueueAround(u, v, skip int) {
	for _, w := range [2]int{u, v} {
		for _, fid := range m.fine.Incident(w) {
			if fid != skip {
				m.queue.push(m.fine.Edge(fid))
			}
		}
	}
}
