package matching

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/vector"
)

// match contracts e = (u,v) into one coarse vertex.
//
// Steps:
//  1. Unmatch matched neighbors that would share u or v.
//  2. Detach every edge around u and v from the coarse level.
//  3. Remove the now isolated coarse vertices of u and v.
//  4. Create one coarse vertex for {u,v} at their midpoint.
//  5. Flag e matched and reattach the other edges around u and v.
//  6. Enqueue the edges around u and v.
func (m *Matching) match(e int) {
	edge := m.mustFineEdge(e)
	u, v := edge.Source, edge.Target
	klog.V(3).Infof("matching: match edge %d (%d,%d) order=%.6f", e, u, v, edge.Order)

	for _, fid := range m.around(u, v) {
		if fid != e && m.matched[fid] {
			m.unmatch(fid)
		}
	}

	around := m.around(u, v)
	for _, fid := range around {
		m.detachEdge(fid)
	}
	m.dropCoarse(m.vmap[u])
	if m.vmap[v] != m.vmap[u] {
		m.dropCoarse(m.vmap[v])
	}

	fu, fv := m.fine.Vertex(u), m.fine.Vertex(v)
	mid := vector.Scale(0.5, vector.Add(fu.Position, fv.Position))
	cid := m.newCoarse(mid, u, v)
	m.setVertexMap(u, cid)
	m.setVertexMap(v, cid)

	m.matched[e] = true
	m.flips++
	for _, fid := range around {
		m.attachEdge(fid)
	}
	m.enqueueAround(u, v, e)
}

// unmatch splits the coarse vertex of e = (u,v) back into singletons.
func (m *Matching) unmatch(e int) {
	edge := m.mustFineEdge(e)
	klog.V(3).Infof("matching: unmatch edge %d (%d,%d)", e, edge.Source, edge.Target)

	m.matched[e] = false
	m.flips++
	m.split(edge.Source, edge.Target)
	m.enqueueAround(edge.Source, edge.Target, e)
}

// split dissolves the shared coarse vertex of u and v and reattaches every
// remaining fine edge around them. The matched flag of the edge that joined
// them must already be cleared.
func (m *Matching) split(u, v int) {
	cid := m.vmap[u]
	if cid == 0 || m.vmap[v] != cid {
		panic(errors.Wrapf(ErrInvariant, "vertices %d,%d do not share a coarse vertex", u, v))
	}
	around := m.around(u, v)
	for _, fid := range around {
		m.detachEdge(fid)
	}
	m.dropCoarse(cid)
	m.setVertexMap(u, 0)
	m.setVertexMap(v, 0)
	for _, fid := range around {
		m.attachEdge(fid)
	}
}

// around returns the fine edges touching u or v, sorted, without duplicates.
func (m *Matching) around(u, v int) []int {
	seen := make(map[int]struct{})
	for _, w := range [2]int{u, v} {
		for _, fid := range m.fine.Incident(w) {
			seen[fid] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for fid := range seen {
		out = append(out, fid)
	}
	sort.Ints(out)
	return out
}

// attachEdge gives an unmatched fine edge its coarse representative, creating
// coarse vertices for its endpoints on demand.
func (m *Matching) attachEdge(e int) {
	edge := m.mustFineEdge(e)
	cu := m.ensureCoarse(edge.Source)
	cv := m.ensureCoarse(edge.Target)
	if m.matched[e] || cu == cv {
		m.setEdgeMap(edge, 0)
		return
	}
	key := pairOf(cu, cv)
	if ce, ok := m.pairs[key]; ok {
		m.coarse.Arena().Edge(ce).Count++
		m.setEdgeMap(edge, ce)
		return
	}
	ce, err := m.coarse.AddEdge(cu, cv, core.WithDirected(edge.Directed), core.WithStrength(edge.Strength))
	if err != nil {
		panic(errors.Wrapf(ErrInvariant, "coarse edge (%d,%d) for fine edge %d: %v", cu, cv, e, err))
	}
	m.pairs[key] = ce
	m.setEdgeMap(edge, ce)
}

// detachEdge releases the coarse representative of fine edge e, deleting it
// once no fine edge maps onto it.
func (m *Matching) detachEdge(e int) {
	ce := m.emap[e]
	if ce == 0 {
		return
	}
	if edge := m.fine.Edge(e); edge != nil {
		m.setEdgeMap(edge, 0)
	} else {
		delete(m.emap, e)
	}
	coarseEdge := m.coarse.Arena().Edge(ce)
	if coarseEdge == nil {
		panic(errors.Wrapf(ErrInvariant, "coarse edge %d of fine edge %d missing", ce, e))
	}
	coarseEdge.Count--
	if coarseEdge.Count > 0 {
		return
	}
	delete(m.pairs, pairOf(coarseEdge.Source, coarseEdge.Target))
	if !m.coarse.RemoveEdge(ce) {
		panic(errors.Wrapf(ErrInvariant, "coarse edge %d could not be removed", ce))
	}
}

// ensureCoarse returns the coarse vertex of fine vertex v, creating a
// singleton at v's position if needed.
func (m *Matching) ensureCoarse(v int) int {
	if cid := m.vmap[v]; cid != 0 {
		return cid
	}
	fv := m.fine.Vertex(v)
	if fv == nil {
		panic(errors.Wrapf(ErrInvariant, "fine vertex %d missing", v))
	}
	cid := m.newCoarse(fv.Position, v)
	m.setVertexMap(v, cid)
	return cid
}

// newCoarse creates a coarse vertex at rest at pos representing finer.
func (m *Matching) newCoarse(pos vector.Vec, finer ...int) int {
	cid := m.coarse.AddVertex()
	cv := m.coarse.Arena().Vertex(cid)
	cv.Position = pos
	cv.ResetDynamics()
	for _, f := range finer {
		cv.Finer[f] = struct{}{}
	}
	return cid
}

// releaseVertex removes the singleton coarse vertex of isolated fine vertex v.
func (m *Matching) releaseVertex(v int) {
	cid := m.vmap[v]
	cv := m.coarse.Arena().Vertex(cid)
	if cv == nil || len(cv.Finer) != 1 {
		panic(errors.Wrapf(ErrInvariant, "isolated vertex %d has a shared coarse vertex %d", v, cid))
	}
	m.dropCoarse(cid)
	m.setVertexMap(v, 0)
}

// dropCoarse removes coarse vertex cid, which must have no coarse edges left.
func (m *Matching) dropCoarse(cid int) {
	if cid == 0 {
		return
	}
	if d := m.coarse.Arena().Degree(cid); d != 0 {
		panic(errors.Wrapf(ErrInvariant, "coarse vertex %d still has %d edges", cid, d))
	}
	if !m.coarse.RemoveVertex(cid) {
		panic(errors.Wrapf(ErrInvariant, "coarse vertex %d missing", cid))
	}
}

func (m *Matching) setVertexMap(v, cid int) {
	m.vmap[v] = cid
	if fv := m.fine.Vertex(v); fv != nil {
		fv.Coarser = cid
	}
}

func (m *Matching) setEdgeMap(edge *core.Edge, ce int) {
	if ce == 0 {
		delete(m.emap, edge.ID)
	} else {
		m.emap[edge.ID] = ce
	}
	edge.Coarser = ce
}
