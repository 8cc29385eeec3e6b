package matching

import (
	"github.com/pkg/errors"
)

// CheckInvariants verifies the fine/coarse correspondence and returns the
// first violation found, wrapped in ErrInvariant. Intended for tests and
// debugging; it walks both levels.
//
// Checked:
//   - matched edges are pairwise disjoint
//   - every fine vertex of positive degree has a live coarse vertex that lists it in Finer
//   - endpoints of a matched edge share a coarse vertex; other endpoints do not
//   - unmatched edges between distinct coarse vertices map to a coarse edge joining them
//   - each coarse edge's Count equals the number of fine edges mapped onto it
//   - every coarse vertex and coarse edge is accounted for
func (m *Matching) CheckInvariants() error {
	carena := m.coarse.Arena()

	cover := make(map[int]int) // fine vertex -> matched edge covering it
	for _, edge := range m.fine.Edges() {
		if !m.matched[edge.ID] {
			continue
		}
		for _, w := range [2]int{edge.Source, edge.Target} {
			if other, ok := cover[w]; ok {
				return errors.Wrapf(ErrInvariant, "matched edges %d and %d share vertex %d", other, edge.ID, w)
			}
			cover[w] = edge.ID
		}
	}

	usedVertices := make(map[int]struct{})
	for _, v := range m.fine.Vertices() {
		cid, ok := m.vmap[v.ID]
		if !ok {
			return errors.Wrapf(ErrInvariant, "fine vertex %d unknown to matching", v.ID)
		}
		if v.Coarser != cid {
			return errors.Wrapf(ErrInvariant, "fine vertex %d: Coarser=%d, map=%d", v.ID, v.Coarser, cid)
		}
		if cid == 0 {
			if m.fine.Degree(v.ID) > 0 {
				return errors.Wrapf(ErrInvariant, "fine vertex %d has edges but no coarse vertex", v.ID)
			}
			continue
		}
		cv := carena.Vertex(cid)
		if cv == nil {
			return errors.Wrapf(ErrInvariant, "fine vertex %d maps to dead coarse vertex %d", v.ID, cid)
		}
		if _, ok := cv.Finer[v.ID]; !ok {
			return errors.Wrapf(ErrInvariant, "coarse vertex %d does not list fine vertex %d", cid, v.ID)
		}
		usedVertices[cid] = struct{}{}
	}
	if len(usedVertices) != carena.VertexCount() {
		return errors.Wrapf(ErrInvariant, "%d coarse vertices, %d referenced", carena.VertexCount(), len(usedVertices))
	}
	for _, cv := range carena.Vertices() {
		if n := len(cv.Finer); n != 1 && n != 2 {
			return errors.Wrapf(ErrInvariant, "coarse vertex %d represents %d fine vertices", cv.ID, len(cv.Finer))
		}
		for f := range cv.Finer {
			if m.vmap[f] != cv.ID {
				return errors.Wrapf(ErrInvariant, "coarse vertex %d lists fine vertex %d mapped elsewhere", cv.ID, f)
			}
		}
	}

	counts := make(map[int]int)
	for _, edge := range m.fine.Edges() {
		cu, cv := m.vmap[edge.Source], m.vmap[edge.Target]
		ce := m.emap[edge.ID]
		if edge.Coarser != ce {
			return errors.Wrapf(ErrInvariant, "fine edge %d: Coarser=%d, map=%d", edge.ID, edge.Coarser, ce)
		}
		if m.matched[edge.ID] {
			if cu != cv {
				return errors.Wrapf(ErrInvariant, "matched edge %d endpoints in coarse %d and %d", edge.ID, cu, cv)
			}
			if ce != 0 {
				return errors.Wrapf(ErrInvariant, "matched edge %d has coarse edge %d", edge.ID, ce)
			}
			continue
		}
		if cu == cv {
			if ce != 0 {
				return errors.Wrapf(ErrInvariant, "internal edge %d has coarse edge %d", edge.ID, ce)
			}
			continue
		}
		coarseEdge := carena.Edge(ce)
		if coarseEdge == nil {
			return errors.Wrapf(ErrInvariant, "fine edge %d maps to dead coarse edge %d", edge.ID, ce)
		}
		if pairOf(coarseEdge.Source, coarseEdge.Target) != pairOf(cu, cv) {
			return errors.Wrapf(ErrInvariant, "fine edge %d: coarse edge %d joins the wrong vertices", edge.ID, ce)
		}
		counts[ce]++
	}
	if len(counts) != carena.EdgeCount() {
		return errors.Wrapf(ErrInvariant, "%d coarse edges, %d referenced", carena.EdgeCount(), len(counts))
	}
	for ce, n := range counts {
		if got := carena.Edge(ce).Count; got != n {
			return errors.Wrapf(ErrInvariant, "coarse edge %d: Count=%d, mapped=%d", ce, got, n)
		}
		if m.pairs[pairOf(carena.Edge(ce).Source, carena.Edge(ce).Target)] != ce {
			return errors.Wrapf(ErrInvariant, "coarse edge %d missing from pair index", ce)
		}
	}
	if len(m.pairs) != len(counts) {
		return errors.Wrapf(ErrInvariant, "pair index holds %d entries for %d coarse edges", len(m.pairs), len(counts))
	}

	return nil
}
