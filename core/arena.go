// File: arena.go
// Role: Per-level store of vertices and edges addressed by integer id, plus
//       the incidence table that replaces vertex↔edge pointers.
// Determinism:
//   - VertexIDs/EdgeIDs/Incident return ids sorted ascending.
// Concurrency:
//   - None. The hierarchy root serializes every call.
// AI-HINT (file):
//   - RemoveVertex refuses a vertex that still has incident edges; remove edges first.
//   - Vertex/Edge return the live pointer owned by the arena; callers may mutate
//     dynamic fields but must not change ids or endpoints.

package core

import "sort"

// Arena exclusively owns the vertices and edges of one level.
type Arena struct {
	vertices  map[int]*Vertex
	edges     map[int]*Edge
	incidence map[int]map[int]struct{} // vertexID -> set of incident edgeIDs
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{
		vertices:  make(map[int]*Vertex),
		edges:     make(map[int]*Edge),
		incidence: make(map[int]map[int]struct{}),
	}
}

// AddVertex stores v.
//
// Errors: ErrNilVertex, ErrDuplicateID.
// Complexity: O(1).
func (a *Arena) AddVertex(v *Vertex) error {
	if v == nil {
		return ErrNilVertex
	}
	if _, ok := a.vertices[v.ID]; ok {
		return ErrDuplicateID
	}
	if v.Finer == nil {
		v.Finer = make(map[int]struct{})
	}
	a.vertices[v.ID] = v
	a.incidence[v.ID] = make(map[int]struct{})

	return nil
}

// RemoveVertex deletes an isolated vertex and returns it.
//
// Errors: ErrVertexNotFound, ErrVertexHasEdges.
// Complexity: O(1).
func (a *Arena) RemoveVertex(id int) (*Vertex, error) {
	v, ok := a.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	if len(a.incidence[id]) > 0 {
		return nil, ErrVertexHasEdges
	}
	delete(a.vertices, id)
	delete(a.incidence, id)

	return v, nil
}

// AddEdge stores e and records it in both endpoints' incidence sets.
// Parallel edges between the same pair are allowed.
//
// Steps:
//  1. Reject nil, duplicate id, self-loop.
//  2. Require both endpoints to exist.
//  3. Store and link incidence.
//
// Errors: ErrNilEdge, ErrDuplicateID, ErrLoopNotAllowed, ErrVertexNotFound.
// Complexity: O(1).
func (a *Arena) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if _, ok := a.edges[e.ID]; ok {
		return ErrDuplicateID
	}
	if e.Source == e.Target {
		return ErrLoopNotAllowed
	}
	if _, ok := a.vertices[e.Source]; !ok {
		return ErrVertexNotFound
	}
	if _, ok := a.vertices[e.Target]; !ok {
		return ErrVertexNotFound
	}
	a.edges[e.ID] = e
	a.incidence[e.Source][e.ID] = struct{}{}
	a.incidence[e.Target][e.ID] = struct{}{}

	return nil
}

// RemoveEdge unlinks and deletes an edge, returning it.
//
// Errors: ErrEdgeNotFound.
// Complexity: O(1).
func (a *Arena) RemoveEdge(id int) (*Edge, error) {
	e, ok := a.edges[id]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	delete(a.edges, id)
	delete(a.incidence[e.Source], id)
	delete(a.incidence[e.Target], id)

	return e, nil
}

// Vertex returns the vertex with id, or nil.
func (a *Arena) Vertex(id int) *Vertex { return a.vertices[id] }

// Edge returns the edge with id, or nil.
func (a *Arena) Edge(id int) *Edge { return a.edges[id] }

// HasVertex reports whether id is live.
func (a *Arena) HasVertex(id int) bool {
	_, ok := a.vertices[id]
	return ok
}

// HasEdge reports whether id is live.
func (a *Arena) HasEdge(id int) bool {
	_, ok := a.edges[id]
	return ok
}

// Incident returns the ids of edges touching vertex id, sorted ascending.
// Unknown ids yield nil.
func (a *Arena) Incident(id int) []int {
	set, ok := a.incidence[id]
	if !ok || len(set) == 0 {
		return nil
	}
	return sortedKeys(set)
}

// Degree returns the number of edges touching vertex id.
func (a *Arena) Degree(id int) int { return len(a.incidence[id]) }

// VertexIDs returns every live vertex id, sorted ascending.
func (a *Arena) VertexIDs() []int {
	out := make([]int, 0, len(a.vertices))
	for id := range a.vertices {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// EdgeIDs returns every live edge id, sorted ascending.
func (a *Arena) EdgeIDs() []int {
	out := make([]int, 0, len(a.edges))
	for id := range a.edges {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// Vertices returns live vertices sorted by id.
func (a *Arena) Vertices() []*Vertex {
	ids := a.VertexIDs()
	out := make([]*Vertex, len(ids))
	for i, id := range ids {
		out[i] = a.vertices[id]
	}

	return out
}

// Edges returns live edges sorted by id.
func (a *Arena) Edges() []*Edge {
	ids := a.EdgeIDs()
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = a.edges[id]
	}

	return out
}

// VertexCount returns the number of live vertices.
func (a *Arena) VertexCount() int { return len(a.vertices) }

// EdgeCount returns the number of live edges.
func (a *Arena) EdgeCount() int { return len(a.edges) }

// Clear drops every vertex and edge.
func (a *Arena) Clear() {
	a.vertices = make(map[int]*Vertex)
	a.edges = make(map[int]*Edge)
	a.incidence = make(map[int]map[int]struct{})
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}
