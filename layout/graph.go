package layout

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/matching"
	"github.com/katalvlaran/fourd/vector"
)

// Graph is one level of a layout hierarchy. The value returned by New is the
// root; coarser levels are reachable through Coarser and must be treated as
// read-only by callers.
type Graph struct {
	mu *sync.RWMutex // shared by every level of the hierarchy

	id       int
	depth    int
	ids      *core.IDs  // shared
	rng      *rand.Rand // shared
	settings core.Settings

	arena    *core.Arena
	matching *matching.Matching // nil on the coarsest level
	coarser  *Graph

	twoLevel accumulators
	ticks    uint64
}

// New builds a root with a chain of exactly levels coarser graphs beneath it.
// Panics if levels is negative.
func New(levels int, opts ...Option) *Graph {
	if levels < 0 {
		panic("layout: New requires levels >= 0")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ids := core.NewIDs()
	rng := rngFromSeed(cfg.seed)
	mu := new(sync.RWMutex)

	return newLevel(levels, 0, mu, ids, rng, cfg)
}

func newLevel(levels, depth int, mu *sync.RWMutex, ids *core.IDs, rng *rand.Rand, cfg config) *Graph {
	g := &Graph{
		mu:       mu,
		id:       ids.NextGraph(),
		depth:    depth,
		ids:      ids,
		rng:      rng,
		settings: cfg.settings,
		arena:    core.NewArena(),
		twoLevel: newAccumulators(),
	}
	if levels > 0 {
		g.coarser = newLevel(levels-1, depth+1, mu, ids, rng, cfg)
		g.matching = matching.New(g.arena, levelHandle{g.coarser}, matching.WithRule(cfg.rule))
	}
	return g
}

// levelHandle exposes a coarse level to its Matching without taking the
// hierarchy lock, which the caller already holds.
type levelHandle struct{ g *Graph }

func (h levelHandle) AddVertex() int { return h.g.addVertex() }
func (h levelHandle) AddEdge(s, t int, opts ...core.EdgeOption) (int, error) {
	return h.g.addEdge(s, t, opts...)
}
func (h levelHandle) RemoveVertex(id int) bool { return h.g.removeVertex(id) }
func (h levelHandle) RemoveEdge(id int) bool   { return h.g.removeEdge(id) }
func (h levelHandle) Arena() *core.Arena       { return h.g.arena }

// AddVertex creates a vertex at a random position in [-10,10)³ and returns its id.
//
// Complexity: O(1) plus the matching cascade (none for an isolated vertex).
func (g *Graph) AddVertex() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addVertex()
}

func (g *Graph) addVertex() int {
	id := g.ids.NextVertex()
	v := core.NewVertex(id, vector.Random(g.rng, -spawnRadius, spawnRadius))
	if err := g.arena.AddVertex(v); err != nil {
		panic(errors.Wrapf(ErrInvariant, "add vertex %d: %v", id, err))
	}
	if g.matching != nil {
		g.matching.VertexAdded(id)
	}
	return id
}

// AddEdge connects source and target and returns the new edge id. The edge is
// undirected with strength 1 unless opts say otherwise. Parallel edges are
// allowed.
//
// Errors: core.ErrVertexNotFound, core.ErrLoopNotAllowed.
func (g *Graph) AddEdge(source, target int, opts ...core.EdgeOption) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addEdge(source, target, opts...)
}

func (g *Graph) addEdge(source, target int, opts ...core.EdgeOption) (int, error) {
	if !g.arena.HasVertex(source) || !g.arena.HasVertex(target) {
		return 0, core.ErrVertexNotFound
	}
	if source == target {
		return 0, core.ErrLoopNotAllowed
	}
	id := g.ids.NextEdge()
	e := core.NewEdge(id, source, target, g.rng.Float64(), opts...)
	if err := g.arena.AddEdge(e); err != nil {
		panic(errors.Wrapf(ErrInvariant, "add edge %d: %v", id, err))
	}
	if g.matching != nil {
		g.matching.EdgeAdded(id)
	}
	return id, nil
}

// RemoveVertex deletes a vertex and its incident edges. Returns false for an
// unknown id.
func (g *Graph) RemoveVertex(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.removeVertex(id)
}

func (g *Graph) removeVertex(id int) bool {
	if !g.arena.HasVertex(id) {
		return false
	}
	for _, eid := range g.arena.Incident(id) {
		g.removeEdge(eid)
	}
	if g.matching != nil {
		g.matching.VertexRemoved(id)
	}
	if _, err := g.arena.RemoveVertex(id); err != nil {
		panic(errors.Wrapf(ErrInvariant, "remove vertex %d: %v", id, err))
	}
	return true
}

// RemoveEdge deletes an edge. Returns false for an unknown id.
func (g *Graph) RemoveEdge(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.removeEdge(id)
}

func (g *Graph) removeEdge(id int) bool {
	e, err := g.arena.RemoveEdge(id)
	if err != nil {
		return false
	}
	if g.matching != nil {
		g.matching.EdgeRemoved(e)
	}
	return true
}

// Clear empties every level, resets the two-level accumulators and restarts
// all id counters. Level ids are reassigned from 1, root first.
func (g *Graph) Clear() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ids.Reset()
	for lvl := g; lvl != nil; lvl = lvl.coarser {
		lvl.id = g.ids.NextGraph()
		lvl.arena.Clear()
		if lvl.matching != nil {
			lvl.matching.Clear()
		}
		lvl.twoLevel = newAccumulators()
		lvl.ticks = 0
	}
	return true
}

// ID returns the graph id of this level.
func (g *Graph) ID() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.id
}

// Levels returns the number of coarser levels beneath g.
func (g *Graph) Levels() int {
	n := 0
	for lvl := g.coarser; lvl != nil; lvl = lvl.coarser {
		n++
	}
	return n
}

// Coarser returns the next coarser level, or nil on the coarsest one.
func (g *Graph) Coarser() *Graph { return g.coarser }

// Settings returns the knobs shared by the hierarchy.
func (g *Graph) Settings() core.Settings { return g.settings }

// VertexCount returns the number of live vertices on this level.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.arena.VertexCount()
}

// EdgeCount returns the number of live edges on this level.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.arena.EdgeCount()
}

// VertexIDs returns live vertex ids, sorted ascending.
func (g *Graph) VertexIDs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.arena.VertexIDs()
}

// EdgeIDs returns live edge ids, sorted ascending.
func (g *Graph) EdgeIDs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.arena.EdgeIDs()
}

// Vertex returns a copy of vertex id.
func (g *Graph) Vertex(id int) (core.Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v := g.arena.Vertex(id)
	if v == nil {
		return core.Vertex{}, false
	}
	out := *v
	out.Finer = make(map[int]struct{}, len(v.Finer))
	for f := range v.Finer {
		out.Finer[f] = struct{}{}
	}
	return out, true
}

// Edge returns a copy of edge id.
func (g *Graph) Edge(id int) (core.Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := g.arena.Edge(id)
	if e == nil {
		return core.Edge{}, false
	}
	return *e, true
}

// SetPosition moves vertex id. Returns false for an unknown id or a
// non-finite position.
func (g *Graph) SetPosition(id int, pos vector.Vec) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := g.arena.Vertex(id)
	if v == nil || !vector.IsFinite(pos) {
		return false
	}
	v.Position = pos
	return true
}

// SetVelocity overrides the velocity of vertex id. Returns false for an
// unknown id or a non-finite velocity.
func (g *Graph) SetVelocity(id int, vel vector.Vec) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := g.arena.Vertex(id)
	if v == nil || !vector.IsFinite(vel) {
		return false
	}
	v.Velocity = vel
	return true
}

// CoarseVertexOf returns the id of the coarse counterpart of vertex id on the
// next level, or 0 when there is none.
func (g *Graph) CoarseVertexOf(id int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.matching == nil {
		return 0
	}
	return g.matching.CoarseVertex(id)
}

// IsMatched reports whether edge id is contracted into the next level.
func (g *Graph) IsMatched(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.matching != nil && g.matching.IsMatched(id)
}

// Stats returns one entry per level, root first.
func (g *Graph) Stats() []LevelStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []LevelStats
	for lvl := g; lvl != nil; lvl = lvl.coarser {
		st := LevelStats{
			Depth:    lvl.depth,
			ID:       lvl.id,
			Vertices: lvl.arena.VertexCount(),
			Edges:    lvl.arena.EdgeCount(),
			Ticks:    lvl.ticks,
		}
		if lvl.matching != nil {
			ms := lvl.matching.Stats()
			st.Matched = ms.Matched
			st.Flips = ms.Flips
		}
		out = append(out, st)
	}
	return out
}

// CheckInvariants verifies the correspondence between every pair of adjacent
// levels and returns the first violation.
func (g *Graph) CheckInvariants() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for lvl := g; lvl.matching != nil; lvl = lvl.coarser {
		if err := lvl.matching.CheckInvariants(); err != nil {
			return errors.Wrapf(err, "level %d", lvl.depth)
		}
	}
	return nil
}
