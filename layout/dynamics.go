package layout

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/octree"
	"github.com/katalvlaran/fourd/vector"
)

// accumulators hold the level-wide double-EMA estimators of two-level dynamics.
type accumulators struct {
	alpha, alpha_ vector.Mat // cross moment of innovation vs. coarse offset
	beta, beta_   vector.Vec // mean innovation
}

func newAccumulators() accumulators {
	return accumulators{alpha: vector.NewMat(), alpha_: vector.NewMat()}
}

// Layout advances the hierarchy by one tick, coarsest level first, and
// returns the root's snapshot.
func (g *Graph) Layout() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.layout()
	return g.snapshot()
}

// Snapshot returns the current state without ticking.
func (g *Graph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.snapshot()
}

func (g *Graph) layout() {
	if g.coarser == nil {
		g.singleLevelDynamics()
	} else {
		g.coarser.layout()
		g.twoLevelDynamics()
	}
	g.ticks++
}

func (g *Graph) snapshot() Snapshot {
	vs := g.arena.Vertices()
	es := g.arena.Edges()
	snap := Snapshot{
		ID: g.id,
		V:  make([]VertexState, len(vs)),
		E:  make([]EdgeState, len(es)),
	}
	for i, v := range vs {
		snap.V[i] = VertexState{ID: v.ID, Position: vector.Array(v.Position)}
	}
	for i, e := range es {
		snap.E[i] = EdgeState{ID: e.ID, Source: e.Source, Target: e.Target}
	}
	return snap
}

func (g *Graph) singleLevelDynamics() {
	vs := g.accumulateForces()
	g.integrate(vs)
}

// accumulateForces resets accelerations and adds repulsion and attraction.
// Returns the vertices in id order.
func (g *Graph) accumulateForces() []*core.Vertex {
	s := g.settings
	vs := g.arena.Vertices()

	tree := octree.New(s)
	for _, v := range vs {
		v.Acceleration = vector.Zero
		tree.Insert(v)
	}
	force := func(a, b vector.Vec) vector.Vec { return core.PairwiseRepulsion(a, b, s, g.rng) }
	for _, v := range vs {
		v.Acceleration = vector.Add(v.Acceleration, tree.Estimate(v, force))
	}
	for _, e := range g.arena.Edges() {
		e.Apply(g.arena.Vertex(e.Source), g.arena.Vertex(e.Target), s)
	}

	klog.V(3).Infof("layout: level %d octree %d nodes, depth %d", g.depth, tree.Nodes(), tree.Depth())
	return vs
}

// integrate applies friction and one semi-implicit Euler step. Velocities
// are capped at MaxSpeed; an overflowing one is dropped for this tick.
func (g *Graph) integrate(vs []*core.Vertex) {
	f, vmax := g.settings.Friction, g.settings.MaxSpeed
	for _, v := range vs {
		v.Acceleration = vector.Sub(v.Acceleration, vector.Scale(f, v.Velocity))
		vel := vector.Add(v.Velocity, v.Acceleration)
		if !vector.IsFinite(vel) {
			klog.V(1).Infof("layout: level %d vertex %d velocity overflowed, dropped", g.depth, v.ID)
		}
		v.Velocity = vector.Clamp(vel, vmax)
		v.Position = vector.Add(v.Position, v.Velocity)
		if !vector.IsFinite(v.Position) {
			panic(errors.Wrapf(ErrInvariant, "level %d vertex %d left finite space", g.depth, v.ID))
		}
	}
}

// twoLevelDynamics ticks this level against its already-ticked coarser level.
//
// Steps:
//  1. Pair each vertex with its coarse counterpart; skip unresolved ones.
//  2. Update per-vertex innovation and integral.
//  3. Update the level accumulators from the innovation statistics.
//  4. Compute each projected correction.
//  5. Accumulate forces, add the corrections, integrate.
func (g *Graph) twoLevelDynamics() {
	s := g.settings
	damp, theta := s.Dampening, s.Theta
	coarse := g.coarser.arena

	type pairing struct {
		v, y *core.Vertex
	}
	var pairs []pairing
	for _, v := range g.arena.Vertices() {
		v.Projected = vector.Zero
		if y := coarse.Vertex(v.Coarser); y != nil {
			pairs = append(pairs, pairing{v: v, y: y})
		}
	}

	if len(pairs) > 0 {
		innovations := make([]vector.Vec, len(pairs))
		positions := make([]vector.Vec, len(pairs))
		for i, p := range pairs {
			p.v.Innovation = vector.Sub(p.y.Velocity, p.v.Velocity)
			p.v.Integral = vector.Add(vector.Scale(1-damp, p.v.Integral), p.v.Innovation)
			innovations[i] = p.v.Innovation
			positions[i] = p.y.Position
		}
		mean := vector.Mean(innovations)
		center := vector.Mean(positions)

		cross := vector.NewMat()
		spread := s.Epsilon
		w := 1 / float64(len(pairs))
		for i := range pairs {
			offset := vector.Sub(positions[i], center)
			cross.AddScaled(w, vector.Outer(1, vector.Sub(innovations[i], mean), offset))
			spread += w * vector.Dot(offset, offset)
		}

		acc := &g.twoLevel
		acc.beta_ = vector.Add(vector.Scale(1-damp, acc.beta_), vector.Scale(damp, mean))
		acc.beta = vector.Add(vector.Scale(1-damp, acc.beta), vector.Scale(damp, acc.beta_))
		acc.alpha_.Scale(1 - damp)
		acc.alpha_.AddScaled(damp/spread, cross)
		acc.alpha.Scale(1 - damp)
		acc.alpha.AddScaled(damp, acc.alpha_)

		for _, p := range pairs {
			offset := vector.Sub(p.y.Position, center)
			trend := vector.Add(acc.beta, acc.alpha.MulVec(offset))
			p.v.Projected = vector.Add(
				vector.Scale(theta, p.v.Innovation),
				vector.Scale(theta*theta, vector.Add(p.v.Integral, trend)),
			)
		}
	}

	vs := g.accumulateForces()
	for _, p := range pairs {
		p.v.Acceleration = vector.Add(p.v.Acceleration, p.v.Projected)
	}
	g.integrate(vs)
}
