// Package layout runs multilevel 3D force-directed layouts.
//
// A Graph is the root of a hierarchy of progressively coarser levels. New(L)
// builds a chain of exactly L coarser levels beneath the root; each level
// owns a matching.Matching that owns the next level. Callers mutate only the
// root; every mutation cascades down the chain before returning.
//
// Each call to Layout advances the hierarchy by one tick:
//
//   - the coarsest level runs single-level dynamics: repulsion estimated with
//     a fresh octree, spring attraction per edge, linear friction, then
//     semi-implicit Euler (vel += acc; pos += vel);
//   - every finer level first lets its coarser level tick, then runs
//     two-level dynamics: the single-level update plus a projected correction
//     that steers each vertex toward the motion of its coarse counterpart.
//
// Two-level correction (per resolvable vertex v with coarse counterpart y,
// δ = Dampening, θ = Theta):
//
//	innovation = y.vel − v.vel
//	integral   = (1−δ)·integral + innovation
//	beta_      = (1−δ)·beta_  + δ·mean(innovation)
//	beta       = (1−δ)·beta   + δ·beta_
//	alpha_     = (1−δ)·alpha_ + δ·cov(innovation, y.pos)/spread(y.pos)
//	alpha      = (1−δ)·alpha  + δ·alpha_
//	projected  = θ·innovation + θ²·integral + θ²·(beta + alpha·(y.pos − ȳ))
//
// Vertices without a coarse counterpart yet (isolated ones) tick single-level.
//
// Concurrency: the root owns one mutex that serializes every exported method
// on every level of its hierarchy. Separate hierarchies share nothing and may
// be driven from separate goroutines.
//
// Failure model: unknown ids on removal return false; unknown endpoints on
// AddEdge return core.ErrVertexNotFound; a non-finite position after a tick
// or a broken correspondence panics with ErrInvariant.
package layout
