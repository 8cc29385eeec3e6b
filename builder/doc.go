// Package builder provides deterministic "functional-options"-style topology
// constructors that populate any layout Target, typically the root of a
// layout.Graph hierarchy. Fixtures for tests, benchmarks and the CLI -gen flag
// are all produced here.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     BuilderOption mutates builderConfig before use; builderConfig holds the
//     RNG, the strength distribution and the directed flag.
//   - Edge-strength distributions (StrengthFn implementations):
//     DefaultStrengthFn, ConstantStrengthFn, UniformStrengthFn,
//     NormalStrengthFn, ExponentialStrengthFn.
//   - Topologies:
//     Complete, CompleteBipartite, Cycle, Path, Star, Wheel, Grid,
//     RandomSparse, RandomRegular, PlatonicSolid.
//   - Generator specs:
//     ParseGenerator turns "cycle:12" or "grid:4x6" into a Constructor.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Runtime parameter errors are returned wrapped around package sentinels;
//     branch with errors.Is.
//   - Every constructor returns the vertex ids it created, in creation order,
//     so callers can address the fixture afterwards.
//   - Same options, seed and constructor order produce the same edges in the
//     same order.
package builder
