// Package vector fixes the small closed set of 3D arithmetic used by the
// layout engine.
//
// Vectors are gonum's r3.Vec (X, Y, Z fields) and are always passed by value;
// the operations actually needed are r3.Add, r3.Sub, r3.Scale, r3.Dot,
// r3.Norm and Distance from this package. A 3×3 Mat backs the cross-moment
// accumulators of two-level dynamics.
//
// Nothing here keeps state; every function is safe for concurrent use as
// long as the *rand.Rand passed to Random is not shared.
package vector
