// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables (package-level) are exposed.
//   - Callers use errors.Is(err, ErrX) to branch on semantics.
//   - Implementations attach context with %w; sentinels carry no parameters.
//   - Constructors never panic at runtime; validation panics are confined to
//     option constructors (WithX...).

package builder

import "errors"

// ErrTooFewVertices indicates that a numeric parameter (n, rows, cols, degree)
// is smaller than the allowed minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor was run without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrUnsupportedGraphMode indicates the constructor is incompatible with the
// configured edge mode (e.g., RandomRegular with directed edges).
var ErrUnsupportedGraphMode = errors.New("builder: unsupported graph mode")

// ErrConstructFailed indicates that the builder exhausted its attempts, or
// was handed a nil target or constructor.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrOptionViolation indicates a value that must surface as an error rather
// than a panic: an unknown solid, a malformed generator spec, or a strength
// function returning a negative or non-finite value.
var ErrOptionViolation = errors.New("builder: invalid option value")
