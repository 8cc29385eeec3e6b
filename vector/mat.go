package vector

import "gonum.org/v1/gonum/spatial/r3"

// Mat is a 3×3 matrix. The zero value is not usable; call NewMat.
//
// Scale and AddScaled mutate the receiver in place; accumulators own their
// Mat and never share it.
type Mat struct {
	m *r3.Mat
}

// NewMat returns the zero matrix.
func NewMat() Mat { return Mat{m: r3.NewMat(nil)} }

// Outer returns alpha·x·yᵀ.
func Outer(alpha float64, x, y Vec) Mat {
	out := NewMat()
	out.m.Outer(alpha, x, y)
	return out
}

// At returns the element at row i, column j.
func (a Mat) At(i, j int) float64 { return a.m.At(i, j) }

// Scale multiplies every element by f in place.
func (a Mat) Scale(f float64) { a.m.Scale(f, a.m) }

// AddScaled adds f·b to a in place.
func (a Mat) AddScaled(f float64, b Mat) {
	scaled := r3.NewMat(nil)
	scaled.Scale(f, b.m)
	a.m.Add(a.m, scaled)
}

// MulVec returns a·v.
func (a Mat) MulVec(v Vec) Vec { return a.m.MulVec(v) }
