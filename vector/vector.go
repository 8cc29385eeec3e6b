package vector

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3-component vector.
type Vec = r3.Vec

// Zero is the origin.
var Zero = Vec{}

// Add returns a+b.
func Add(a, b Vec) Vec { return r3.Add(a, b) }

// Sub returns a-b.
func Sub(a, b Vec) Vec { return r3.Sub(a, b) }

// Scale returns f·a.
func Scale(f float64, a Vec) Vec { return r3.Scale(f, a) }

// Dot returns a·b.
func Dot(a, b Vec) float64 { return r3.Dot(a, b) }

// Norm returns |a|.
func Norm(a Vec) float64 { return r3.Norm(a) }

// Distance returns |a-b|.
func Distance(a, b Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

// Random returns a vector with each component drawn uniformly from [lo, hi).
// rng must not be nil.
func Random(rng *rand.Rand, lo, hi float64) Vec {
	span := hi - lo
	return Vec{
		X: lo + rng.Float64()*span,
		Y: lo + rng.Float64()*span,
		Z: lo + rng.Float64()*span,
	}
}

// IsFinite reports whether no component is NaN or ±Inf.
func IsFinite(a Vec) bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0) &&
		!math.IsNaN(a.Z) && !math.IsInf(a.Z, 0)
}

// Clamp returns a shortened to length max when it is longer, and Zero when a
// is not finite.
func Clamp(a Vec, max float64) Vec {
	if !IsFinite(a) {
		return Zero
	}
	n := Norm(a)
	if math.IsInf(n, 0) {
		m := math.Max(math.Abs(a.X), math.Max(math.Abs(a.Y), math.Abs(a.Z)))
		a = Scale(1/m, a)
		n = Norm(a)
	} else if n <= max {
		return a
	}
	return Scale(max/n, a)
}

// Array returns the components as a fixed array, the shape used in snapshots.
func Array(a Vec) [3]float64 { return [3]float64{a.X, a.Y, a.Z} }

// FromArray is the inverse of Array.
func FromArray(a [3]float64) Vec { return Vec{X: a[0], Y: a[1], Z: a[2]} }

// Mean returns the arithmetic mean of vs, or Zero for an empty slice.
func Mean(vs []Vec) Vec {
	if len(vs) == 0 {
		return Zero
	}
	var sum Vec
	for _, v := range vs {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(vs)), sum)
}
