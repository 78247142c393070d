package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance returns the euclidean distance between two points.
func Distance(a, b cp.Vector) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Direction returns the unit vector pointing from a to b, or the zero vector
// when the points coincide.
func Direction(a, b cp.Vector) cp.Vector {
	d := b.Sub(a)
	if d.Length() < 1e-9 {
		return cp.Vector{}
	}
	return d.Normalize()
}
