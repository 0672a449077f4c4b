package core

import "math"

// Epsilon is the tolerance used by every approximate comparison in the
// raytracer. It is loose enough to absorb single-precision accumulation.
const Epsilon = 0.0035

// FloatEqual reports whether a and b differ by less than Epsilon
func FloatEqual(a, b float64) bool {
	return FloatEqualWithin(a, b, Epsilon)
}

// FloatEqualWithin reports whether a and b differ by less than tolerance
func FloatEqualWithin(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees / 180.0 * math.Pi
}
