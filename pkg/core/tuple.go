package core

import (
	"errors"
	"math"
)

// ErrZeroLength is returned when a zero-length vector is normalized
var ErrZeroLength = errors.New("cannot normalize a zero-length vector")

// Tuple is a four component value. W is 1 for points and 0 for vectors.
// Colors use the same layout with channels read through R, G, B and I.
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple creates a new Tuple
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Point creates a point (w = 1)
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a direction vector (w = 0)
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

// Color creates a color with zero intensity slot
func Color(r, g, b float64) Tuple {
	return Tuple{X: r, Y: g, Z: b, W: 0}
}

// Black is the background color
var Black = Color(0, 0, 0)

// White is full intensity on every channel
var White = Color(1, 1, 1)

// R returns the red channel of a color
func (t Tuple) R() float64 { return t.X }

// G returns the green channel of a color
func (t Tuple) G() float64 { return t.Y }

// B returns the blue channel of a color
func (t Tuple) B() float64 { return t.Z }

// I returns the intensity slot of a color
func (t Tuple) I() float64 { return t.W }

// IsPoint reports whether the tuple is a point
func (t Tuple) IsPoint() bool {
	return FloatEqual(t.W, 1)
}

// IsVector reports whether the tuple is a vector
func (t Tuple) IsVector() bool {
	return FloatEqual(t.W, 0)
}

// Add returns the sum of two tuples
func (t Tuple) Add(other Tuple) Tuple {
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the difference of two tuples
func (t Tuple) Subtract(other Tuple) Tuple {
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the negated tuple
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Hadamard returns the component-wise product of two tuples
func (t Tuple) Hadamard(other Tuple) Tuple {
	return Tuple{t.X * other.X, t.Y * other.Y, t.Z * other.Z, t.W * other.W}
}

// Dot returns the dot product over all four components
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors. W is ignored.
func (t Tuple) Cross(other Tuple) Tuple {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// MagnitudeSquared returns the squared magnitude
func (t Tuple) MagnitudeSquared() float64 {
	return t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W
}

// Magnitude returns the length of the tuple
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.MagnitudeSquared())
}

// Normalize returns a unit tuple in the same direction.
// A zero-length input yields ErrZeroLength instead of NaN components.
func (t Tuple) Normalize() (Tuple, error) {
	length := t.Magnitude()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Tuple{}, ErrZeroLength
	}
	return t.Divide(length), nil
}

// Reflect reflects the tuple around the normal: in - 2*dot(in, n)*n
func (t Tuple) Reflect(normal Tuple) Tuple {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// Equal compares two tuples component-wise within Epsilon
func (t Tuple) Equal(other Tuple) bool {
	return FloatEqual(t.X, other.X) &&
		FloatEqual(t.Y, other.Y) &&
		FloatEqual(t.Z, other.Z) &&
		FloatEqual(t.W, other.W)
}
