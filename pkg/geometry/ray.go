package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/matrix"
)

// Ray is a half-line from Origin along Direction. Direction need not be
// unit length.
type Ray struct {
	Origin    core.Tuple
	Direction core.Tuple
}

// NewRay creates a ray from an origin point and a direction vector
func NewRay(origin, direction core.Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// DefaultRay starts at the origin and points down +x
func DefaultRay() Ray {
	return NewRay(core.Point(0, 0, 0), core.Vector(1, 0, 0))
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) core.Tuple {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform applies m to both origin and direction
func (r Ray) Transform(m matrix.Matrix) Ray {
	return Ray{
		Origin:    m.MultiplyTuple(r.Origin),
		Direction: m.MultiplyTuple(r.Direction),
	}
}
