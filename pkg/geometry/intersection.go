package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrDegenerateRay is returned when a ray with a zero direction is
// intersected
var ErrDegenerateRay = errors.New("ray direction has zero length")

// ShapeID is a stable handle to a shape owned by a scene
type ShapeID int

// Intersection records where along a ray a shape was crossed
type Intersection struct {
	T     float64
	Shape ShapeID
}

// Intersections is an unordered collection of intersections
type Intersections []Intersection

// NewIntersections collects the given intersections
func NewIntersections(xs ...Intersection) Intersections {
	return Intersections(xs)
}

// Append returns xs with more added at the end
func (xs Intersections) Append(more ...Intersection) Intersections {
	return append(xs, more...)
}

// Count returns the number of intersections
func (xs Intersections) Count() int {
	return len(xs)
}

// Hit returns the intersection with the smallest non-negative t. Ties keep
// the earliest entry. ok is false when no such intersection exists.
func Hit(xs Intersections) (hit Intersection, ok bool) {
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !ok || x.T < hit.T {
			hit = x
			ok = true
		}
	}
	return hit, ok
}

// Intersect computes every crossing of ray with shape, tagging each with
// id. Both roots are returned even when negative.
func Intersect(id ShapeID, shape *Shape, ray Ray) (Intersections, error) {
	if ray.Direction.MagnitudeSquared() == 0 {
		return nil, ErrDegenerateRay
	}
	local := ray.Transform(shape.Inverse())

	var t1, t2 float64
	var ok bool
	switch g := shape.Geometry.(type) {
	case Sphere:
		t1, t2, ok = intersectSphere(g, local)
	case Cube:
		t1, t2, ok = intersectCube(g, local)
	default:
		panic(fmt.Sprintf("geometry: unknown geometry %T", g))
	}
	if !ok {
		return nil, nil
	}
	return NewIntersections(Intersection{T: t1, Shape: id}, Intersection{T: t2, Shape: id}), nil
}

func intersectSphere(s Sphere, local Ray) (float64, float64, bool) {
	sphereToRay := local.Origin.Subtract(core.Point(0, 0, 0))

	a := local.Direction.Dot(local.Direction)
	b := 2 * local.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return t1, t2, true
}

func intersectCube(c Cube, local Ray) (float64, float64, bool) {
	origin := [3]float64{local.Origin.X, local.Origin.Y, local.Origin.Z}
	dir := [3]float64{local.Direction.X, local.Direction.Y, local.Direction.Z}

	tMin, tMax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		lo, hi, ok := slab(origin[axis], dir[axis], c.HalfExtent)
		if !ok {
			return 0, 0, false
		}
		if lo > tMin {
			tMin = lo
		}
		if hi < tMax {
			tMax = hi
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// slab returns the parameter span where a 1D ray lies within
// [-halfExtent, halfExtent].
func slab(origin, dir, halfExtent float64) (float64, float64, bool) {
	if dir == 0 {
		if origin < -halfExtent || origin > halfExtent {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	lo := (-halfExtent - origin) / dir
	hi := (halfExtent - origin) / dir
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}
