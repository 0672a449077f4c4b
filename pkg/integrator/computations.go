package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ShadowBias is how far OverPoint sits above the surface along the normal
const ShadowBias = 1e-5

// Computations holds the values derived from a hit that shading needs.
// It references the shape through the world and must not outlive it.
type Computations struct {
	T         float64          // Ray parameter of the hit
	Shape     geometry.ShapeID // Handle of the shape hit
	Object    *geometry.Shape  // Shape hit, resolved from the world
	Point     core.Tuple       // World-space hit point
	OverPoint core.Tuple       // Point nudged along Normal, used as the shadow ray origin
	Eye       core.Tuple       // Vector pointing back toward the ray origin
	Normal    core.Tuple       // Unit surface normal, flipped to face the eye
	Inside    bool             // Whether the ray started inside the shape
}

// PrepareComputations derives the shading inputs for hit along r
func PrepareComputations(w *scene.World, hit geometry.Intersection, r geometry.Ray) (Computations, error) {
	shape := w.Shape(hit.Shape)
	point := r.Position(hit.T)

	normal, err := shape.NormalAt(point)
	if err != nil {
		return Computations{}, fmt.Errorf("while preparing hit on shape %d: %w", hit.Shape, err)
	}

	comps := Computations{
		T:      hit.T,
		Shape:  hit.Shape,
		Object: shape,
		Point:  point,
		Eye:    r.Direction.Negate(),
		Normal: normal,
	}
	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}
	comps.OverPoint = comps.Point.Add(comps.Normal.Multiply(ShadowBias))
	return comps, nil
}
