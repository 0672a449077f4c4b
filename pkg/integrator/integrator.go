package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator resolves the color seen along a ray
type Integrator interface {
	RayColor(ray geometry.Ray, world *scene.World) (core.Tuple, error)
}

// PhongIntegrator shades the nearest hit with the Phong model and hard
// shadows. Rays that miss everything are black.
type PhongIntegrator struct{}

// NewPhongIntegrator creates a Phong integrator
func NewPhongIntegrator() *PhongIntegrator {
	return &PhongIntegrator{}
}

// RayColor implements Integrator
func (p *PhongIntegrator) RayColor(ray geometry.Ray, world *scene.World) (core.Tuple, error) {
	return ColorAt(world, ray)
}
