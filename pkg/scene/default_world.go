package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/matrix"
)

// DefaultWorld creates two concentric spheres lit by a white light at
// (-10, 10, -10). The outer sphere is a unit sphere colored (0.8, 1.0, 0.6)
// and the inner sphere is scaled by 0.5.
func DefaultWorld() *World {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	outer := geometry.NewSphere()
	outer.Material.Color = core.Color(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2
	w.AddShape(outer)

	inner := geometry.NewSphere()
	mustSetTransform(inner, matrix.Scaling(0.5, 0.5, 0.5))
	w.AddShape(inner)

	return w
}

// mustSetTransform is for built-in scenes whose transforms are known to be
// invertible.
func mustSetTransform(s *geometry.Shape, m matrix.Matrix) *geometry.Shape {
	if err := s.SetTransform(m); err != nil {
		panic(err)
	}
	return s
}
