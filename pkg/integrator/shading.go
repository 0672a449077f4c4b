package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// IsShadowedFrom reports whether any shape lies strictly between p and
// light.
func IsShadowedFrom(w *scene.World, light lights.PointLight, p core.Tuple) (bool, error) {
	v, distance := light.DirectionFrom(p)
	direction, err := v.Normalize()
	if err != nil {
		return false, fmt.Errorf("while casting shadow ray from %v: %w", p, err)
	}

	xs, err := w.Intersect(geometry.NewRay(p, direction))
	if err != nil {
		return false, fmt.Errorf("while casting shadow ray from %v: %w", p, err)
	}
	hit, ok := geometry.Hit(xs)
	return ok && hit.T > 0 && hit.T < distance, nil
}

// IsShadowed reports whether p is hidden from at least one light
func IsShadowed(w *scene.World, p core.Tuple) (bool, error) {
	for _, light := range w.Lights() {
		shadowed, err := IsShadowedFrom(w, light, p)
		if err != nil {
			return false, err
		}
		if shadowed {
			return true, nil
		}
	}
	return false, nil
}

// ShadeHit sums the Phong contribution of every light at the prepared hit.
// Shadow rays start at OverPoint.
func ShadeHit(w *scene.World, comps Computations) (core.Tuple, error) {
	m := comps.Object.Material
	color := core.Black
	for i, light := range w.Lights() {
		shadowed, err := IsShadowedFrom(w, light, comps.OverPoint)
		if err != nil {
			return core.Tuple{}, fmt.Errorf("while shading light %d: %w", i, err)
		}
		c, err := material.Lighting(m, light, comps.Point, comps.Eye, comps.Normal, shadowed)
		if err != nil {
			return core.Tuple{}, fmt.Errorf("while shading light %d: %w", i, err)
		}
		color = color.Add(c)
	}
	return color, nil
}

// ColorAt returns the color seen along r, black when nothing is hit
func ColorAt(w *scene.World, r geometry.Ray) (core.Tuple, error) {
	xs, err := w.Intersect(r)
	if err != nil {
		return core.Tuple{}, err
	}
	hit, ok := geometry.Hit(xs)
	if !ok {
		return core.Black, nil
	}
	comps, err := PrepareComputations(w, hit, r)
	if err != nil {
		return core.Tuple{}, err
	}
	return ShadeHit(w, comps)
}
