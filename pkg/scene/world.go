// Package scene holds the world being rendered and the built-in scene
// presets.
package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// World owns the shapes and lights of a scene. Shapes are referenced
// elsewhere by the ShapeID returned from AddShape. A world must not be
// modified once rendering starts.
type World struct {
	shapes []*geometry.Shape
	lights []lights.PointLight
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		shapes: make([]*geometry.Shape, 0),
		lights: make([]lights.PointLight, 0),
	}
}

// AddShape takes ownership of s and returns its handle
func (w *World) AddShape(s *geometry.Shape) geometry.ShapeID {
	w.shapes = append(w.shapes, s)
	return geometry.ShapeID(len(w.shapes) - 1)
}

// AddLight adds a point light
func (w *World) AddLight(l lights.PointLight) {
	w.lights = append(w.lights, l)
}

// Shape resolves a handle returned by AddShape
func (w *World) Shape(id geometry.ShapeID) *geometry.Shape {
	if int(id) < 0 || int(id) >= len(w.shapes) {
		panic(fmt.Sprintf("scene: shape id %d outside world of %d shapes", id, len(w.shapes)))
	}
	return w.shapes[id]
}

// Shapes returns the shapes in insertion order. The slice index is the
// shape's ShapeID.
func (w *World) Shapes() []*geometry.Shape {
	return w.shapes
}

// Lights returns the lights in insertion order
func (w *World) Lights() []lights.PointLight {
	return w.lights
}

// Intersect gathers the intersections of ray with every shape, in shape
// insertion order. The result is not sorted.
func (w *World) Intersect(ray geometry.Ray) (geometry.Intersections, error) {
	var xs geometry.Intersections
	for i, s := range w.shapes {
		hits, err := geometry.Intersect(geometry.ShapeID(i), s, ray)
		if err != nil {
			return nil, fmt.Errorf("while intersecting shape %d: %w", i, err)
		}
		xs = xs.Append(hits...)
	}
	return xs, nil
}

// Validate checks the geometry and material of every shape
func (w *World) Validate() error {
	for i, s := range w.shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}
