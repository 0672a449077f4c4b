package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/matrix"
)

// ErrInvalidGeometry is returned by Validate for a missing geometry or a
// non-positive size
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry is the closed set of shape kinds. Only types in this package
// implement it.
type Geometry interface {
	isGeometry()
}

// Sphere is a sphere centered on the local origin
type Sphere struct {
	Radius float64
}

// Cube is an axis-aligned cube centered on the local origin, spanning
// [-HalfExtent, HalfExtent] on every axis
type Cube struct {
	HalfExtent float64
}

func (Sphere) isGeometry() {}
func (Cube) isGeometry()   {}

// Shape is a geometry placed in the world by a transform and shaded with a
// material. Use SetTransform so the cached inverses stay in sync.
type Shape struct {
	Geometry Geometry
	Material material.Material

	transform        matrix.Matrix
	inverse          matrix.Matrix
	inverseTranspose matrix.Matrix
}

// NewShape creates a shape with the identity transform and default material
func NewShape(g Geometry) *Shape {
	return &Shape{
		Geometry:         g,
		Material:         material.DefaultMaterial(),
		transform:        matrix.Identity(),
		inverse:          matrix.Identity(),
		inverseTranspose: matrix.Identity(),
	}
}

// NewSphere creates a unit sphere
func NewSphere() *Shape {
	return NewShape(Sphere{Radius: 1})
}

// NewCube creates a cube with half-extent 1
func NewCube() *Shape {
	return NewShape(Cube{HalfExtent: 1})
}

// Validate checks the geometry size and the material
func (s *Shape) Validate() error {
	switch g := s.Geometry.(type) {
	case Sphere:
		if !(g.Radius > 0) {
			return fmt.Errorf("%w: sphere radius is %g, must be positive", ErrInvalidGeometry, g.Radius)
		}
	case Cube:
		if !(g.HalfExtent > 0) {
			return fmt.Errorf("%w: cube half-extent is %g, must be positive", ErrInvalidGeometry, g.HalfExtent)
		}
	case nil:
		return fmt.Errorf("%w: shape has no geometry", ErrInvalidGeometry)
	}
	return s.Material.Validate()
}

// SetTransform sets the world-from-object transform. A non-invertible
// transform is rejected and the shape keeps its previous transform.
func (s *Shape) SetTransform(m matrix.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("while setting shape transform: %w", err)
	}
	s.transform = m
	s.inverse = inv
	s.inverseTranspose = inv.Transpose()
	return nil
}

// Transform returns the world-from-object transform
func (s *Shape) Transform() matrix.Matrix {
	if s.transform.Dim() == 0 {
		return matrix.Identity()
	}
	return s.transform
}

// Inverse returns the object-from-world transform
func (s *Shape) Inverse() matrix.Matrix {
	if s.inverse.Dim() == 0 {
		return matrix.Identity()
	}
	return s.inverse
}

func (s *Shape) normalTransform() matrix.Matrix {
	if s.inverseTranspose.Dim() == 0 {
		return matrix.Identity()
	}
	return s.inverseTranspose
}

// NormalAt returns the unit world-space surface normal at world point p
func (s *Shape) NormalAt(p core.Tuple) (core.Tuple, error) {
	localPoint := s.Inverse().MultiplyTuple(p)
	localNormal := localNormalAt(s.Geometry, localPoint)
	worldNormal := s.normalTransform().MultiplyTuple(localNormal)
	worldNormal.W = 0

	n, err := worldNormal.Normalize()
	if err != nil {
		return core.Tuple{}, fmt.Errorf("while computing normal at %v: %w", p, err)
	}
	return n, nil
}

func localNormalAt(g Geometry, p core.Tuple) core.Tuple {
	switch g := g.(type) {
	case Sphere:
		return p.Subtract(core.Point(0, 0, 0))
	case Cube:
		return cubeNormalAt(p)
	default:
		panic(fmt.Sprintf("geometry: unknown geometry %T", g))
	}
}
