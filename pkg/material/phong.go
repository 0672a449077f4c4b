package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for out-of-range coefficients
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the Phong reflection coefficients of a surface
type Material struct {
	Color     core.Tuple // Base surface color
	Ambient   float64    // Fraction of light reflected regardless of geometry
	Diffuse   float64    // Matte reflection, scaled by the light angle
	Specular  float64    // Highlight strength
	Shininess float64    // Highlight tightness, larger is smaller
}

// DefaultMaterial returns a white material with conventional coefficients
func DefaultMaterial() Material {
	return Material{
		Color:     core.White,
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200.0,
	}
}

// Validate rejects negative coefficients
func (m Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
	}
	for _, c := range coefficients {
		if c.value < 0 {
			return fmt.Errorf("%w: %s is %g, must be non-negative", ErrInvalidMaterial, c.name, c.value)
		}
	}
	if m.Color.R() < 0 || m.Color.G() < 0 || m.Color.B() < 0 {
		return fmt.Errorf("%w: color %v has a negative channel", ErrInvalidMaterial, m.Color)
	}
	return nil
}
