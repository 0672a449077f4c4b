package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// PointLight is an infinitely small light source with no falloff
type PointLight struct {
	Position  core.Tuple // Point the light shines from
	Intensity core.Tuple // Color and brightness of the light
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position, intensity core.Tuple) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Type returns the light type
func (l PointLight) Type() LightType {
	return LightTypePoint
}

// DirectionFrom returns the unnormalized vector from p to the light and
// its length.
func (l PointLight) DirectionFrom(p core.Tuple) (core.Tuple, float64) {
	v := l.Position.Subtract(p)
	return v, v.Magnitude()
}
