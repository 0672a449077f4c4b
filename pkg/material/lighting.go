package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Lighting evaluates the Phong reflection model at position for a single
// light. eye and normal must be unit vectors. When inShadow is set only the
// ambient term contributes.
func Lighting(m Material, light lights.PointLight, position, eye, normal core.Tuple, inShadow bool) (core.Tuple, error) {
	effectiveColor := m.Color.Hadamard(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient, nil
	}

	lightDir, err := light.Position.Subtract(position).Normalize()
	if err != nil {
		return core.Tuple{}, fmt.Errorf("while computing light direction: %w", err)
	}

	diffuse := core.Black
	specular := core.Black

	// Negative means the light is on the other side of the surface.
	lightDotNormal := lightDir.Dot(normal)
	if lightDotNormal >= 0 {
		diffuse = effectiveColor.Multiply(m.Diffuse * lightDotNormal)

		reflectDir := lightDir.Negate().Reflect(normal)
		reflectDotEye := reflectDir.Dot(eye)
		if reflectDotEye > 0 {
			factor := math.Pow(reflectDotEye, m.Shininess)
			specular = light.Intensity.Multiply(m.Specular * factor)
		}
	}

	return ambient.Add(diffuse).Add(specular), nil
}
