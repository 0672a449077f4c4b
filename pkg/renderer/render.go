package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Render shades every pixel of cam's image in order on the calling
// goroutine and stops at the first failing pixel.
func Render(cam *Camera, w *scene.World) (*core.Canvas, error) {
	canvas := core.NewCanvas(cam.HSize(), cam.VSize())
	for y := 0; y < cam.VSize(); y++ {
		for x := 0; x < cam.HSize(); x++ {
			ray, err := cam.RayForPixel(x, y)
			if err != nil {
				return nil, err
			}
			color, err := integrator.ColorAt(w, ray)
			if err != nil {
				return nil, fmt.Errorf("while rendering pixel (%d, %d): %w", x, y, err)
			}
			canvas.WritePixel(x, y, color)
		}
	}
	return canvas, nil
}
