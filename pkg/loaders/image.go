package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadImage loads a PNG or JPEG image into a canvas
func LoadImage(filename string) (*core.Canvas, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image to a canvas with channels in [0, 1]
func FromImage(img image.Image) *core.Canvas {
	bounds := img.Bounds()
	c := core.NewCanvas(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			c.WritePixel(x, y, core.Color(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}
	return c
}

// ToRGBA converts a canvas to an opaque 8-bit image. Channels are clamped
// to [0, 1] the same way as PPM output.
func ToRGBA(c *core.Canvas) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			p := c.PixelAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(scaleChannel(p.R(), 255)),
				G: uint8(scaleChannel(p.G(), 255)),
				B: uint8(scaleChannel(p.B(), 255)),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes c as a PNG
func WritePNG(w io.Writer, c *core.Canvas) error {
	if err := png.Encode(w, ToRGBA(c)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes c to the named file as a PNG
func SavePNG(filename string, c *core.Canvas) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	if err := WritePNG(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
