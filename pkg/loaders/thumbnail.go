package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Thumbnail scales c down to fit within maxWidth x maxHeight, keeping its
// aspect ratio. Canvases that already fit are returned at full size.
func Thumbnail(c *core.Canvas, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, ToRGBA(c), resize.Bilinear)
}

// SaveThumbnail writes a thumbnail of c to the named file as a PNG
func SaveThumbnail(filename string, c *core.Canvas, maxWidth, maxHeight uint) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	if err := png.Encode(f, Thumbnail(c, maxWidth, maxHeight)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return f.Close()
}
