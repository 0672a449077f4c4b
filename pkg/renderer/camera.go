package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/matrix"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Camera is a pinhole camera one unit in front of a virtual canvas.
// The canvas spans fieldOfView across its longer side.
type Camera struct {
	hsize       int
	vsize       int
	fieldOfView float64 // radians

	transform matrix.Matrix // world-from-camera
	inverse   matrix.Matrix

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera at the origin looking down -z. fieldOfView is
// in radians.
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	if hsize <= 0 || vsize <= 0 {
		panic(fmt.Sprintf("camera: invalid size %dx%d", hsize, vsize))
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   matrix.Identity(),
		inverse:     matrix.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = (c.halfWidth * 2) / float64(hsize)

	return c
}

// NewCameraFromConfig builds a camera sized and oriented by a scene's
// camera config. The config's field of view is in degrees.
func NewCameraFromConfig(cfg scene.CameraConfig) (*Camera, error) {
	c := NewCamera(cfg.Width, cfg.Height, core.Radians(cfg.FieldOfView))
	view, err := matrix.ViewTransform(cfg.From, cfg.To, cfg.Up)
	if err != nil {
		return nil, fmt.Errorf("while orienting camera: %w", err)
	}
	if err := c.SetTransform(view); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTransform sets the camera transform, usually from
// matrix.ViewTransform. A non-invertible transform is rejected and the
// camera keeps its previous transform.
func (c *Camera) SetTransform(m matrix.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("while setting camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// Transform returns the camera transform
func (c *Camera) Transform() matrix.Matrix { return c.transform }

// HSize returns the image width in pixels
func (c *Camera) HSize() int { return c.hsize }

// VSize returns the image height in pixels
func (c *Camera) VSize() int { return c.vsize }

// FieldOfView returns the field of view in radians
func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

// HalfWidth returns half the width of the canvas one unit from the eye
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the height of the canvas one unit from the eye
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// PixelSize returns the world-space size of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// RayForPixel returns the ray from the eye through the center of pixel
// (px, py). Pixel (0, 0) is the top-left corner.
func (c *Camera) RayForPixel(px, py int) (geometry.Ray, error) {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left.
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction, err := pixel.Subtract(origin).Normalize()
	if err != nil {
		return geometry.Ray{}, fmt.Errorf("while computing ray for pixel (%d, %d): %w", px, py, err)
	}
	return geometry.NewRay(origin, direction), nil
}
