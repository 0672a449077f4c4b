package core

import "fmt"

// Canvas is a 2D grid of colors produced by rendering
type Canvas struct {
	width  int
	height int
	pixels []Tuple
}

// NewCanvas creates a black canvas of the given size
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("canvas: invalid size %dx%d", width, height))
	}
	pixels := make([]Tuple, width*height)
	for i := range pixels {
		pixels[i] = Black
	}
	return &Canvas{width: width, height: height, pixels: pixels}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// WritePixel stores a color at (x, y)
func (c *Canvas) WritePixel(x, y int, color Tuple) {
	c.pixels[c.index(x, y)] = color
}

// PixelAt returns the color stored at (x, y)
func (c *Canvas) PixelAt(x, y int) Tuple {
	return c.pixels[c.index(x, y)]
}

func (c *Canvas) index(x, y int) int {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic(fmt.Sprintf("canvas: pixel (%d, %d) outside %dx%d", x, y, c.width, c.height))
	}
	return y*c.width + x
}
