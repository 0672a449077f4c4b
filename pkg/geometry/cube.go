package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// cubeNormalAt picks the face whose axis has the largest magnitude. Edges
// and corners resolve to x, then y, then z.
func cubeNormalAt(p core.Tuple) core.Tuple {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(p.X, 0, 0)
	case ay:
		return core.Vector(0, p.Y, 0)
	default:
		return core.Vector(0, 0, p.Z)
	}
}
