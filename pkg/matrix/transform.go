package matrix

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Translation moves points by (x, y, z) and leaves vectors alone
func Translation(x, y, z float64) Matrix {
	return FromRows(
		[]float64{1, 0, 0, x},
		[]float64{0, 1, 0, y},
		[]float64{0, 0, 1, z},
		[]float64{0, 0, 0, 1},
	)
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Matrix {
	return FromRows(
		[]float64{x, 0, 0, 0},
		[]float64{0, y, 0, 0},
		[]float64{0, 0, z, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateX rotates around the x axis by angle radians (right-handed)
func RotateX(angle float64) Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	return FromRows(
		[]float64{1, 0, 0, 0},
		[]float64{0, c, -s, 0},
		[]float64{0, s, c, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateY rotates around the y axis by angle radians (right-handed)
func RotateY(angle float64) Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	return FromRows(
		[]float64{c, 0, s, 0},
		[]float64{0, 1, 0, 0},
		[]float64{-s, 0, c, 0},
		[]float64{0, 0, 0, 1},
	)
}

// RotateZ rotates around the z axis by angle radians (right-handed)
func RotateZ(angle float64) Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	return FromRows(
		[]float64{c, -s, 0, 0},
		[]float64{s, c, 0, 0},
		[]float64{0, 0, 1, 0},
		[]float64{0, 0, 0, 1},
	)
}

// Shearing moves each component in proportion to the other two.
// xy is the amount x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return FromRows(
		[]float64{1, xy, xz, 0},
		[]float64{yx, 1, yz, 0},
		[]float64{zx, zy, 1, 0},
		[]float64{0, 0, 0, 1},
	)
}

// TranslateScaleRotate composes translation * scaling * rotation, so the
// rotation (x, then y, then z) is applied first and the translation last.
func TranslateScaleRotate(transX, transY, transZ, scaleX, scaleY, scaleZ, alphaX, alphaY, alphaZ float64) Matrix {
	rotation := RotateZ(alphaZ).Multiply(RotateY(alphaY)).Multiply(RotateX(alphaX))
	return Translation(transX, transY, transZ).
		Multiply(Scaling(scaleX, scaleY, scaleZ)).
		Multiply(rotation)
}

// ViewTransform orients the world relative to an eye at from looking at to.
// It fails when from and to coincide or up is parallel to the view
// direction.
func ViewTransform(from, to, up core.Tuple) (Matrix, error) {
	forward, err := from.Subtract(to).Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("while computing view direction: %w", err)
	}
	upn, err := up.Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("while normalizing up vector: %w", err)
	}
	left, err := upn.Cross(forward).Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("while computing left vector: %w", err)
	}
	trueUp := forward.Cross(left)

	orientation := FromTuples(
		core.Vector(left.X, left.Y, left.Z),
		core.Vector(trueUp.X, trueUp.Y, trueUp.Z),
		core.Vector(forward.X, forward.Y, forward.Z),
		core.NewTuple(0, 0, 0, 1),
	)
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z)), nil
}
