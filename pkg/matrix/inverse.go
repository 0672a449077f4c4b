package matrix

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Invertibility reports whether a matrix can be inverted and the
// determinant that decided it.
type Invertibility struct {
	Invertible  bool
	Computed    bool
	Determinant float64
}

// Determinant computes the determinant by cofactor expansion along the
// first row.
func (m Matrix) Determinant() float64 {
	switch m.dim {
	case 1:
		return m.e[0][0]
	case 2:
		return m.e[0][0]*m.e[1][1] - m.e[0][1]*m.e[1][0]
	case 3, 4:
		det := 0.0
		for col := 0; col < m.dim; col++ {
			det += m.e[0][col] * m.Cofactor(0, col)
		}
		return det
	default:
		panic(fmt.Sprintf("matrix: no determinant for dimension %d", m.dim))
	}
}

// SubMatrix returns a copy with the given row and column removed
func (m Matrix) SubMatrix(removeRow, removeCol int) Matrix {
	m.checkIndex(removeRow, removeCol)
	if m.dim < 2 {
		panic("matrix: cannot take a submatrix of a 1x1 matrix")
	}
	sub := New(m.dim - 1)
	sr := 0
	for r := 0; r < m.dim; r++ {
		if r == removeRow {
			continue
		}
		sc := 0
		for c := 0; c < m.dim; c++ {
			if c == removeCol {
				continue
			}
			sub.e[sr][sc] = m.e[r][c]
			sc++
		}
		sr++
	}
	return sub
}

// Minor is the determinant of the submatrix without row and col
func (m Matrix) Minor(row, col int) float64 {
	return m.SubMatrix(row, col).Determinant()
}

// Cofactor is the minor with its sign flipped when row+col is odd
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Invertibility computes the determinant and whether it is far enough
// from zero to invert the matrix.
func (m Matrix) Invertibility() Invertibility {
	det := m.Determinant()
	return Invertibility{
		Invertible:  math.Abs(det) > core.Epsilon,
		Computed:    true,
		Determinant: det,
	}
}

// IsInvertible reports whether Inverse would succeed
func (m Matrix) IsInvertible() bool {
	return m.Invertibility().Invertible
}

// Inverse computes the inverse as the transposed cofactor matrix divided by
// the determinant. A *NonInvertibleError is returned when the determinant
// is within core.Epsilon of zero.
func (m Matrix) Inverse() (Matrix, error) {
	inv := m.Invertibility()
	if !inv.Invertible {
		return Matrix{}, newNonInvertibleError(m.dim, inv.Determinant)
	}

	result := New(m.dim)
	if m.dim == 1 {
		result.e[0][0] = 1 / inv.Determinant
		return result, nil
	}
	for r := 0; r < m.dim; r++ {
		for c := 0; c < m.dim; c++ {
			// Writing to [c][r] transposes the cofactor matrix.
			result.e[c][r] = m.Cofactor(r, c) / inv.Determinant
		}
	}
	return result, nil
}
