// Package matrix implements small square matrices (2x2 up to 4x4) and the
// affine transforms used to position shapes and cameras.
package matrix

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const maxDim = 4

// Matrix is a row-major square matrix. The zero value is an empty 0x0
// matrix; use New, FromRows or Identity.
type Matrix struct {
	dim int
	e   [maxDim][maxDim]float64
}

// New creates a zero matrix of the given dimension
func New(dim int) Matrix {
	if dim < 1 || dim > maxDim {
		panic(fmt.Sprintf("matrix: unsupported dimension %d", dim))
	}
	return Matrix{dim: dim}
}

// FromRows builds a matrix from equally sized rows
func FromRows(rows ...[]float64) Matrix {
	m := New(len(rows))
	for r, row := range rows {
		if len(row) != m.dim {
			panic(fmt.Sprintf("matrix: row %d has %d columns, want %d", r, len(row), m.dim))
		}
		copy(m.e[r][:m.dim], row)
	}
	return m
}

// FromTuples builds a 4x4 matrix whose rows are the given tuples
func FromTuples(r0, r1, r2, r3 core.Tuple) Matrix {
	return FromRows(
		[]float64{r0.X, r0.Y, r0.Z, r0.W},
		[]float64{r1.X, r1.Y, r1.Z, r1.W},
		[]float64{r2.X, r2.Y, r2.Z, r2.W},
		[]float64{r3.X, r3.Y, r3.Z, r3.W},
	)
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return IdentityN(4)
}

// IdentityN returns the identity matrix of the given dimension
func IdentityN(dim int) Matrix {
	m := New(dim)
	for i := 0; i < dim; i++ {
		m.e[i][i] = 1
	}
	return m
}

// Dim returns the declared dimension
func (m Matrix) Dim() int {
	return m.dim
}

// Get returns the element at (row, col)
func (m Matrix) Get(row, col int) float64 {
	m.checkIndex(row, col)
	return m.e[row][col]
}

// Set stores value at (row, col)
func (m *Matrix) Set(row, col int, value float64) {
	m.checkIndex(row, col)
	m.e[row][col] = value
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix) Transpose() Matrix {
	t := New(m.dim)
	for r := 0; r < m.dim; r++ {
		for c := 0; c < m.dim; c++ {
			t.e[c][r] = m.e[r][c]
		}
	}
	return t
}

// Multiply returns the matrix product m * other
func (m Matrix) Multiply(other Matrix) Matrix {
	if m.dim != other.dim {
		panic(fmt.Sprintf("matrix: cannot multiply %dx%d by %dx%d", m.dim, m.dim, other.dim, other.dim))
	}
	result := New(m.dim)
	for i := 0; i < m.dim; i++ {
		for j := 0; j < m.dim; j++ {
			for k := 0; k < m.dim; k++ {
				result.e[i][j] += m.e[i][k] * other.e[k][j]
			}
		}
	}
	return result
}

// MultiplyTuple returns the product of a 4x4 matrix and a tuple
func (m Matrix) MultiplyTuple(t core.Tuple) core.Tuple {
	if m.dim != 4 {
		panic(fmt.Sprintf("matrix: cannot multiply %dx%d by a tuple", m.dim, m.dim))
	}
	row := func(r int) float64 {
		return m.e[r][0]*t.X + m.e[r][1]*t.Y + m.e[r][2]*t.Z + m.e[r][3]*t.W
	}
	return core.NewTuple(row(0), row(1), row(2), row(3))
}

// Equal compares two matrices element-wise within core.Epsilon
func (m Matrix) Equal(other Matrix) bool {
	if m.dim != other.dim {
		return false
	}
	for r := 0; r < m.dim; r++ {
		for c := 0; c < m.dim; c++ {
			if !core.FloatEqual(m.e[r][c], other.e[r][c]) {
				return false
			}
		}
	}
	return true
}

// String formats the matrix one row per line
func (m Matrix) String() string {
	s := ""
	for r := 0; r < m.dim; r++ {
		s += "|"
		for c := 0; c < m.dim; c++ {
			s += fmt.Sprintf(" %9.5f |", m.e[r][c])
		}
		if r < m.dim-1 {
			s += "\n"
		}
	}
	return s
}

func (m Matrix) checkIndex(row, col int) {
	if row < 0 || row >= m.dim || col < 0 || col >= m.dim {
		panic(fmt.Sprintf("matrix: index (%d, %d) outside %dx%d", row, col, m.dim, m.dim))
	}
}
