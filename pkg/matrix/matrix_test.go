package matrix

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var matrixEqual = cmp.Comparer(func(a, b Matrix) bool { return a.Equal(b) })

func TestMatrix_FromRowsAndGet(t *testing.T) {
	m := FromRows(
		[]float64{1, 2, 3, 4},
		[]float64{5.5, 6.5, 7.5, 8.5},
		[]float64{9, 10, 11, 12},
		[]float64{13.5, 14.5, 15.5, 16.5},
	)

	tests := []struct {
		row, col int
		expected float64
	}{
		{0, 0, 1}, {0, 3, 4}, {1, 0, 5.5}, {1, 2, 7.5}, {2, 2, 11}, {3, 0, 13.5}, {3, 2, 15.5},
	}
	for _, tt := range tests {
		if got := m.Get(tt.row, tt.col); got != tt.expected {
			t.Errorf("Get(%d, %d): expected %f, got %f", tt.row, tt.col, tt.expected, got)
		}
	}

	m2 := FromRows([]float64{-3, 5}, []float64{1, -2})
	if m2.Dim() != 2 || m2.Get(1, 1) != -2 {
		t.Errorf("Unexpected 2x2 matrix %v", m2)
	}
}

func TestMatrix_Set(t *testing.T) {
	m := New(3)
	m.Set(1, 2, 7)
	if got := m.Get(1, 2); got != 7 {
		t.Errorf("Expected 7, got %f", got)
	}
}

func TestMatrix_Equal(t *testing.T) {
	a := FromRows([]float64{1, 2}, []float64{3, 4})
	b := FromRows([]float64{1, 2}, []float64{3, 4.001})
	c := FromRows([]float64{1, 2}, []float64{3, 5})

	if !a.Equal(b) {
		t.Errorf("Expected matrices within epsilon to be equal")
	}
	if a.Equal(c) {
		t.Errorf("Expected different matrices to differ")
	}
	if a.Equal(IdentityN(3)) {
		t.Errorf("Expected matrices of different dimension to differ")
	}
}

func TestMatrix_Multiply(t *testing.T) {
	a := FromRows(
		[]float64{1, 2, 3, 4},
		[]float64{5, 6, 7, 8},
		[]float64{9, 8, 7, 6},
		[]float64{5, 4, 3, 2},
	)
	b := FromRows(
		[]float64{-2, 1, 2, 3},
		[]float64{3, 2, 1, -1},
		[]float64{4, 3, 6, 5},
		[]float64{1, 2, 7, 8},
	)
	expected := FromRows(
		[]float64{20, 22, 50, 48},
		[]float64{44, 54, 114, 108},
		[]float64{40, 58, 110, 102},
		[]float64{16, 26, 46, 42},
	)

	if diff := cmp.Diff(expected, a.Multiply(b), matrixEqual); diff != "" {
		t.Errorf("Unexpected product (-want +got):\n%s", diff)
	}
}

func TestMatrix_MultiplyTuple(t *testing.T) {
	a := FromRows(
		[]float64{1, 2, 3, 4},
		[]float64{2, 4, 4, 2},
		[]float64{8, 6, 4, 1},
		[]float64{0, 0, 0, 1},
	)
	got := a.MultiplyTuple(core.Point(1, 2, 3))
	if !got.Equal(core.Point(18, 24, 33)) {
		t.Errorf("Expected (18, 24, 33, 1), got %v", got)
	}
}

func TestMatrix_IdentityLaw(t *testing.T) {
	a := FromRows(
		[]float64{0, 1, 2, 4},
		[]float64{1, 2, 4, 8},
		[]float64{2, 4, 8, 16},
		[]float64{4, 8, 16, 32},
	)
	if got := a.Multiply(Identity()); !got.Equal(a) {
		t.Errorf("Expected A * I = A, got\n%v", got)
	}

	tuple := core.NewTuple(1, 2, 3, 4)
	if got := Identity().MultiplyTuple(tuple); !got.Equal(tuple) {
		t.Errorf("Expected I * t = t, got %v", got)
	}

	for dim := 2; dim <= 4; dim++ {
		m := New(dim)
		for r := 0; r < dim; r++ {
			for c := 0; c < dim; c++ {
				m.Set(r, c, float64(r*dim+c+1))
			}
		}
		if got := m.Multiply(IdentityN(dim)); !got.Equal(m) {
			t.Errorf("Expected identity law for %dx%d", dim, dim)
		}
	}
}

func TestMatrix_Transpose(t *testing.T) {
	a := FromRows(
		[]float64{0, 9, 3, 0},
		[]float64{9, 8, 0, 8},
		[]float64{1, 8, 5, 3},
		[]float64{0, 0, 5, 8},
	)
	expected := FromRows(
		[]float64{0, 9, 1, 0},
		[]float64{9, 8, 8, 0},
		[]float64{3, 0, 5, 5},
		[]float64{0, 8, 3, 8},
	)

	if diff := cmp.Diff(expected, a.Transpose(), matrixEqual); diff != "" {
		t.Errorf("Unexpected transpose (-want +got):\n%s", diff)
	}
	if !a.Transpose().Transpose().Equal(a) {
		t.Errorf("Expected transpose to be an involution")
	}
	if !Identity().Transpose().Equal(Identity()) {
		t.Errorf("Expected transposed identity to be identity")
	}
}

func TestMatrix_MismatchedMultiplyPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(fmt.Sprint(r), "cannot multiply") {
			t.Errorf("Expected dimension panic, got %v", r)
		}
	}()
	IdentityN(3).Multiply(Identity())
}

func TestMatrix_Determinant2x2(t *testing.T) {
	a := FromRows([]float64{1, 5}, []float64{-3, 2})
	if got := a.Determinant(); got != 17 {
		t.Errorf("Expected 17, got %f", got)
	}
}

func TestMatrix_SubMatrix(t *testing.T) {
	a := FromRows(
		[]float64{1, 5, 0},
		[]float64{-3, 2, 7},
		[]float64{0, 6, -3},
	)
	expected := FromRows([]float64{-3, 2}, []float64{0, 6})
	if got := a.SubMatrix(0, 2); !got.Equal(expected) {
		t.Errorf("Expected\n%v\ngot\n%v", expected, got)
	}

	b := FromRows(
		[]float64{-6, 1, 1, 6},
		[]float64{-8, 5, 8, 6},
		[]float64{-1, 0, 8, 2},
		[]float64{-7, 1, -1, 1},
	)
	expected3 := FromRows(
		[]float64{-6, 1, 6},
		[]float64{-8, 8, 6},
		[]float64{-7, -1, 1},
	)
	if got := b.SubMatrix(2, 1); !got.Equal(expected3) {
		t.Errorf("Expected\n%v\ngot\n%v", expected3, got)
	}
}

func TestMatrix_MinorAndCofactor(t *testing.T) {
	a := FromRows(
		[]float64{3, 5, 0},
		[]float64{2, -1, -7},
		[]float64{6, -1, 5},
	)

	if got := a.Minor(1, 0); got != 25 {
		t.Errorf("Expected minor(1,0) = 25, got %f", got)
	}
	if got := a.Minor(0, 0); got != -12 {
		t.Errorf("Expected minor(0,0) = -12, got %f", got)
	}
	if got := a.Cofactor(0, 0); got != -12 {
		t.Errorf("Expected cofactor(0,0) = -12, got %f", got)
	}
	if got := a.Cofactor(1, 0); got != -25 {
		t.Errorf("Expected cofactor(1,0) = -25, got %f", got)
	}
}

func TestMatrix_DeterminantLarger(t *testing.T) {
	tests := []struct {
		name      string
		m         Matrix
		cofactors []float64
		det       float64
	}{
		{
			name: "3x3",
			m: FromRows(
				[]float64{1, 2, 6},
				[]float64{-5, 8, -4},
				[]float64{2, 6, 4},
			),
			cofactors: []float64{56, 12, -46},
			det:       -196,
		},
		{
			name: "4x4",
			m: FromRows(
				[]float64{-2, -8, 3, 5},
				[]float64{-3, 1, 7, 3},
				[]float64{1, 2, -9, 6},
				[]float64{-6, 7, 7, -9},
			),
			cofactors: []float64{690, 447, 210, 51},
			det:       -4071,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for col, want := range tt.cofactors {
				if got := tt.m.Cofactor(0, col); !core.FloatEqual(got, want) {
					t.Errorf("Cofactor(0, %d): expected %f, got %f", col, want, got)
				}
			}
			if got := tt.m.Determinant(); !core.FloatEqual(got, tt.det) {
				t.Errorf("Expected determinant %f, got %f", tt.det, got)
			}
		})
	}
}

func TestMatrix_Invertibility(t *testing.T) {
	invertible := FromRows(
		[]float64{6, 4, 4, 4},
		[]float64{5, 5, 7, 6},
		[]float64{4, -9, 3, -7},
		[]float64{9, 1, 7, -6},
	)
	inv := invertible.Invertibility()
	if !inv.Invertible || !inv.Computed || !core.FloatEqual(inv.Determinant, -2120) {
		t.Errorf("Expected invertible with determinant -2120, got %+v", inv)
	}

	singular := FromRows(
		[]float64{-4, 2, -2, -3},
		[]float64{9, 6, 2, 6},
		[]float64{0, -5, 1, -5},
		[]float64{0, 0, 0, 0},
	)
	if singular.Determinant() != 0 {
		t.Errorf("Expected zero determinant, got %f", singular.Determinant())
	}
	if singular.IsInvertible() {
		t.Errorf("Expected matrix with a zero row to be non-invertible")
	}
}

func TestMatrix_InverseNonInvertible(t *testing.T) {
	singular := FromRows(
		[]float64{1, 2, 3, 4},
		[]float64{0, 0, 0, 0},
		[]float64{5, 6, 7, 8},
		[]float64{9, 1, 2, 3},
	)

	_, err := singular.Inverse()
	if err == nil {
		t.Fatalf("Expected an error inverting a singular matrix")
	}
	if !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Expected errors.Is(err, ErrNotInvertible), got %v", err)
	}
	var nie *NonInvertibleError
	if !errors.As(err, &nie) {
		t.Fatalf("Expected *NonInvertibleError, got %T", err)
	}
	if nie.Dim != 4 || nie.Determinant != 0 {
		t.Errorf("Unexpected error details %+v", nie)
	}

	wrapped := fmt.Errorf("while inverting transform: %w", err)
	if !errors.Is(wrapped, ErrNotInvertible) {
		t.Errorf("Expected wrapped error to match ErrNotInvertible")
	}
}

func TestMatrix_Inverse(t *testing.T) {
	a := FromRows(
		[]float64{-5, 2, 6, -8},
		[]float64{1, -5, 1, 8},
		[]float64{7, 7, -6, -7},
		[]float64{1, -3, 7, 4},
	)
	b, err := a.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := a.Determinant(); got != 532 {
		t.Errorf("Expected determinant 532, got %f", got)
	}
	if got := a.Cofactor(2, 3); got != -160 {
		t.Errorf("Expected cofactor(2,3) = -160, got %f", got)
	}
	if got := b.Get(3, 2); !core.FloatEqual(got, -160.0/532.0) {
		t.Errorf("Expected b[3,2] = -160/532, got %f", got)
	}
	if got := b.Get(2, 3); !core.FloatEqual(got, 105.0/532.0) {
		t.Errorf("Expected b[2,3] = 105/532, got %f", got)
	}

	expected := FromRows(
		[]float64{0.21805, 0.45113, 0.24060, -0.04511},
		[]float64{-0.80827, -1.45677, -0.44361, 0.52068},
		[]float64{-0.07895, -0.22368, -0.05263, 0.19737},
		[]float64{-0.52256, -0.81391, -0.30075, 0.30639},
	)
	if diff := cmp.Diff(expected, b, matrixEqual); diff != "" {
		t.Errorf("Unexpected inverse (-want +got):\n%s", diff)
	}
}

func TestMatrix_InverseProperties(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"4x4", FromRows(
			[]float64{8, -5, 9, 2},
			[]float64{7, 5, 6, 1},
			[]float64{-6, 0, 9, 6},
			[]float64{-3, 0, -9, -4},
		)},
		{"4x4 second", FromRows(
			[]float64{9, 3, 0, 9},
			[]float64{-5, -2, -6, -3},
			[]float64{-4, 9, 6, 4},
			[]float64{-7, 6, 6, 2},
		)},
		{"3x3", FromRows(
			[]float64{1, 2, 6},
			[]float64{-5, 8, -4},
			[]float64{2, 6, 4},
		)},
		{"2x2", FromRows([]float64{4, 7}, []float64{2, 6})},
		{"transform", TranslateScaleRotate(1, 2, 3, 2, 3, 4, 0.3, 0.5, 0.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Inverse()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := tt.m.Multiply(inv); !got.Equal(IdentityN(tt.m.Dim())) {
				t.Errorf("Expected M * inverse(M) = I, got\n%v", got)
			}
			back, err := inv.Inverse()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !back.Equal(tt.m) {
				t.Errorf("Expected inverse(inverse(M)) = M, got\n%v", back)
			}
		})
	}
}

func TestMatrix_ProductTimesInverse(t *testing.T) {
	a := FromRows(
		[]float64{3, -9, 7, 3},
		[]float64{3, -8, 2, -9},
		[]float64{-4, 4, 4, 1},
		[]float64{-6, 5, -1, 1},
	)
	b := FromRows(
		[]float64{8, 2, 2, 2},
		[]float64{3, -1, 7, 0},
		[]float64{7, 0, 5, 4},
		[]float64{6, -2, 0, 5},
	)
	c := a.Multiply(b)
	invB, err := b.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := c.Multiply(invB); !got.Equal(a) {
		t.Errorf("Expected C * inverse(B) = A, got\n%v", got)
	}
}
