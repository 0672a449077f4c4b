package matrix

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// ErrNotInvertible matches any *NonInvertibleError via errors.Is
var ErrNotInvertible = errors.New("matrix is not invertible")

// NonInvertibleError is returned by Inverse for singular matrices
type NonInvertibleError struct {
	Dim         int
	Determinant float64

	frame xerrors.Frame
}

func newNonInvertibleError(dim int, det float64) *NonInvertibleError {
	return &NonInvertibleError{
		Dim:         dim,
		Determinant: det,
		frame:       xerrors.Caller(2),
	}
}

func (e *NonInvertibleError) Error() string {
	return fmt.Sprintf("%dx%d matrix is not invertible (determinant %g)", e.Dim, e.Dim, e.Determinant)
}

func (e *NonInvertibleError) Is(target error) bool {
	return target == ErrNotInvertible
}

func (e *NonInvertibleError) Format(f fmt.State, c rune) { // implements fmt.Formatter
	xerrors.FormatError(e, f, c)
}

func (e *NonInvertibleError) FormatError(p xerrors.Printer) error { // implements xerrors.Formatter
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}
