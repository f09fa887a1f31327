// Package mat provides construction and extraction helpers around gonum dense
// matrices used by the fitting core.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch    = errors.New("column size mismatch")
	ErrRowMismatch    = errors.New("row size mismatch")
	ErrNotSquare      = errors.New("matrix is not square")
	ErrRowOutOfBounds = errors.New("row is out of bounds")
	ErrColOutOfBounds = errors.New("column is out of bounds")
)

// NewDenseFromArray creates a dense matrix from a slice of rows. All rows must
// have the same length.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// Diagonal extracts the main diagonal of a square matrix into a new slice.
func Diagonal(x mat.Matrix) ([]float64, error) {
	m, n := x.Dims()
	if m != n {
		return nil, fmt.Errorf("got %dx%d, %w", m, n, ErrNotSquare)
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = x.At(i, i)
	}
	return d, nil
}
