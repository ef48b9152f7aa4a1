package glcm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a symmetric Ng×Ng co-occurrence matrix together with the pair
// counter used to normalise it. Only the upper triangle is stored.
type Matrix struct {
	sym     *mat.SymDense
	counter float64
}

func newMatrix() *Matrix {
	return &Matrix{sym: mat.NewSymDense(GrayLevels, nil)}
}

// add records one neighbour relation between gray levels a and b. The relation
// touches M[a][b] and M[b][a], so the counter grows by two; on the diagonal
// both touches land in the same cell.
func (m *Matrix) add(a, b int) {
	raw := m.sym.RawSymmetric()
	if a > b {
		a, b = b, a
	}
	if a == b {
		raw.Data[a*raw.Stride+b] += 2
	} else {
		raw.Data[a*raw.Stride+b]++
	}
	m.counter += 2
}

// normalize divides every cell by the counter. A zero counter turns every
// cell into NaN.
func (m *Matrix) normalize() {
	raw := m.sym.RawSymmetric()
	for a := 0; a < raw.N; a++ {
		row := raw.Data[a*raw.Stride+a : a*raw.Stride+raw.N]
		for i := range row {
			row[i] /= m.counter
		}
	}
}

// At returns M[a][b].
func (m *Matrix) At(a, b int) float64 {
	return m.sym.At(a, b)
}

// Counter returns the normalisation divisor accumulated while building.
func (m *Matrix) Counter() float64 {
	return m.counter
}

// Degenerate reports whether no pixel pair contributed to the matrix.
func (m *Matrix) Degenerate() bool {
	return m.counter == 0
}

// Symmetric exposes the matrix as a gonum symmetric matrix. The result shares
// storage with m and must not be modified.
func (m *Matrix) Symmetric() mat.Symmetric {
	return m.sym
}

// each calls fn for every cell of the full matrix, lower triangle included.
func (m *Matrix) each(fn func(a, b int, p float64)) {
	raw := m.sym.RawSymmetric()
	for a := 0; a < raw.N; a++ {
		fn(a, a, raw.Data[a*raw.Stride+a])
		for b := a + 1; b < raw.N; b++ {
			p := raw.Data[a*raw.Stride+b]
			fn(a, b, p)
			fn(b, a, p)
		}
	}
}

// Sum adds up every cell; about 1 after normalisation.
func (m *Matrix) Sum() float64 {
	var sum float64
	m.each(func(_, _ int, p float64) {
		sum += p
	})
	return sum
}

// Max returns the largest cell, NaN for a degenerate matrix.
func (m *Matrix) Max() float64 {
	if m.Degenerate() {
		return math.NaN()
	}
	raw := m.sym.RawSymmetric()
	return floats.Max(raw.Data)
}
