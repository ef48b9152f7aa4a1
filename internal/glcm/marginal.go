package glcm

import (
	"gonum.org/v1/gonum/floats"
)

// Marginals are the row, column and diagonal projections of a normalised
// matrix.
type Marginals struct {
	// RowDist[i] is p_x(i), the mass of row i.
	RowDist []float64
	// ColDist[j] is p_y(j), the mass of column j.
	ColDist []float64
	// SumDist[k-2] is p_{x+y}(k) for k in [2, 2·Ng], the mass of the cells
	// whose 1-based row+col equals k.
	SumDist []float64
	// DiffDist[k] is p_{x-y}(k) for k in [0, Ng-1], the mass of the cells
	// with |row-col| == k.
	DiffDist []float64
	// DiffMean is Σ DiffDist / Ng. The divisor is the bin count, not the mass.
	DiffMean float64
}

// NewMarginals projects m onto its rows, columns and sum and difference
// diagonals.
func NewMarginals(m *Matrix) Marginals {
	mg := Marginals{
		RowDist:  make([]float64, GrayLevels),
		ColDist:  make([]float64, GrayLevels),
		SumDist:  make([]float64, 2*GrayLevels-1),
		DiffDist: make([]float64, GrayLevels),
	}
	m.each(func(a, b int, p float64) {
		mg.RowDist[a] += p
		mg.ColDist[b] += p
		// 1-based (a+1)+(b+1) stored at index k-2
		mg.SumDist[a+b] += p
		d := a - b
		if d < 0 {
			d = -d
		}
		mg.DiffDist[d] += p
	})
	mg.DiffMean = floats.Sum(mg.DiffDist) / GrayLevels
	return mg
}
