package glcm

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// entropies are the marginal and joint entropies behind the information
// measures of correlation.
type entropies struct {
	hx, hy float64
	// hxy is the entropy of the matrix itself.
	hxy float64
	// hxy1 is -Σ p(i,j)·ln(p_x(i)·p_y(j)).
	hxy1 float64
	// hxy2 is -Σ p_x(i)·p_y(j)·ln(p_x(i)·p_y(j)).
	hxy2 float64
}

func newEntropies(s *stats) *entropies {
	mg := s.marginals
	e := &entropies{
		hx:  entropyOf(mg.RowDist),
		hy:  entropyOf(mg.ColDist),
		hxy: entropy(s),
	}
	for i, px := range mg.RowDist {
		if px == 0 {
			continue
		}
		for j, py := range mg.ColDist {
			q := px * py
			if !(q > 0) {
				continue
			}
			lq := math.Log(q)
			e.hxy1 -= s.m.At(i, j) * lq
			e.hxy2 -= q * lq
		}
	}
	return e
}

// information returns the entropies of s, computing them on first use.
func (s *stats) information() *entropies {
	if s.info == nil {
		s.info = newEntropies(s)
	}
	return s.info
}

func autoCorrelation(s *stats) float64 {
	var v float64
	s.m.each(func(a, b int, p float64) {
		v += float64(a) * float64(b) * p
	})
	return v
}

// informationCorrelation1 is (HXY - HXY1) / max(HX, HY), NaN when both
// marginal entropies are zero.
func informationCorrelation1(s *stats) float64 {
	if s.m.Degenerate() {
		return math.NaN()
	}
	e := s.information()
	h := math.Max(e.hx, e.hy)
	if h == 0 {
		return math.NaN()
	}
	return (e.hxy - e.hxy1) / h
}

// informationCorrelation2 is sqrt(1 - exp(-2·(HXY2 - HXY))), NaN when the
// matrix has a single occupied cell.
func informationCorrelation2(s *stats) float64 {
	if s.m.Degenerate() {
		return math.NaN()
	}
	e := s.information()
	if e.hxy == 0 {
		return math.NaN()
	}
	// HXY2 >= HXY holds exactly; rounding may push the difference below zero.
	d := math.Max(e.hxy2-e.hxy, 0)
	return math.Sqrt(1 - math.Exp(-2*d))
}

// maximalCorrelation returns the second largest eigenvalue of
// Q(i,j) = Σ_k p(i,k)·p(j,k) / (p_x(i)·p_y(k)). The value is not
// square-rooted. Q is built over the occupied gray levels only; the levels
// left out contribute zero rows and columns and so only zero eigenvalues.
// Fewer than two occupied levels yield NaN.
func maximalCorrelation(s *stats) float64 {
	if s.m.Degenerate() {
		return math.NaN()
	}
	mg := s.marginals
	var levels []int
	for i, px := range mg.RowDist {
		if px > 0 {
			levels = append(levels, i)
		}
	}
	n := len(levels)
	if n < 2 {
		return math.NaN()
	}

	q := mat.NewDense(n, n, nil)
	for r, i := range levels {
		for c, j := range levels {
			var v float64
			for _, k := range levels {
				d := mg.RowDist[i] * mg.ColDist[k]
				if d == 0 {
					continue
				}
				v += s.m.At(i, k) * s.m.At(j, k) / d
			}
			q.Set(r, c, v)
		}
	}

	var eig mat.Eigen
	if !eig.Factorize(q, mat.EigenNone) {
		return math.NaN()
	}
	values := eig.Values(nil)
	parts := make([]float64, len(values))
	for i, v := range values {
		parts[i] = real(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(parts)))
	return parts[1]
}
