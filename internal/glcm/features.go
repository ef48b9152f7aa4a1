package glcm

import (
	"math"
)

// Moments are the weighted row/column means and second moments of a matrix.
// StdDevX and StdDevY are variances: they are never square-rooted, and
// Correlation divides by their product as is.
type Moments struct {
	MeanX   float64
	MeanY   float64
	StdDevX float64
	StdDevY float64
}

// NewMoments computes the moments of a normalised matrix.
func NewMoments(m *Matrix) Moments {
	var mo Moments
	m.each(func(a, b int, p float64) {
		mo.MeanX += float64(a) * p
		mo.MeanY += float64(b) * p
	})
	m.each(func(a, b int, p float64) {
		dx := float64(a) - mo.MeanX
		dy := float64(b) - mo.MeanY
		mo.StdDevX += dx * dx * p
		mo.StdDevY += dy * dy * p
	})
	return mo
}

// stats bundles everything a feature reducer may read for one direction.
type stats struct {
	m          *Matrix
	moments    Moments
	marginals  Marginals
	sumEntropy float64
	info       *entropies
}

func newStats(m *Matrix) *stats {
	s := &stats{
		m:         m,
		moments:   NewMoments(m),
		marginals: NewMarginals(m),
	}
	// SumVariance depends on it, so it is computed whether or not it is shown.
	s.sumEntropy = entropyOf(s.marginals.SumDist)
	return s
}

// entropyOf returns -Σ p·ln(p) over the non-zero entries of dist.
func entropyOf(dist []float64) float64 {
	var h float64
	for _, p := range dist {
		if p != 0 {
			h -= p * math.Log(p)
		}
	}
	return h
}

type reducer func(s *stats) float64

// calculators is indexed by Feature.
var calculators = [featureCount]struct {
	column string
	reduce reducer
}{
	ASM:               {ColASM, angularSecondMoment},
	Contrast:          {ColContrast, contrast},
	Correlation:       {ColCorrelation, correlation},
	IDM:               {ColIDM, inverseDifferenceMoment},
	Entropy:           {ColEntropy, entropy},
	Dissimilarity:     {ColDissimilarity, dissimilarity},
	INV:               {ColINV, inverseDifference},
	Variance:          {ColVariance, variance},
	ClusterShade:      {ColClusterShade, clusterShade},
	ClusterProminence: {ColClusterProminence, clusterProminence},
	INN:               {ColINN, inverseDifferenceNormalized},
	IDN:               {ColIDN, inverseDifferenceNormalized},
	MaxProb:           {ColMaxProb, maxProbability},
	SumAvg:            {ColSumAvg, sumAverage},
	SumEntropy:        {ColSumEntropy, func(s *stats) float64 { return s.sumEntropy }},
	SumVariance:       {ColSumVariance, sumVariance},
	DiffVariance:      {ColDiffVariance, differenceVariance},
	DiffEntropy:       {ColDiffEntropy, func(s *stats) float64 { return entropyOf(s.marginals.DiffDist) }},
	AutoCorrelation:   {ColAutoCorrelation, autoCorrelation},
	IMC1:              {ColIMC1, informationCorrelation1},
	IMC2:              {ColIMC2, informationCorrelation2},
	MCC:               {ColMCC, maximalCorrelation},
}

// Column returns the output column name of f.
func (f Feature) Column() string {
	if f >= featureCount {
		return f.Key()
	}
	return calculators[f].column
}

func angularSecondMoment(s *stats) float64 {
	var v float64
	s.m.each(func(_, _ int, p float64) {
		v += p * p
	})
	return v
}

func contrast(s *stats) float64 {
	var v float64
	s.m.each(func(a, b int, p float64) {
		d := float64(a - b)
		v += d * d * p
	})
	return v
}

func correlation(s *stats) float64 {
	mo := s.moments
	var v float64
	s.m.each(func(a, b int, p float64) {
		v += (float64(a) - mo.MeanX) * (float64(b) - mo.MeanY) * p
	})
	return v / (mo.StdDevX * mo.StdDevY)
}

func inverseDifferenceMoment(s *stats) float64 {
	var v float64
	s.m.each(func(a, b int, p float64) {
		d := float64(a - b)
		v += p / (1 + d*d)
	})
	return v
}

func entropy(s *stats) float64 {
	var v float64
	s.m.each(func(_, _ int, p float64) {
		if p != 0 {
			v -= p * math.Log(p)
		}
	})
	return v
}

func dissimilarity(s *stats) float64 {
	var v float64
	s.m.each(func(a, b int, p float64) {
		if p != 0 {
			v += math.Abs(float64(a-b)) * p
		}
	})
	return v
}

func inverseDifference(s *stats) float64 {
	var v float64
	s.m.each(func(a, b int, p float64) {
		v += p / (1 + math.Abs(float64(a-b)))
	})
	return v
}

// variance sums the row and column deviations, both measured from MeanX.
func variance(s *stats) float64 {
	mx := s.moments.MeanX
	var v float64
	s.m.each(func(a, b int, p float64) {
		da := float64(a) - mx
		db := float64(b) - mx
		v += da*da*p + db*db*p
	})
	return v
}

func clusterShade(s *stats) float64 {
	mo := s.moments
	var v float64
	s.m.each(func(a, b int, p float64) {
		t := float64(a+b) - mo.MeanX - mo.MeanY
		v += t * t * t * p
	})
	return v
}

func clusterProminence(s *stats) float64 {
	mo := s.moments
	var v float64
	s.m.each(func(a, b int, p float64) {
		t := float64(a+b) - mo.MeanX - mo.MeanY
		v += t * t * t * t * p
	})
	return v
}

// inverseDifferenceNormalized serves both INN and IDN.
func inverseDifferenceNormalized(s *stats) float64 {
	const ng2 = GrayLevels * GrayLevels
	var v float64
	s.m.each(func(a, b int, p float64) {
		d := float64(a - b)
		v += p / (1 + d*d/ng2)
	})
	return v
}

func maxProbability(s *stats) float64 {
	return s.m.Max()
}

func sumAverage(s *stats) float64 {
	var v float64
	for i, p := range s.marginals.SumDist {
		v += float64(i+2) * p
	}
	return v
}

// sumVariance measures deviation from the sum entropy, not the sum average.
func sumVariance(s *stats) float64 {
	var v float64
	for i, p := range s.marginals.SumDist {
		d := float64(i+2) - s.sumEntropy
		v += d * d * p
	}
	return v
}

func differenceVariance(s *stats) float64 {
	var v float64
	for k, p := range s.marginals.DiffDist {
		d := float64(k) - s.marginals.DiffMean
		v += d * d * p
	}
	return v
}
