package glcm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allFeaturesConfig(step int) Config {
	return Config{Step: step, Features: AllFeatureSet(), ShowBasic: true, CheckCounts: true}
}

func rowValue(t *testing.T, r FeatureRow, column string) float64 {
	t.Helper()
	v, ok := r.Value(column)
	require.True(t, ok, "missing column %q in %s row", column, r.Angle())
	return v
}

func TestRampHorizontalFeatures(t *testing.T) {
	rows, err := Compute(Window{Image: mustGray(t, ramp3x3)}, allFeaturesConfig(1))
	require.NoError(t, err)
	r := rows[Deg0]

	// four cells at 1/12 and four at 2/12
	wantEntropy := -(4*(1.0/12)*math.Log(1.0/12) + 4*(2.0/12)*math.Log(2.0/12))

	tests := []struct {
		column string
		want   float64
	}{
		{ColASM, 20.0 / 144},
		{ColContrast, 1},
		{ColEntropy, wantEntropy},
		{ColDissimilarity, 1},
		{ColIDM, 0.5},
		{ColINV, 0.5},
		{ColMaxProb, 2.0 / 12},
		{ColMeanX, 2},
		{ColMeanY, 2},
		{ColSum, 1},
		{ColSumAvg, 6},
		{ColDiffEntropy, 0},
		{ColDiffVariance, (1 - 1.0/256) * (1 - 1.0/256)},
		{ColINN, 1 / (1 + 1.0/65536)},
		{ColIDN, 1 / (1 + 1.0/65536)},
		{ColCounts, 12},
		{ColROIWidth, 3},
		{ColROIHeight, 3},
		{ColPixelMin, 0},
		{ColPixelMax, 4},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.InDelta(t, tt.want, rowValue(t, r, tt.column), 1e-12)
		})
	}
}

func TestRampMomentsAndVariance(t *testing.T) {
	set, err := Build(Window{Image: mustGray(t, ramp3x3)}, 1)
	require.NoError(t, err)
	m := set.Matrix(Deg0)

	mo := NewMoments(m)
	// row marginal: p(0)=1/12 p(1)=3/12 p(2)=4/12 p(3)=3/12 p(4)=1/12
	wantVar := (4*1 + 1*3 + 0*4 + 1*3 + 4*1) / 12.0
	assert.InDelta(t, 2.0, mo.MeanX, 1e-12)
	assert.InDelta(t, wantVar, mo.StdDevX, 1e-12)
	assert.InDelta(t, wantVar, mo.StdDevY, 1e-12)

	s := newStats(m)
	assert.InDelta(t, 2*wantVar, variance(s), 1e-12)
	// E[(a-2)(b-2)] over the pairs, divided by the product of variances
	cov := (2*(-2*-1) + 4*(-1*0) + 4*(0*1) + 2*(1*2)) / 12.0
	assert.InDelta(t, cov/(wantVar*wantVar), correlation(s), 1e-12)
	assert.InDelta(t, 0, clusterShade(s), 1e-12)
}

func TestMarginals(t *testing.T) {
	set, err := Build(Window{Image: mustGray(t, ramp3x3)}, 1)
	require.NoError(t, err)

	mg := NewMarginals(set.Matrix(Deg0))
	require.Len(t, mg.SumDist, 2*GrayLevels-1)
	require.Len(t, mg.DiffDist, GrayLevels)

	// 1-based row+col of 3, 5, 7, 9 land at indexes 1, 3, 5, 7
	assert.InDelta(t, 2.0/12, mg.SumDist[1], 1e-15)
	assert.InDelta(t, 4.0/12, mg.SumDist[3], 1e-15)
	assert.InDelta(t, 4.0/12, mg.SumDist[5], 1e-15)
	assert.InDelta(t, 2.0/12, mg.SumDist[7], 1e-15)
	assert.InDelta(t, 1.0, mg.DiffDist[1], 1e-15)
	assert.Zero(t, mg.DiffDist[0])
	assert.InDelta(t, 1.0/GrayLevels, mg.DiffMean, 1e-15)
}

func TestUniformWindow(t *testing.T) {
	rows, err := Compute(Window{Image: mustGray(t, uniform(6, 5, 7))}, allFeaturesConfig(1))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	for _, r := range rows {
		t.Run(r.Angle(), func(t *testing.T) {
			assert.False(t, r.Degenerate)
			assert.Equal(t, 1.0, rowValue(t, r, ColASM))
			assert.Equal(t, 0.0, rowValue(t, r, ColContrast))
			assert.Equal(t, 0.0, rowValue(t, r, ColEntropy))
			assert.Equal(t, 1.0, rowValue(t, r, ColMaxProb))
			assert.Equal(t, 0.0, rowValue(t, r, ColVariance))
			assert.True(t, math.IsNaN(rowValue(t, r, ColCorrelation)))
			assert.Equal(t, 16.0, rowValue(t, r, ColSumAvg))
			assert.Equal(t, 0.0, rowValue(t, r, ColSumEntropy))
			// deviation is taken from the sum entropy (0), not the sum average
			assert.Equal(t, 256.0, rowValue(t, r, ColSumVariance))
		})
	}
}

func TestDegenerateWindowAllNaN(t *testing.T) {
	tests := []struct {
		name string
		w    func(t *testing.T) Window
	}{
		{"single pixel", func(t *testing.T) Window {
			return Window{Image: mustGray(t, [][]int{{5}})}
		}},
		{"smaller than step", func(t *testing.T) Window {
			return Window{Image: mustGray(t, uniform(3, 3, 5))}
		}},
		{"mask excludes everything", func(t *testing.T) Window {
			return Window{Image: mustGray(t, ramp3x3), Mask: NewMask(3, 3)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := 1
			if tt.name == "smaller than step" {
				step = 3
			}
			rows, err := Compute(tt.w(t), allFeaturesConfig(step))
			require.NoError(t, err)
			require.Len(t, rows, 5)

			for _, r := range rows {
				assert.True(t, r.Degenerate, r.Angle())
				for _, f := range AllFeatures() {
					assert.True(t, math.IsNaN(rowValue(t, r, f.Column())), "%s %s", r.Angle(), f)
				}
				assert.Equal(t, 0.0, rowValue(t, r, ColCounts))
				assert.True(t, math.IsNaN(rowValue(t, r, ColMeanX)))
			}
		})
	}
}

func TestFullyMaskedWindowHasNoPixelRange(t *testing.T) {
	rows, err := Compute(Window{Image: mustGray(t, ramp3x3), Mask: NewMask(3, 3)}, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rowValue(t, rows[0], ColPixelMin)))
	assert.True(t, math.IsNaN(rowValue(t, rows[0], ColPixelMax)))
}

func TestFeatureBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 5; trial++ {
		rows := make([][]int, 12+rng.Intn(20))
		width := 12 + rng.Intn(20)
		levels := 1 + rng.Intn(GrayLevels)
		for y := range rows {
			rows[y] = make([]int, width)
			for x := range rows[y] {
				rows[y][x] = rng.Intn(levels)
			}
		}

		out, err := Compute(Window{Image: mustGray(t, rows)}, allFeaturesConfig(1+rng.Intn(3)))
		require.NoError(t, err)
		for _, r := range out {
			maxProb := rowValue(t, r, ColMaxProb)
			asm := rowValue(t, r, ColASM)
			assert.True(t, maxProb >= 0 && maxProb <= 1, "MaxProb %v", maxProb)
			assert.True(t, asm >= 0 && asm <= 1, "ASM %v", asm)
			assert.GreaterOrEqual(t, rowValue(t, r, ColEntropy), 0.0)
			assert.GreaterOrEqual(t, rowValue(t, r, ColSumEntropy), 0.0)
			assert.GreaterOrEqual(t, rowValue(t, r, ColDiffEntropy), 0.0)
			assert.Equal(t, rowValue(t, r, ColINN), rowValue(t, r, ColIDN))
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := make([][]int, 24)
	for y := range rows {
		rows[y] = make([]int, 19)
		for x := range rows[y] {
			rows[y][x] = rng.Intn(GrayLevels)
		}
	}
	w := Window{Image: mustGray(t, rows)}
	cfg := allFeaturesConfig(2)

	first, err := Compute(w, cfg)
	require.NoError(t, err)
	second, err := Compute(w, cfg)
	require.NoError(t, err)

	for i := range first {
		require.Equal(t, first[i].Columns(), second[i].Columns())
		for _, c := range first[i].Columns() {
			a, _ := first[i].Value(c)
			b, _ := second[i].Value(c)
			assert.Equal(t, math.Float64bits(a), math.Float64bits(b), "%s %s", first[i].Angle(), c)
		}
	}
}

func TestCorrelationMeasures(t *testing.T) {
	// ramp3x3 at 0°: p_x = p_y = 1/12, 3/12, 4/12, 3/12, 1/12
	hx := -(2*(1.0/12)*math.Log(1.0/12) + 2*(3.0/12)*math.Log(3.0/12) + (4.0/12)*math.Log(4.0/12))
	hxy := -(4*(1.0/12)*math.Log(1.0/12) + 4*(2.0/12)*math.Log(2.0/12))

	tests := []struct {
		name     string
		rows     [][]int
		autoCorr float64
		imc1     float64
		imc2     float64
		mcc      float64
	}{
		// HXY1 = HXY2 = HX + HY for any matrix with these marginals.
		// Levels alternate parity along a row, so Q has eigenvalue 1 twice.
		{"ramp", ramp3x3, 56.0 / 12, (hxy - 2*hx) / hx, math.Sqrt(1 - math.Exp(-2*(2*hx-hxy))), 1},
		// every cell 1/4: the levels are independent
		{"independent", [][]int{{0, 0, 1, 1, 0}}, 0.25, 0, 0, 0},
		// 0 is always next to 1: fully dependent
		{"alternating", [][]int{{0, 1, 0, 1}}, 0, -1, math.Sqrt(0.75), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Compute(Window{Image: mustGray(t, tt.rows)}, allFeaturesConfig(1))
			require.NoError(t, err)
			r := rows[Deg0]

			assert.InDelta(t, tt.autoCorr, rowValue(t, r, ColAutoCorrelation), 1e-12)
			assert.InDelta(t, tt.imc1, rowValue(t, r, ColIMC1), 1e-12)
			assert.InDelta(t, tt.imc2, rowValue(t, r, ColIMC2), 1e-12)
			assert.InDelta(t, tt.mcc, rowValue(t, r, ColMCC), 1e-9)
		})
	}
}

func TestCorrelationMeasuresUniformWindow(t *testing.T) {
	rows, err := Compute(Window{Image: mustGray(t, uniform(6, 5, 7))}, allFeaturesConfig(1))
	require.NoError(t, err)

	for _, r := range rows {
		t.Run(r.Angle(), func(t *testing.T) {
			assert.Equal(t, 49.0, rowValue(t, r, ColAutoCorrelation))
			assert.True(t, math.IsNaN(rowValue(t, r, ColIMC1)))
			assert.True(t, math.IsNaN(rowValue(t, r, ColIMC2)))
			assert.True(t, math.IsNaN(rowValue(t, r, ColMCC)))
		})
	}
}

func TestMarginalsRowsAndColumns(t *testing.T) {
	set, err := Build(Window{Image: mustGray(t, ramp3x3)}, 1)
	require.NoError(t, err)

	mg := NewMarginals(set.Matrix(Deg0))
	require.Len(t, mg.RowDist, GrayLevels)
	require.Len(t, mg.ColDist, GrayLevels)

	want := []float64{1.0 / 12, 3.0 / 12, 4.0 / 12, 3.0 / 12, 1.0 / 12}
	for i, p := range want {
		assert.InDelta(t, p, mg.RowDist[i], 1e-15)
		assert.InDelta(t, p, mg.ColDist[i], 1e-15)
	}
	assert.Zero(t, mg.RowDist[5])
}
