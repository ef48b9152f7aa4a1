package glcm

import "math"

// Output column names.
const (
	ColAngle = "Angle (degree)"

	ColMeanX     = "Mean-x"
	ColMeanY     = "Mean-y"
	ColStdDevX   = "STD-x"
	ColStdDevY   = "STD-y"
	ColSum       = "Sum of GLCM elements"
	ColROIHeight = "ROI Height"
	ColROIWidth  = "ROI Width"
	ColIMGHeight = "IMG Height"
	ColIMGWidth  = "IMG Width"
	ColROIX      = "r.x"
	ColROIY      = "r.y"
	ColPixelMin  = "pixel min"
	ColPixelMax  = "pixel max"

	ColASM               = "ASM"
	ColContrast          = "Contrast"
	ColCorrelation       = "Correlation"
	ColIDM               = "IDM"
	ColEntropy           = "Entropy"
	ColDissimilarity     = "Dissimilarity"
	ColINV               = "INV"
	ColVariance          = "Variance"
	ColClusterShade      = "CS"
	ColClusterProminence = "CP"
	ColINN               = "INN"
	ColIDN               = "IDN"
	ColMaxProb           = "MaxProb"
	ColSumAvg            = "SumAvg"
	ColSumEntropy        = "SumEnth"
	ColSumVariance       = "SumVar"
	ColDiffVariance      = "DiffVar"
	ColDiffEntropy       = "DiffEnth"
	ColAutoCorrelation   = "AutoCorr"
	ColIMC1              = "IMC1"
	ColIMC2              = "IMC2"
	ColMCC               = "MCC"

	ColCounts = "Counts"
)

var basicColumns = []string{
	ColMeanX, ColMeanY, ColStdDevX, ColStdDevY, ColSum,
	ColROIHeight, ColROIWidth, ColIMGHeight, ColIMGWidth,
	ColROIX, ColROIY, ColPixelMin, ColPixelMax,
}

// ColumnOrder lists every numeric column in display order. The angle label
// always comes first and is not part of this list.
func ColumnOrder() []string {
	cols := append([]string(nil), basicColumns...)
	for _, f := range AllFeatures() {
		cols = append(cols, f.Column())
	}
	return append(cols, ColCounts)
}

// FeatureRow is one output record: the values computed for a single direction.
type FeatureRow struct {
	Direction Direction
	// Degenerate is set when no pixel pair reached this direction's matrix;
	// every derived value is then NaN.
	Degenerate bool

	columns []string
	values  map[string]float64
}

func newFeatureRow(d Direction) FeatureRow {
	return FeatureRow{Direction: d, values: make(map[string]float64)}
}

// Angle is the label shown in the angle column.
func (r FeatureRow) Angle() string {
	return r.Direction.String()
}

// Columns returns the numeric columns present in r, in display order.
func (r FeatureRow) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Value returns the value stored under column.
func (r FeatureRow) Value(column string) (float64, bool) {
	v, ok := r.values[column]
	return v, ok
}

func (r *FeatureRow) set(column string, v float64) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = v
}

// assemble turns the per-direction statistics into the five output rows.
func assemble(w Window, set *MatrixSet, all [len(Directions)]*stats, cfg Config) []FeatureRow {
	r := w.Bounds()
	pixelMin, pixelMax := math.NaN(), math.NaN()
	if set.PixelCount > 0 {
		pixelMin, pixelMax = float64(set.PixelMin), float64(set.PixelMax)
	}

	rows := make([]FeatureRow, 0, len(Directions))
	for _, d := range Directions {
		s := all[d]
		row := newFeatureRow(d)
		row.Degenerate = s.m.Degenerate()

		if cfg.ShowBasic {
			row.set(ColMeanX, s.moments.MeanX)
			row.set(ColMeanY, s.moments.MeanY)
			row.set(ColStdDevX, s.moments.StdDevX)
			row.set(ColStdDevY, s.moments.StdDevY)
			row.set(ColSum, s.m.Sum())
			row.set(ColROIHeight, float64(r.Dy()))
			row.set(ColROIWidth, float64(r.Dx()))
			row.set(ColIMGHeight, float64(w.Image.Height))
			row.set(ColIMGWidth, float64(w.Image.Width))
			row.set(ColROIX, float64(r.Min.X))
			row.set(ColROIY, float64(r.Min.Y))
			row.set(ColPixelMin, pixelMin)
			row.set(ColPixelMax, pixelMax)
		}

		for _, f := range cfg.Features.Features() {
			c := calculators[f]
			row.set(c.column, c.reduce(s))
		}

		if cfg.CheckCounts {
			row.set(ColCounts, s.m.Counter())
		}
		rows = append(rows, row)
	}
	return rows
}
