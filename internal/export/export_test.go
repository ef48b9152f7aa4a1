package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/models"
)

func newTable(t *testing.T) *models.ResultsTable {
	t.Helper()
	table := models.NewResultsTable()

	ramp, err := glcm.NewGray([][]int{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}})
	require.NoError(t, err)
	rows, err := glcm.Compute(glcm.Window{Image: ramp}, glcm.Config{Step: 1, Features: glcm.NewFeatureSet(glcm.Contrast)})
	require.NoError(t, err)
	_, err = table.Append("ramp.png", rows)
	require.NoError(t, err)

	dot, err := glcm.NewGray([][]int{{9}})
	require.NoError(t, err)
	rows, err = glcm.Compute(glcm.Window{Image: dot}, glcm.Config{Step: 1, CheckCounts: true})
	require.NoError(t, err)
	_, err = table.Append("dot.png", rows)
	require.NoError(t, err)

	return table
}

func TestWriteCSV(t *testing.T) {
	table := newTable(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)

	assert.Equal(t, []string{"Batch", "Source", glcm.ColAngle, glcm.ColContrast, glcm.ColCounts}, records[0])

	batches := table.Snapshot().Batches
	first := records[1]
	assert.Equal(t, batches[0].ID.String(), first[0])
	assert.Equal(t, "ramp.png", first[1])
	assert.Equal(t, "0", first[2])
	contrast, err := strconv.ParseFloat(first[3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, contrast, 1e-12)
	assert.Equal(t, "", first[4])

	last := records[10]
	assert.Equal(t, "dot.png", last[1])
	assert.Equal(t, "Average", last[2])
	assert.Equal(t, "", last[3])
	assert.Equal(t, "0", last[4])
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, models.NewResultsTable()))
	assert.Equal(t, "Batch,Source,Angle (degree)\n", buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, newTable(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Contains(t, lines[0], glcm.ColContrast)
	assert.NotContains(t, lines[0], "Batch")
	assert.Contains(t, lines[1], "ramp.png")
	assert.Equal(t, len(lines[0]), len(lines[1]))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v           float64
		exact, show string
	}{
		{math.NaN(), "NaN", "NaN"},
		{12, "12", "12"},
		{0.1, "0.1", "0.1000"},
		{-2.5e-7, "-2.5e-07", "-0.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.exact, func(t *testing.T) {
			assert.Equal(t, tt.exact, FormatExact(tt.v))
			assert.Equal(t, tt.show, FormatShort(tt.v))
		})
	}
}

func TestRecordsMatchSnapshotHeader(t *testing.T) {
	table := newTable(t)
	snap := table.Snapshot()

	// rows appended after the snapshot carry a column the snapshot lacks
	img, err := glcm.NewGray([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)
	rows, err := glcm.Compute(glcm.Window{Image: img}, glcm.Config{Step: 1, Features: glcm.NewFeatureSet(glcm.ASM)})
	require.NoError(t, err)
	_, err = table.Append("late.png", rows)
	require.NoError(t, err)

	header := Header(snap)
	records := Records(snap, FormatExact)
	assert.NotContains(t, header, glcm.ColASM)
	require.Len(t, records, 10)
	for _, rec := range records {
		assert.Len(t, rec, len(header))
		assert.NotEqual(t, "late.png", rec[1])
	}

	fresh := table.Snapshot()
	assert.Contains(t, Header(fresh), glcm.ColASM)
	assert.Len(t, Records(fresh, FormatExact), 15)
}
