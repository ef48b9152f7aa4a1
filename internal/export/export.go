// Package export writes a results table as CSV or as an aligned text table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/models"
)

const (
	colBatch  = "Batch"
	colSource = "Source"
)

// Header returns the exported column names: batch, source, angle, then every
// numeric column present in the snapshot.
func Header(s models.Snapshot) []string {
	return append([]string{colBatch, colSource, glcm.ColAngle}, s.Columns...)
}

// Records renders every row of s against Header(s). Cells a row does not
// carry are empty; NaN is written as "NaN".
func Records(s models.Snapshot, format func(float64) string) [][]string {
	records := make([][]string, 0, len(s.Rows))

	for i, r := range s.Rows {
		b, ok := s.BatchOf(i)
		if !ok {
			continue
		}
		rec := make([]string, 0, len(s.Columns)+3)
		rec = append(rec, b.ID.String(), b.Source, r.Angle())
		for _, c := range s.Columns {
			v, ok := r.Value(c)
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, format(v))
		}
		records = append(records, rec)
	}
	return records
}

// FormatExact keeps full float64 precision.
func FormatExact(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatShort rounds to four decimals for display.
func FormatShort(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, t *models.ResultsTable) error {
	snap := t.Snapshot()
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(snap)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(Records(snap, FormatExact)); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

// WriteText writes an aligned table without the batch column.
func WriteText(w io.Writer, t *models.ResultsTable) error {
	snap := t.Snapshot()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := Header(snap)[1:]
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}
	for _, rec := range Records(snap, FormatShort) {
		if _, err := fmt.Fprintln(tw, strings.Join(rec[1:], "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
