package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"glcm-texture/internal/export"
	"glcm-texture/internal/models"
)

const resultsColumnWidth = 110

// ResultsView shows a snapshot of the session results table. Row 0 is the
// header; the batch id column is left out.
type ResultsView struct {
	container *fyne.Container
	table     *widget.Table
	header    []string
	records   [][]string
}

func NewResultsView() *ResultsView {
	rv := &ResultsView{}
	rv.table = widget.NewTable(rv.size, rv.create, rv.update)
	rv.container = container.NewBorder(
		widget.NewLabelWithStyle("Results", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		rv.table,
	)
	return rv
}

func (rv *ResultsView) size() (int, int) {
	return len(rv.records) + 1, len(rv.header)
}

func (rv *ResultsView) create() fyne.CanvasObject {
	return widget.NewLabel("")
}

func (rv *ResultsView) update(id widget.TableCellID, cell fyne.CanvasObject) {
	label := cell.(*widget.Label)
	label.TextStyle.Bold = id.Row == 0
	label.SetText(rv.Cell(id.Row, id.Col))
}

// Cell returns the text at (row, col), with row 0 the header.
func (rv *ResultsView) Cell(row, col int) string {
	if col < 0 || col >= len(rv.header) {
		return ""
	}
	if row == 0 {
		return rv.header[col]
	}
	if row-1 >= len(rv.records) {
		return ""
	}
	return rv.records[row-1][col]
}

// Rows returns the number of data rows shown.
func (rv *ResultsView) Rows() int {
	return len(rv.records)
}

// Refresh redraws from snap. Header and records come from the same snapshot.
func (rv *ResultsView) Refresh(snap models.Snapshot) {
	rv.header = export.Header(snap)[1:]
	records := export.Records(snap, export.FormatShort)
	rv.records = make([][]string, len(records))
	for i, rec := range records {
		rv.records[i] = rec[1:]
	}
	for col := range rv.header {
		rv.table.SetColumnWidth(col, resultsColumnWidth)
	}
	rv.table.Refresh()
}

func (rv *ResultsView) GetContainer() *fyne.Container {
	return rv.container
}
