package components

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/models"
)

func TestParameterPanelConfig(t *testing.T) {
	test.NewTempApp(t)
	p := NewParameterPanel()

	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, glcm.DefaultConfig(), cfg)

	p.stepEntry.SetText("10")
	p.countsCheck.SetChecked(false)
	p.setFeatures(glcm.NewFeatureSet(glcm.Entropy))

	cfg, err = p.Config()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Step)
	assert.False(t, cfg.CheckCounts)
	assert.Equal(t, glcm.NewFeatureSet(glcm.Entropy), cfg.Features)

	p.stepEntry.SetText("x")
	_, err = p.Config()
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)

	p.stepEntry.SetText("0")
	_, err = p.Config()
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)
}

func TestParameterPanelRegion(t *testing.T) {
	test.NewTempApp(t)
	p := NewParameterPanel()

	r, err := p.Region()
	require.NoError(t, err)
	assert.Equal(t, image.Rectangle{}, r.Rect)

	p.roiEntry.SetText("1,2,3,4")
	r, err = p.Region()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(1, 2, 4, 6), r.Rect)

	p.polygonEntry.SetText("0,0 4,0 4,4")
	_, err = p.Region()
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)

	p.roiEntry.SetText("")
	r, err = p.Region()
	require.NoError(t, err)
	assert.Len(t, r.Polygon, 3)
}

func TestResultsViewSnapshot(t *testing.T) {
	test.NewTempApp(t)
	rv := NewResultsView()

	table := models.NewResultsTable()
	img, err := glcm.NewGray([][]int{{0, 1}, {1, 0}})
	require.NoError(t, err)
	rows, err := glcm.Compute(glcm.Window{Image: img}, glcm.Config{Step: 1, CheckCounts: true})
	require.NoError(t, err)
	_, err = table.Append("tiny", rows)
	require.NoError(t, err)

	rv.Refresh(table.Snapshot())
	assert.Equal(t, 5, rv.Rows())
	assert.Equal(t, "Source", rv.Cell(0, 0))
	assert.Equal(t, glcm.ColCounts, rv.Cell(0, 2))
	assert.Equal(t, "tiny", rv.Cell(1, 0))
	assert.Equal(t, "Average", rv.Cell(5, 1))
	assert.Equal(t, "", rv.Cell(9, 0))

	table.Reset()
	rv.Refresh(table.Snapshot())
	assert.Zero(t, rv.Rows())
}

func TestDisplayToImage(t *testing.T) {
	img := image.Pt(100, 50)

	tests := []struct {
		name string
		pos  fyne.Position
		area fyne.Size
		want image.Point
	}{
		{"exact fit", fyne.NewPos(21, 11), fyne.NewSize(200, 100), image.Pt(10, 5)},
		{"letterboxed", fyne.NewPos(10, 61), fyne.NewSize(200, 200), image.Pt(5, 5)},
		{"before the image", fyne.NewPos(-5, 10), fyne.NewSize(200, 200), image.Pt(0, 0)},
		{"past the image", fyne.NewPos(199, 199), fyne.NewSize(200, 200), image.Pt(99, 49)},
		{"no area yet", fyne.NewPos(5, 5), fyne.NewSize(0, 0), image.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayToImage(tt.pos, tt.area, img))
		})
	}
}

func TestSelectionRectIncludesBothEnds(t *testing.T) {
	assert.Equal(t, image.Rect(10, 5, 21, 11), selectionRect(image.Pt(20, 10), image.Pt(10, 5)))
	assert.Equal(t, image.Rect(3, 3, 4, 4), selectionRect(image.Pt(3, 3), image.Pt(3, 3)))
}

func TestDragFillsROIEntry(t *testing.T) {
	test.NewTempApp(t)
	display := NewImageDisplay()
	panel := NewParameterPanel()
	display.SetOnSelect(panel.SetRect)

	display.SetImage(image.NewGray(image.Rect(0, 0, 100, 50)))
	display.area.Resize(fyne.NewSize(200, 100))
	panel.polygonEntry.SetText("0,0 4,0 4,4")

	// a drag from (21,11) to (41,21) reported in two steps
	display.area.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(31, 16)}, Dragged: fyne.NewDelta(10, 5)})
	display.area.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(41, 21)}, Dragged: fyne.NewDelta(10, 5)})
	display.area.DragEnd()

	assert.Equal(t, image.Rect(10, 5, 21, 11), display.area.selection)
	assert.Equal(t, "10,5,11,6", panel.roiEntry.Text)
	assert.Empty(t, panel.polygonEntry.Text)

	r, err := panel.Region()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(10, 5, 21, 11), r.Rect)

	display.SetImage(image.NewGray(image.Rect(0, 0, 8, 8)))
	assert.True(t, display.area.selection.Empty())
}

func TestDragWithoutImageIsIgnored(t *testing.T) {
	test.NewTempApp(t)
	display := NewImageDisplay()
	called := false
	display.SetOnSelect(func(image.Rectangle) { called = true })

	display.area.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(5, 5)}, Dragged: fyne.NewDelta(5, 5)})
	display.area.DragEnd()
	assert.False(t, called)
}
