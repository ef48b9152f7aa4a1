package components

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 480
	ImageAreaHeight = 360
)

var selectionColor = color.NRGBA{R: 255, G: 200, B: 0, A: 255}

// ImageDisplay shows the image being analysed. Dragging across it selects a
// rectangular ROI in image coordinates.
type ImageDisplay struct {
	container *fyne.Container
	area      *selectionArea
}

func NewImageDisplay() *ImageDisplay {
	id := &ImageDisplay{area: newSelectionArea()}
	id.container = container.NewBorder(
		widget.NewRichTextFromMarkdown("**Image** (drag to select a ROI)"),
		nil, nil, nil,
		id.area,
	)
	return id
}

// SetImage replaces the shown image and clears the selection.
func (id *ImageDisplay) SetImage(img image.Image) {
	id.area.setImage(img)
}

// SetOnSelect registers fn to receive each completed drag selection.
func (id *ImageDisplay) SetOnSelect(fn func(image.Rectangle)) {
	id.area.onSelect = fn
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

// selectionArea draws the image letterboxed into its size plus the selection
// frame on top.
type selectionArea struct {
	widget.BaseWidget

	image     *canvas.Image
	frame     *canvas.Rectangle
	imageSize image.Point

	dragging  bool
	start     fyne.Position
	current   fyne.Position
	selection image.Rectangle
	onSelect  func(image.Rectangle)
}

func newSelectionArea() *selectionArea {
	a := &selectionArea{}
	a.image = canvas.NewImageFromImage(image.NewGray(image.Rect(0, 0, 1, 1)))
	a.image.FillMode = canvas.ImageFillContain
	a.image.ScaleMode = canvas.ImageScalePixels
	a.image.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	a.frame = canvas.NewRectangle(color.Transparent)
	a.frame.StrokeColor = selectionColor
	a.frame.StrokeWidth = 1
	a.frame.Hide()

	a.ExtendBaseWidget(a)
	return a
}

func (a *selectionArea) setImage(img image.Image) {
	a.image.Image = img
	a.imageSize = img.Bounds().Size()
	a.dragging = false
	a.selection = image.Rectangle{}
	a.Refresh()
}

// Dragged tracks the pointer. The first event of a drag carries the distance
// already moved, which places the start point.
func (a *selectionArea) Dragged(ev *fyne.DragEvent) {
	if a.imageSize.X == 0 || a.imageSize.Y == 0 {
		return
	}
	if !a.dragging {
		a.dragging = true
		a.start = ev.Position.Subtract(ev.Dragged)
	}
	a.current = ev.Position
	a.Refresh()
}

func (a *selectionArea) DragEnd() {
	if !a.dragging {
		return
	}
	a.dragging = false

	size := a.Size()
	a.selection = selectionRect(
		displayToImage(a.start, size, a.imageSize),
		displayToImage(a.current, size, a.imageSize),
	)
	a.Refresh()
	if a.onSelect != nil {
		a.onSelect(a.selection)
	}
}

func (a *selectionArea) CreateRenderer() fyne.WidgetRenderer {
	return &selectionAreaRenderer{area: a}
}

type selectionAreaRenderer struct {
	area *selectionArea
}

func (r *selectionAreaRenderer) Layout(size fyne.Size) {
	r.area.image.Resize(size)
	r.area.image.Move(fyne.NewPos(0, 0))
	r.placeFrame(size)
}

func (r *selectionAreaRenderer) placeFrame(size fyne.Size) {
	a := r.area
	var sel image.Rectangle
	switch {
	case a.dragging:
		sel = selectionRect(displayToImage(a.start, size, a.imageSize), displayToImage(a.current, size, a.imageSize))
	case !a.selection.Empty():
		sel = a.selection
	default:
		a.frame.Hide()
		return
	}

	from := imageToDisplay(sel.Min, size, a.imageSize)
	to := imageToDisplay(sel.Max, size, a.imageSize)
	a.frame.Move(from)
	a.frame.Resize(fyne.NewSize(to.X-from.X, to.Y-from.Y))
	a.frame.Show()
}

func (r *selectionAreaRenderer) MinSize() fyne.Size {
	return r.area.image.MinSize()
}

func (r *selectionAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.area.image, r.area.frame}
}

func (r *selectionAreaRenderer) Refresh() {
	r.placeFrame(r.area.Size())
	r.area.image.Refresh()
	r.area.frame.Refresh()
}

func (r *selectionAreaRenderer) Destroy() {}

// containScale returns the scale and offset ImageFillContain uses to fit img
// into area.
func containScale(area fyne.Size, img image.Point) (scale, offsetX, offsetY float64) {
	scale = math.Min(float64(area.Width)/float64(img.X), float64(area.Height)/float64(img.Y))
	offsetX = (float64(area.Width) - float64(img.X)*scale) / 2
	offsetY = (float64(area.Height) - float64(img.Y)*scale) / 2
	return scale, offsetX, offsetY
}

// displayToImage maps a position inside area to the image pixel under it,
// clamped to the image.
func displayToImage(pos fyne.Position, area fyne.Size, img image.Point) image.Point {
	if img.X <= 0 || img.Y <= 0 || area.Width <= 0 || area.Height <= 0 {
		return image.Point{}
	}
	scale, offsetX, offsetY := containScale(area, img)
	x := math.Floor((float64(pos.X) - offsetX) / scale)
	y := math.Floor((float64(pos.Y) - offsetY) / scale)
	return image.Point{
		X: int(math.Max(0, math.Min(x, float64(img.X-1)))),
		Y: int(math.Max(0, math.Min(y, float64(img.Y-1)))),
	}
}

func imageToDisplay(p image.Point, area fyne.Size, img image.Point) fyne.Position {
	if img.X <= 0 || img.Y <= 0 {
		return fyne.NewPos(0, 0)
	}
	scale, offsetX, offsetY := containScale(area, img)
	return fyne.NewPos(float32(float64(p.X)*scale+offsetX), float32(float64(p.Y)*scale+offsetY))
}

// selectionRect spans the pixels from a to b, both included.
func selectionRect(a, b image.Point) image.Rectangle {
	return image.Rect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X)+1, max(a.Y, b.Y)+1)
}
