package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the session actions.
type Toolbar struct {
	container     *fyne.Container
	openButton    *widget.Button
	computeButton *widget.Button
	resetButton   *widget.Button
	exportButton  *widget.Button
	presetButton  *widget.Button

	openHandler    func()
	computeHandler func()
	resetHandler   func()
	exportHandler  func()
	presetHandler  func()
}

func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.createComponents()
	t.buildLayout()
	return t
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButton("Open Image", func() { call(t.openHandler) })
	t.openButton.Importance = widget.HighImportance

	t.computeButton = widget.NewButton("Compute", func() { call(t.computeHandler) })
	t.computeButton.Importance = widget.HighImportance
	t.computeButton.Disable()

	t.resetButton = widget.NewButton("Reset Table", func() { call(t.resetHandler) })
	t.exportButton = widget.NewButton("Export CSV", func() { call(t.exportHandler) })
	t.exportButton.Disable()
	t.presetButton = widget.NewButton("Save Preset", func() { call(t.presetHandler) })
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		t.computeButton,
		widget.NewSeparator(),
		t.resetButton,
		t.exportButton,
		t.presetButton,
	)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (t *Toolbar) SetOpenHandler(fn func())    { t.openHandler = fn }
func (t *Toolbar) SetComputeHandler(fn func()) { t.computeHandler = fn }
func (t *Toolbar) SetResetHandler(fn func())   { t.resetHandler = fn }
func (t *Toolbar) SetExportHandler(fn func())  { t.exportHandler = fn }
func (t *Toolbar) SetPresetHandler(fn func())  { t.presetHandler = fn }

// SetImageLoaded enables computing once an image is available.
func (t *Toolbar) SetImageLoaded(loaded bool) {
	if loaded {
		t.computeButton.Enable()
	} else {
		t.computeButton.Disable()
	}
}

// SetBusy disables actions while a computation runs.
func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.computeButton.Disable()
		t.openButton.Disable()
		return
	}
	t.computeButton.Enable()
	t.openButton.Enable()
}

// SetHasRows enables export when the table is not empty.
func (t *Toolbar) SetHasRows(has bool) {
	if has {
		t.exportButton.Enable()
	} else {
		t.exportButton.Disable()
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
