package views

import (
	"image"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/models"
	"glcm-texture/internal/services"
	"glcm-texture/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// MainView is the viewer window: toolbar on top, image and parameters on the
// left, results table on the right, status at the bottom.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	imageDisplay  *components.ImageDisplay
	paramPanel    *components.ParameterPanel
	results       *components.ResultsView
	statusBar     *components.StatusBar
}

func NewMainView(window fyne.Window) *MainView {
	mv := &MainView{
		window:       window,
		toolbar:      components.NewToolbar(),
		imageDisplay: components.NewImageDisplay(),
		paramPanel:   components.NewParameterPanel(),
		results:      components.NewResultsView(),
		statusBar:    components.NewStatusBar(),
	}
	mv.buildLayout()
	return mv
}

func (mv *MainView) buildLayout() {
	mv.imageDisplay.SetOnSelect(mv.paramPanel.SetRect)

	left := container.NewVScroll(container.NewVBox(
		mv.imageDisplay.GetContainer(),
		mv.paramPanel.GetContainer(),
	))

	split := container.NewHSplit(left, mv.results.GetContainer())
	split.SetOffset(0.4)

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil, nil,
		split,
	)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) SetOpenHandler(fn func())    { mv.toolbar.SetOpenHandler(fn) }
func (mv *MainView) SetComputeHandler(fn func()) { mv.toolbar.SetComputeHandler(fn) }
func (mv *MainView) SetResetHandler(fn func())   { mv.toolbar.SetResetHandler(fn) }
func (mv *MainView) SetExportHandler(fn func())  { mv.toolbar.SetExportHandler(fn) }
func (mv *MainView) SetPresetHandler(fn func())  { mv.toolbar.SetPresetHandler(fn) }

// Config reads a fresh configuration from the parameter panel.
func (mv *MainView) Config() (glcm.Config, error) {
	return mv.paramPanel.Config()
}

func (mv *MainView) SetConfig(cfg glcm.Config) {
	mv.paramPanel.SetConfig(cfg)
}

func (mv *MainView) Region() (services.Region, error) {
	return mv.paramPanel.Region()
}

// The methods below touch widgets and must run on the UI goroutine; the
// controller wraps them in fyne.Do when calling from a worker.

func (mv *MainView) SetImage(name string, img image.Image) {
	b := img.Bounds()
	mv.imageDisplay.SetImage(img)
	mv.statusBar.SetImageInfo(name, b.Dx(), b.Dy())
	mv.toolbar.SetImageLoaded(true)
}

func (mv *MainView) SetBusy(busy bool) {
	mv.toolbar.SetBusy(busy)
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// RefreshResults redraws the results table from one snapshot of t.
func (mv *MainView) RefreshResults(t *models.ResultsTable) {
	snap := t.Snapshot()
	mv.results.Refresh(snap)
	mv.statusBar.SetRowCount(len(snap.Rows), len(snap.Batches))
	mv.toolbar.SetHasRows(len(snap.Rows) > 0)
}

func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

func (mv *MainView) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, mv.window)
}

func (mv *MainView) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	dialog.ShowFileSave(callback, mv.window)
}

func (mv *MainView) Show() {
	mv.window.Show()
}
