package controllers

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"glcm-texture/internal/config"
	"glcm-texture/internal/export"
	"glcm-texture/internal/glcm"
	"glcm-texture/internal/logger"
	"glcm-texture/internal/services"
	"glcm-texture/internal/views"

	"fyne.io/fyne/v2"
)

// MainController connects the viewer widgets to the analysis service.
// Computations run on a worker goroutine; all widget updates go through
// fyne.Do.
type MainController struct {
	service *services.AnalysisService
	load    services.LoadFunc
	logger  logger.Logger
	view    *views.MainView

	mu        sync.RWMutex
	image     *glcm.Gray
	imageName string
	computing bool
}

func NewMainController(service *services.AnalysisService, load services.LoadFunc, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{service: service, load: load, logger: log}
}

// SetMainView attaches the view and wires its actions.
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.view = view
	view.SetOpenHandler(mc.OpenImage)
	view.SetComputeHandler(mc.Compute)
	view.SetResetHandler(mc.ResetTable)
	view.SetExportHandler(mc.ExportCSV)
	view.SetPresetHandler(mc.SavePreset)
	view.RefreshResults(mc.service.Table())
}

// OpenImage asks for a file and loads it in the background.
func (mc *MainController) OpenImage() {
	mc.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mc.view.UpdateStatus("Loading " + filepath.Base(path))
		go mc.loadImage(path)
	})
}

func (mc *MainController) loadImage(path string) {
	img, err := mc.load(path)
	if err != nil {
		mc.handleError("Load failed", err)
		return
	}

	name := filepath.Base(path)
	mc.mu.Lock()
	mc.image, mc.imageName = img, name
	mc.mu.Unlock()

	mc.logger.Info("MainController", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  img.Width,
		"height": img.Height,
	})
	display := img.Image()
	fyne.Do(func() {
		mc.view.SetImage(name, display)
		mc.view.UpdateStatus("Ready")
	})
}

// Compute snapshots the widgets into a config and runs the analysis off the
// UI goroutine. Clicks while a computation runs are ignored.
func (mc *MainController) Compute() {
	cfg, err := mc.view.Config()
	if err != nil {
		mc.handleError("Invalid parameters", err)
		return
	}
	region, err := mc.view.Region()
	if err != nil {
		mc.handleError("Invalid region", err)
		return
	}

	mc.mu.Lock()
	if mc.computing || mc.image == nil {
		mc.mu.Unlock()
		return
	}
	mc.computing = true
	img, name := mc.image, mc.imageName
	mc.mu.Unlock()

	mc.view.SetBusy(true)
	mc.view.UpdateStatus("Computing...")

	go func() {
		batch, err := mc.service.Analyze(name, img, region, cfg)

		mc.mu.Lock()
		mc.computing = false
		mc.mu.Unlock()

		fyne.Do(func() {
			mc.view.SetBusy(false)
			if err != nil {
				mc.view.UpdateStatus("Compute failed")
				mc.view.ShowError(err)
				return
			}
			mc.view.RefreshResults(mc.service.Table())
			mc.view.UpdateStatus(fmt.Sprintf("Added %d rows for %s", batch.Count, name))
		})
	}()
}

// ResetTable clears the session results.
func (mc *MainController) ResetTable() {
	mc.service.Reset()
	mc.view.RefreshResults(mc.service.Table())
	mc.view.UpdateStatus("Results cleared")
}

// ExportCSV writes the session results to a user-chosen file.
func (mc *MainController) ExportCSV() {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, mc.service.Table()); err != nil {
		mc.handleError("Export failed", err)
		return
	}
	mc.save(buf.Bytes(), "Results exported")
}

// SavePreset writes the current parameters as a YAML preset.
func (mc *MainController) SavePreset() {
	cfg, err := mc.view.Config()
	if err != nil {
		mc.handleError("Invalid parameters", err)
		return
	}
	data, err := config.Encode(cfg)
	if err != nil {
		mc.handleError("Preset encoding failed", err)
		return
	}
	mc.save(data, "Preset saved")
}

func (mc *MainController) save(data []byte, done string) {
	mc.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
			mc.handleError("Write failed", err)
			return
		}
		mc.view.UpdateStatus(done)
	})
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{"action": title})
	fyne.Do(func() {
		mc.view.UpdateStatus(title)
		mc.view.ShowError(fmt.Errorf("%s: %w", title, err))
	})
}
