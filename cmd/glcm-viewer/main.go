package main

import (
	"flag"
	"fmt"
	"os"

	"glcm-texture/internal/config"
	"glcm-texture/internal/controllers"
	"glcm-texture/internal/glcm"
	"glcm-texture/internal/imageio"
	"glcm-texture/internal/logger"
	"glcm-texture/internal/models"
	"glcm-texture/internal/services"
	"glcm-texture/internal/shutdown"
	"glcm-texture/internal/timing"
	"glcm-texture/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/google/uuid"
)

const (
	AppName = "GLCM Texture"
	AppID   = "io.github.glcm-texture.viewer"
)

func main() {
	level := flag.String("log-level", "info", "debug, info, warn or error")
	preset := flag.String("config", "", "YAML or TOML preset to start from")
	flag.Parse()

	lvl, err := logger.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "glcm-viewer:", err)
		os.Exit(2)
	}
	log := logger.NewConsoleLogger(lvl).With(map[string]interface{}{"session": uuid.NewString()})

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(theme.DefaultTheme())
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1280, 800))

	table := models.NewResultsTable()
	svc := services.NewAnalysisService(log, timing.NewTracker(), table, imageio.LoadGray, imageio.PolygonMask)

	view := views.NewMainView(window)
	controller := controllers.NewMainController(svc, imageio.LoadGray, log)
	controller.SetMainView(view)

	if *preset != "" {
		cfg, err := loadPreset(*preset)
		if err != nil {
			log.Error("Viewer", err, map[string]interface{}{"preset": *preset})
			os.Exit(2)
		}
		view.SetConfig(cfg)
	}

	sm := shutdown.NewManager(log)
	sm.Register("window", func() { fyne.Do(fyneApp.Quit) })
	sm.Listen()
	window.SetOnClosed(sm.Shutdown)

	log.Info("Viewer", "starting", map[string]interface{}{"log_level": lvl.String()})
	view.Show()
	fyneApp.Run()
}

func loadPreset(path string) (glcm.Config, error) {
	p, err := config.LoadPreset(path)
	if err != nil {
		return glcm.Config{}, err
	}
	return p.Apply(glcm.DefaultConfig())
}
