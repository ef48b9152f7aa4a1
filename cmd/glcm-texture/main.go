package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"glcm-texture/internal/config"
	"glcm-texture/internal/export"
	"glcm-texture/internal/imageio"
	"glcm-texture/internal/logger"
	"glcm-texture/internal/models"
	"glcm-texture/internal/services"
	"glcm-texture/internal/shutdown"
	"glcm-texture/internal/timing"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := config.Parse("glcm-texture", args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "glcm-texture:", err)
		return 2
	}

	level, err := logger.ParseLevel(opts.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "glcm-texture:", err)
		return 2
	}
	base := logger.NewConsoleLogger(level)
	if opts.JSONLogs {
		base = logger.NewJSONLogger(os.Stderr, level)
	}
	log := base.With(map[string]interface{}{"run": uuid.NewString()})

	sm := shutdown.NewManager(log)
	sm.Listen()
	defer sm.Shutdown()

	tracker := timing.NewTracker()
	svc := services.NewAnalysisService(log, tracker, models.NewResultsTable(), imageio.LoadGray, imageio.PolygonMask)

	log.Info("CLI", "analysis started", map[string]interface{}{
		"images":   len(opts.Images),
		"step":     opts.Config.Step,
		"features": opts.Config.Features.String(),
	})

	region := services.Region{Rect: opts.ROI, Polygon: opts.Polygon}
	failed := 0
	for _, r := range svc.AnalyzeFiles(sm.Context(), opts.Images, region, opts.Config) {
		if r.Err != nil {
			failed++
		}
	}

	if err := export.WriteText(os.Stdout, svc.Table()); err != nil {
		log.Error("CLI", err, nil)
		return 1
	}
	if opts.CSVPath != "" {
		if err := writeCSV(opts.CSVPath, svc.Table()); err != nil {
			log.Error("CLI", err, map[string]interface{}{"path": opts.CSVPath})
			return 1
		}
	}

	if opts.Verbose {
		for _, op := range tracker.Operations() {
			fmt.Fprintf(os.Stderr, "%-10s runs=%d avg=%v\n", op, len(tracker.GetTimings(op)), tracker.GetAverageTime(op))
		}
	}

	log.Info("CLI", "analysis finished", map[string]interface{}{
		"rows":   svc.Table().Len(),
		"failed": failed,
	})
	if failed > 0 {
		return 1
	}
	return 0
}

func writeCSV(path string, table *models.ResultsTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.WriteCSV(f, table)
}
