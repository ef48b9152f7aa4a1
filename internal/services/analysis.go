package services

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/logger"
	"glcm-texture/internal/models"
	"glcm-texture/internal/roi"
	"glcm-texture/internal/timing"
)

// LoadFunc reads an image file as 8-bit grayscale.
type LoadFunc func(path string) (*glcm.Gray, error)

// PolygonFunc rasterises polygon vertices into a bounding-box ROI and mask.
type PolygonFunc func(points []image.Point) (image.Rectangle, *glcm.Mask, error)

// Region selects the part of an image to analyse. A zero Rect with no
// Polygon selects the whole image.
type Region struct {
	Rect    image.Rectangle
	Polygon []image.Point
}

// FileResult reports the outcome for one input file.
type FileResult struct {
	Path  string
	Batch models.Batch
	Err   error
}

// AnalysisService computes feature rows and appends them to a session table.
type AnalysisService struct {
	analyzer   *glcm.Analyzer
	tracker    *timing.Tracker
	table      *models.ResultsTable
	logger     logger.Logger
	load       LoadFunc
	polygon    PolygonFunc
	workerPool chan struct{}
}

func NewAnalysisService(log logger.Logger, tracker *timing.Tracker, table *models.ResultsTable, load LoadFunc, polygon PolygonFunc) *AnalysisService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	workers := make(chan struct{}, runtime.NumCPU())
	for i := 0; i < runtime.NumCPU(); i++ {
		workers <- struct{}{}
	}

	return &AnalysisService{
		analyzer:   glcm.NewAnalyzer(log, tracker),
		tracker:    tracker,
		table:      table,
		logger:     log,
		load:       load,
		polygon:    polygon,
		workerPool: workers,
	}
}

func (s *AnalysisService) Table() *models.ResultsTable {
	return s.table
}

// Reset starts a new session: the results table and the stage timings are
// cleared together.
func (s *AnalysisService) Reset() {
	s.table.Reset()
	s.tracker.Reset("")
	s.logger.Info("AnalysisService", "session reset", nil)
}

// Window resolves region against img.
func (s *AnalysisService) Window(img *glcm.Gray, region Region) (glcm.Window, error) {
	if img == nil {
		return glcm.Window{}, fmt.Errorf("%w: no image", glcm.ErrInvalidInput)
	}
	w := glcm.Window{Image: img, ROI: region.Rect}
	if len(region.Polygon) > 0 {
		if s.polygon == nil {
			return glcm.Window{}, fmt.Errorf("polygon regions are not supported")
		}
		r, mask, err := s.polygon(region.Polygon)
		if err != nil {
			return glcm.Window{}, err
		}
		w.ROI, w.Mask = r, mask
	}

	clipped, err := roi.Clip(w.ROI, img.Width, img.Height)
	if err != nil {
		return glcm.Window{}, err
	}
	w.ROI = clipped
	return w, nil
}

// Analyze computes img and appends the rows as one batch named source.
func (s *AnalysisService) Analyze(source string, img *glcm.Gray, region Region, cfg glcm.Config) (models.Batch, error) {
	rows, err := s.compute(img, region, cfg)
	if err != nil {
		return models.Batch{}, err
	}
	return s.append(source, rows)
}

func (s *AnalysisService) compute(img *glcm.Gray, region Region, cfg glcm.Config) ([]glcm.FeatureRow, error) {
	w, err := s.Window(img, region)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Compute(w, cfg)
}

func (s *AnalysisService) append(source string, rows []glcm.FeatureRow) (models.Batch, error) {
	batch, err := s.table.Append(source, rows)
	if err != nil {
		return models.Batch{}, err
	}
	s.logger.Info("AnalysisService", "rows appended", map[string]interface{}{
		"source": source,
		"batch":  batch.ID.String(),
		"rows":   batch.Count,
	})
	return batch, nil
}

// AnalyzeFiles loads and computes every path using the worker pool, then
// appends the successful ones in input order. Failed files add no rows.
func (s *AnalysisService) AnalyzeFiles(ctx context.Context, paths []string, region Region, cfg glcm.Config) []FileResult {
	results := make([]FileResult, len(paths))
	rows := make([][]glcm.FeatureRow, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].Path = path

		select {
		case <-s.workerPool:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { s.workerPool <- struct{}{} }()
			rows[i], results[i].Err = s.computeFile(ctx, path, region, cfg)
		}(i, path)
	}
	wg.Wait()

	for i := range results {
		if results[i].Err != nil {
			s.logger.Error("AnalysisService", results[i].Err, map[string]interface{}{
				"source": results[i].Path,
			})
			continue
		}
		results[i].Batch, results[i].Err = s.append(results[i].Path, rows[i])
	}
	return results
}

func (s *AnalysisService) computeFile(ctx context.Context, path string, region Region, cfg glcm.Config) ([]glcm.FeatureRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.load == nil {
		return nil, fmt.Errorf("no image loader configured")
	}
	img, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	rows, err := s.compute(img, region, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to analyse %s: %w", path, err)
	}
	return rows, nil
}
