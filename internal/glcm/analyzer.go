package glcm

import (
	"context"
	"time"

	"glcm-texture/internal/logger"
	"glcm-texture/internal/timing"
)

// Compute builds the five matrices of w and reduces them to output rows
// ordered 0, 45, 90, 135, Average. Invalid input is reported before any work
// is done; degenerate directions yield NaN values, not errors.
func Compute(w Window, cfg Config) ([]FeatureRow, error) {
	rows, _, err := compute(context.Background(), w, cfg, nil)
	return rows, err
}

func compute(ctx context.Context, w Window, cfg Config, tracker *timing.Tracker) ([]FeatureRow, *MatrixSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	buildCtx := tracker.StartTiming(ctx, "build")
	set, err := Build(w, cfg.Step)
	tracker.EndTiming(buildCtx)
	if err != nil {
		return nil, nil, err
	}

	featureCtx := tracker.StartTiming(ctx, "features")
	var all [len(Directions)]*stats
	for _, d := range Directions {
		all[d] = newStats(set.Matrix(d))
	}
	rows := assemble(w, set, all, cfg)
	tracker.EndTiming(featureCtx)

	return rows, set, nil
}

// Analyzer wraps Compute with logging and stage timing.
type Analyzer struct {
	logger  logger.Logger
	tracker *timing.Tracker
}

// NewAnalyzer accepts a nil logger (discard) and a nil tracker (no timing).
func NewAnalyzer(log logger.Logger, tracker *timing.Tracker) *Analyzer {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Analyzer{logger: log, tracker: tracker}
}

func (a *Analyzer) Compute(w Window, cfg Config) ([]FeatureRow, error) {
	start := time.Now()
	rows, set, err := compute(context.Background(), w, cfg, a.tracker)
	if err != nil {
		a.logger.Error("Analyzer", err, map[string]interface{}{
			"step": cfg.Step,
		})
		return nil, err
	}

	counts := make(map[string]interface{}, len(Directions))
	for _, d := range Directions {
		m := set.Matrix(d)
		counts[d.String()] = m.Counter()
		if m.Degenerate() {
			a.logger.Warning("Analyzer", "no pixel pairs for direction, values are NaN", map[string]interface{}{
				"direction": d.String(),
				"step":      cfg.Step,
				"roi":       w.Bounds().String(),
			})
		}
	}

	fields := map[string]interface{}{
		"roi":      w.Bounds().String(),
		"step":     cfg.Step,
		"pixels":   set.PixelCount,
		"features": cfg.Features.String(),
		"counts":   counts,
		"elapsed":  time.Since(start).String(),
	}
	if w.Mask != nil {
		fields["mask_pixels"] = w.Mask.Count()
	}
	a.logger.Debug("Analyzer", "features computed", fields)
	return rows, nil
}
