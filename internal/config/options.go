package config

import (
	"flag"
	"fmt"
	"image"
	"io"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/roi"
)

// Options holds everything the command line selects.
type Options struct {
	Config   glcm.Config
	ROI      image.Rectangle
	Polygon  []image.Point
	CSVPath  string
	LogLevel string
	JSONLogs bool
	Verbose  bool
	Images   []string
}

// Parse reads command-line arguments. Values from -config are applied first;
// explicitly given flags override them.
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] image...\n", name)
		fs.PrintDefaults()
	}

	def := glcm.DefaultConfig()
	step := fs.Int("step", def.Step, "pixel distance between pair members")
	features := fs.String("features", def.Features.String(), "comma separated feature keys, or \"all\"")
	basic := fs.Bool("basic", def.ShowBasic, "include moments, sum and window geometry")
	counts := fs.Bool("counts", def.CheckCounts, "include the pair count")
	rect := fs.String("roi", "", "rectangle x,y,w,h (default whole image)")
	polygon := fs.String("polygon", "", "polygon vertices \"x1,y1 x2,y2 ...\"")
	preset := fs.String("config", "", "YAML or TOML preset file")
	csvPath := fs.String("csv", "", "write results as CSV to this file")
	level := fs.String("log-level", "info", "debug, info, warn or error")
	jsonLogs := fs.Bool("json-logs", false, "log JSON lines instead of console output")
	verbose := fs.Bool("v", false, "print stage timings")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	if *preset != "" {
		p, err := LoadPreset(*preset)
		if err != nil {
			return nil, err
		}
		if cfg, err = p.Apply(cfg); err != nil {
			return nil, err
		}
	}

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "step":
			cfg.Step = *step
		case "basic":
			cfg.ShowBasic = *basic
		case "counts":
			cfg.CheckCounts = *counts
		case "features":
			set, err := glcm.ParseFeatureSet(*features)
			if err != nil {
				parseErr = err
				return
			}
			cfg.Features = set
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &Options{
		Config:   cfg,
		CSVPath:  *csvPath,
		LogLevel: *level,
		JSONLogs: *jsonLogs,
		Verbose:  *verbose,
		Images:   fs.Args(),
	}

	if *rect != "" && *polygon != "" {
		return nil, fmt.Errorf("%w: -roi and -polygon are mutually exclusive", glcm.ErrInvalidInput)
	}
	r, err := roi.ParseRect(*rect)
	if err != nil {
		return nil, err
	}
	opts.ROI = r
	if *polygon != "" {
		if opts.Polygon, err = roi.ParsePolygon(*polygon); err != nil {
			return nil, err
		}
	}

	if len(opts.Images) == 0 {
		return nil, fmt.Errorf("no images given")
	}
	return opts, nil
}
