// Package config loads feature-selection presets and command-line options
// into a glcm.Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"glcm-texture/internal/glcm"
)

// Preset is the on-disk form of a configuration. Absent fields keep the
// value of the configuration the preset is applied to.
type Preset struct {
	Step        *int     `yaml:"step" toml:"step"`
	ShowBasic   *bool    `yaml:"show_basic" toml:"show_basic"`
	CheckCounts *bool    `yaml:"check_counts" toml:"check_counts"`
	Features    []string `yaml:"features" toml:"features"`
}

// LoadPreset reads a YAML (.yaml, .yml) or TOML (.toml) preset.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	var p Preset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unknown preset format %q", ext)
	}
	return &p, nil
}

// Apply overlays the preset on base. A non-nil feature list replaces the
// selection entirely.
func (p *Preset) Apply(base glcm.Config) (glcm.Config, error) {
	cfg := base
	if p.Step != nil {
		cfg.Step = *p.Step
	}
	if p.ShowBasic != nil {
		cfg.ShowBasic = *p.ShowBasic
	}
	if p.CheckCounts != nil {
		cfg.CheckCounts = *p.CheckCounts
	}
	if p.Features != nil {
		set, err := glcm.ParseFeatureSet(strings.Join(p.Features, ","))
		if err != nil {
			return glcm.Config{}, err
		}
		cfg.Features = set
	}
	if err := cfg.Validate(); err != nil {
		return glcm.Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as a YAML preset, listing features by key.
func Encode(cfg glcm.Config) ([]byte, error) {
	step, basic, counts := cfg.Step, cfg.ShowBasic, cfg.CheckCounts
	p := Preset{Step: &step, ShowBasic: &basic, CheckCounts: &counts, Features: make([]string, 0)}
	for _, f := range cfg.Features.Features() {
		p.Features = append(p.Features, f.Key())
	}
	return yaml.Marshal(&p)
}
