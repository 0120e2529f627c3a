package pagestitch

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pagestitch/pagestitch/doctree"
	"github.com/pagestitch/pagestitch/layout"
)

// Config consolidates every heuristic threshold of the reconstruction
// pipeline in one place with documented defaults, so any single value can
// be overridden for deterministic testing. The zero value of a field means
// "use the default".
type Config struct {
	// BaselineTolerance is the line-grouping sensitivity (default: 2.0)
	BaselineTolerance float64 `json:"baseline_tolerance" yaml:"baseline_tolerance"`

	// GapTolerance is the inline-merge sensitivity (default: 1.5)
	GapTolerance float64 `json:"gap_tolerance" yaml:"gap_tolerance"`

	// ColumnGapThresholdRatio is the fraction of page width used for
	// column-start clustering (default: 0.25)
	ColumnGapThresholdRatio float64 `json:"column_gap_threshold_ratio" yaml:"column_gap_threshold_ratio"`

	// SingleColumnAlignmentRatio is the threshold for the single-column
	// override (default: 0.80)
	SingleColumnAlignmentRatio float64 `json:"single_column_alignment_ratio" yaml:"single_column_alignment_ratio"`

	// SmoothingMinGroupSize is the minimum run length before smoothing
	// reclassifies it (default: 3)
	SmoothingMinGroupSize int `json:"smoothing_min_group_size" yaml:"smoothing_min_group_size"`

	// RasterVectorOverlapThreshold is the redundancy threshold for media
	// deduplication (default: 0.2)
	RasterVectorOverlapThreshold float64 `json:"raster_vector_overlap_threshold" yaml:"raster_vector_overlap_threshold"`

	// KeepRasters selects the raster-wins survivor policy for redundant
	// raster/vector pairs; the default keeps vectors
	KeepRasters bool `json:"keep_rasters" yaml:"keep_rasters"`

	// MinListItems is the list-confirmation threshold: further matching
	// lines required after the first marker line (default: 2; strong
	// bullet glyphs require only 1)
	MinListItems int `json:"min_list_items" yaml:"min_list_items"`

	// Workers is the number of pages processed concurrently (default: 4)
	Workers int `json:"workers" yaml:"workers"`

	// Logger receives per-page diagnostics (default: slog.Default())
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		BaselineTolerance:            2.0,
		GapTolerance:                 1.5,
		ColumnGapThresholdRatio:      0.25,
		SingleColumnAlignmentRatio:   0.80,
		SmoothingMinGroupSize:        3,
		RasterVectorOverlapThreshold: 0.2,
		MinListItems:                 2,
		Workers:                      4,
	}
}

// LoadConfig reads a YAML configuration file. Absent fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.applyDefaults()
	return config, nil
}

// applyDefaults fills zero-valued fields with their defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaselineTolerance <= 0 {
		c.BaselineTolerance = defaults.BaselineTolerance
	}
	if c.GapTolerance <= 0 {
		c.GapTolerance = defaults.GapTolerance
	}
	if c.ColumnGapThresholdRatio <= 0 {
		c.ColumnGapThresholdRatio = defaults.ColumnGapThresholdRatio
	}
	if c.SingleColumnAlignmentRatio <= 0 {
		c.SingleColumnAlignmentRatio = defaults.SingleColumnAlignmentRatio
	}
	if c.SmoothingMinGroupSize <= 0 {
		c.SmoothingMinGroupSize = defaults.SmoothingMinGroupSize
	}
	if c.RasterVectorOverlapThreshold <= 0 {
		c.RasterVectorOverlapThreshold = defaults.RasterVectorOverlapThreshold
	}
	if c.MinListItems <= 0 {
		c.MinListItems = defaults.MinListItems
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// analyzerConfig projects the consolidated config onto the layout engine's
// per-stage configuration
func (c Config) analyzerConfig() layout.AnalyzerConfig {
	ac := layout.DefaultAnalyzerConfig()
	ac.Line.BaselineTolerance = c.BaselineTolerance
	ac.Merge.GapTolerance = c.GapTolerance
	ac.Column.GapThresholdRatio = c.ColumnGapThresholdRatio
	ac.Column.SingleColumnAlignmentRatio = c.SingleColumnAlignmentRatio
	ac.Column.SmoothingMinGroupSize = c.SmoothingMinGroupSize
	ac.Media.OverlapThreshold = c.RasterVectorOverlapThreshold
	if c.KeepRasters {
		ac.Media.Policy = layout.KeepRaster
	}
	ac.Logger = c.Logger
	return ac
}

// builderConfig projects the consolidated config onto the tree builder
func (c Config) builderConfig() doctree.BuilderConfig {
	bc := doctree.DefaultBuilderConfig()
	bc.MinListItems = c.MinListItems
	return bc
}
