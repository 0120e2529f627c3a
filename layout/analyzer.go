package layout

import (
	"log/slog"

	"github.com/pagestitch/pagestitch/model"
	"github.com/pagestitch/pagestitch/text"
)

// AnalyzerConfig holds configuration for the page analyzer. Each pipeline
// stage has its own sub-configuration with documented defaults, so any
// single threshold can be overridden for deterministic testing.
type AnalyzerConfig struct {
	// Script detection configuration
	Script ScriptConfig

	// Line grouping configuration
	Line LineConfig

	// Inline merge configuration
	Merge MergeConfig

	// Column classification configuration
	Column ColumnConfig

	// Media deduplication and association configuration
	Media MediaConfig

	// Logger receives per-page diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Script: DefaultScriptConfig(),
		Line:   DefaultLineConfig(),
		Merge:  DefaultMergeConfig(),
		Column: DefaultColumnConfig(),
		Media:  DefaultMediaConfig(),
	}
}

// PageStats summarizes data-quality anomalies encountered on one page.
// Anomalies degrade to documented defaults and never abort processing;
// callers report these counts as a summary rather than as interruptions.
type PageStats struct {
	// Page is the 1-based page number
	Page int

	// DroppedFragments counts fragments discarded for malformed geometry
	DroppedFragments int

	// ScriptMerges counts superscript/subscript fragments absorbed
	ScriptMerges int

	// InlineMerges counts adjacent fragment pairs merged within lines
	InlineMerges int

	// SingleColumnOverride is true when the page was forced single-column
	SingleColumnOverride bool

	// SmoothedRuns counts short column runs reassigned by smoothing
	SmoothedRuns int

	// DroppedMedia counts regions removed by raster/vector deduplication
	DroppedMedia int

	// UnplacedMedia counts regions appended as fallback placements
	UnplacedMedia int

	// Empty is true when the page had no usable fragments
	Empty bool
}

// Item is one element of a page's linear reading sequence: either a text
// line or a media region at its resolved insertion position.
type Item struct {
	Line  *Line
	Media *model.MediaRegion
}

// PageResult is the outcome of analyzing one page
type PageResult struct {
	// Items is the page's reading sequence
	Items []Item

	// Lines is the ordered, column- and block-annotated line sequence
	Lines []Line

	// Stats summarizes the page's anomalies
	Stats PageStats
}

// PageAnalyzer runs the full layout pipeline for one page: script merge,
// line grouping, inline merge, column classification, reading-order
// assembly, and media association. Pages are self-contained, so analyzers
// may run concurrently across pages; the analyzer itself holds no mutable
// state between calls and never modifies its inputs.
type PageAnalyzer struct {
	config  AnalyzerConfig
	scripts *ScriptDetector
	grouper *LineGrouper
	merger  *InlineMerger
	columns *ColumnClassifier
	blocks  *BlockAssembler
	media   *MediaAssociator
	logger  *slog.Logger
}

// NewPageAnalyzer creates a page analyzer with default configuration
func NewPageAnalyzer() *PageAnalyzer {
	return NewPageAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewPageAnalyzerWithConfig creates a page analyzer with custom configuration
func NewPageAnalyzerWithConfig(config AnalyzerConfig) *PageAnalyzer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PageAnalyzer{
		config:  config,
		scripts: NewScriptDetectorWithConfig(config.Script),
		grouper: NewLineGrouperWithConfig(config.Line),
		merger:  NewInlineMergerWithConfig(config.Merge),
		columns: NewColumnClassifierWithConfig(config.Column),
		blocks:  NewBlockAssembler(),
		media:   NewMediaAssociatorWithConfig(config.Media),
		logger:  logger,
	}
}

// Analyze reconstructs one page's reading sequence from its fragments and
// media regions. Data-quality problems degrade to defaults and are counted
// in the result's stats; Analyze itself never fails.
func (a *PageAnalyzer) Analyze(page int, fragments []text.TextFragment, media []model.MediaRegion, pageWidth, pageHeight float64) *PageResult {
	result := &PageResult{Stats: PageStats{Page: page}}

	cleaned, dropped := text.Sanitize(fragments)
	result.Stats.DroppedFragments = dropped
	if dropped > 0 {
		a.logger.Debug("dropped malformed fragments", "page", page, "count", dropped)
	}

	if len(cleaned) == 0 {
		result.Stats.Empty = true
		result.Items, result.Stats.DroppedMedia, result.Stats.UnplacedMedia = a.mediaOnly(media)
		return result
	}

	merged, scriptMerges := a.scripts.DetectAndMerge(cleaned)
	result.Stats.ScriptMerges = scriptMerges

	lines := a.grouper.Group(merged)
	for i := range lines {
		var n int
		lines[i], n = a.merger.Merge(lines[i])
		result.Stats.InlineMerges += n
	}

	colResult := a.columns.Assign(lines, pageWidth, pageHeight)
	result.Stats.SingleColumnOverride = colResult.SingleColumnOverride
	result.Stats.SmoothedRuns = colResult.SmoothedRuns
	if colResult.SingleColumnOverride {
		a.logger.Debug("single-column override", "page", page)
	}

	ordered := a.blocks.Sequence(colResult.Lines)
	result.Lines = ordered

	surviving, droppedMedia := a.media.Deduplicate(media)
	result.Stats.DroppedMedia = droppedMedia

	placements := a.media.Associate(ordered, surviving)
	result.Items = spliceMedia(ordered, placements)
	for _, p := range placements {
		if p.Fallback {
			result.Stats.UnplacedMedia++
			a.logger.Debug("media region had no insertion point",
				"page", page, "region", p.Region.ID)
		}
	}

	return result
}

// mediaOnly builds the sequence for a page with no usable text
func (a *PageAnalyzer) mediaOnly(media []model.MediaRegion) ([]Item, int, int) {
	surviving, dropped := a.media.Deduplicate(media)
	items := make([]Item, 0, len(surviving))
	for i := range surviving {
		region := surviving[i]
		items = append(items, Item{Media: &region})
	}
	return items, dropped, len(surviving)
}

// spliceMedia interleaves media placements into the ordered line sequence
func spliceMedia(lines []Line, placements []Placement) []Item {
	items := make([]Item, 0, len(lines)+len(placements))

	next := 0
	emit := func(idx int) {
		for next < len(placements) && placements[next].Index == idx {
			region := placements[next].Region
			items = append(items, Item{Media: &region})
			next++
		}
	}

	emit(-1)
	for i := range lines {
		line := lines[i]
		items = append(items, Item{Line: &line})
		emit(i)
	}

	// Placements beyond the last line (fallbacks on empty tail)
	for ; next < len(placements); next++ {
		region := placements[next].Region
		items = append(items, Item{Media: &region})
	}

	return items
}
