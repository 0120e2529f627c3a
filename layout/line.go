package layout

import (
	"sort"
	"strings"

	"github.com/pagestitch/pagestitch/model"
	"github.com/pagestitch/pagestitch/text"
)

// FullWidthColumn is the column ID reserved for lines that span multiple
// columns (titles, figure captions, footnotes)
const FullWidthColumn = 0

// Line represents a single line of text on a page: an ordered set of
// fragments sharing a baseline within tolerance, sorted left to right.
type Line struct {
	// Fragments are the text fragments that make up this line
	Fragments []text.TextFragment

	// BBox is the bounding box of the line
	BBox model.BBox

	// Baseline is the representative baseline (maximum member baseline)
	Baseline float64

	// ColID is the reading column assigned by the column classifier.
	// FullWidthColumn (0) marks full-width content; columnar content is
	// numbered 1-based, increasing left to right.
	ColID int

	// Block is the reading-order block assigned by the block assembler.
	// Block numbers increase at every column transition on the page.
	Block int

	// Page is the 1-based page number the line belongs to
	Page int
}

// Text returns the line's assembled text. Fragments are joined directly;
// the inline merger is responsible for deciding where spaces belong.
func (l *Line) Text() string {
	if l == nil || len(l.Fragments) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range l.Fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// DominantFontSize returns the font size carrying the most horizontal extent
// in the line. Used by the tree builder to resolve the line's structural role.
func (l *Line) DominantFontSize() float64 {
	if l == nil || len(l.Fragments) == 0 {
		return 0
	}

	weights := make(map[float64]float64)
	for _, f := range l.Fragments {
		weights[f.FontSize] += f.Width
	}

	best, bestWeight := 0.0, -1.0
	for size, weight := range weights {
		if weight > bestWeight {
			best, bestWeight = size, weight
		}
	}
	return best
}

// IsEmpty reports whether the line has no visible text
func (l *Line) IsEmpty() bool {
	return l == nil || strings.TrimSpace(l.Text()) == ""
}

// recompute refreshes the line's bounding box and representative baseline
// from its current fragments
func (l *Line) recompute() {
	if len(l.Fragments) == 0 {
		l.BBox = model.BBox{}
		l.Baseline = 0
		return
	}

	bbox := l.Fragments[0].BBox()
	baseline := l.Fragments[0].Baseline()
	for _, f := range l.Fragments[1:] {
		bbox = bbox.Union(f.BBox())
		if b := f.Baseline(); b > baseline {
			baseline = b
		}
	}
	l.BBox = bbox
	l.Baseline = baseline
	l.Page = l.Fragments[0].Page
}

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// BaselineTolerance is the maximum baseline difference for two fragments
	// to share a line, in page coordinate units (default: 2.0)
	BaselineTolerance float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 2.0,
	}
}

// LineGrouper clusters fragments sharing a baseline into ordered text lines.
// Script detection must run first; see ScriptDetector.
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{config: config}
}

// Group clusters fragments into lines. Fragments are sorted by
// (baseline, left); a new line starts whenever a fragment's baseline
// differs from the running line's baseline by more than the tolerance.
// Fragments with near-equal baselines that overlap horizontally are both
// retained in left-to-right order; deduplication is an upstream concern.
// The input slice is not modified.
func (g *LineGrouper) Group(fragments []text.TextFragment) []Line {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]text.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		bi, bj := sorted[i].Baseline(), sorted[j].Baseline()
		if bi != bj {
			return bi < bj
		}
		return sorted[i].Left < sorted[j].Left
	})

	var lines []Line
	var current []text.TextFragment
	runningBaseline := 0.0

	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.SliceStable(current, func(i, j int) bool {
			return current[i].Left < current[j].Left
		})
		line := Line{Fragments: current}
		line.recompute()
		lines = append(lines, line)
		current = nil
	}

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			runningBaseline = frag.Baseline()
			continue
		}

		if absFloat64(frag.Baseline()-runningBaseline) <= g.config.BaselineTolerance {
			current = append(current, frag)
			if b := frag.Baseline(); b > runningBaseline {
				runningBaseline = b
			}
		} else {
			flush()
			current = append(current, frag)
			runningBaseline = frag.Baseline()
		}
	}
	flush()

	return lines
}

// medianLineHeight returns the median bounding-box height across lines.
// Used by the footnote-zone override and list spacing checks.
func medianLineHeight(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	heights := make([]float64, len(lines))
	for i, l := range lines {
		heights[i] = l.BBox.Height
	}
	sort.Float64s(heights)
	return heights[len(heights)/2]
}

// absFloat64 returns absolute value of float64
func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
