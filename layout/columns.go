package layout

import (
	"sort"
)

// ColumnConfig holds configuration for column classification
type ColumnConfig struct {
	// GapThresholdRatio is the fraction of page width used when clustering
	// line left edges into candidate column starts (default: 0.25)
	GapThresholdRatio float64

	// FullWidthRatio is the minimum width, as a fraction of page width, for
	// a line to be classified full-width on its own (default: 0.45)
	FullWidthRatio float64

	// LeftMarginRatio and RightMarginRatio define the near-margin zones: a
	// line spanning from inside the left zone to inside the right zone is
	// full-width regardless of its width ratio (defaults: 0.05 and 0.95)
	LeftMarginRatio  float64
	RightMarginRatio float64

	// SingleColumnAlignmentRatio is the fraction of lines that must share
	// the modal left position for the page to be forced single-column
	// (default: 0.80)
	SingleColumnAlignmentRatio float64

	// AlignmentWindow is the distance from the modal left position within
	// which a line counts as sharing it (default: 20)
	AlignmentWindow float64

	// MaxWeaveTransitions is the number of 0<->1 column transitions, walked
	// in baseline order, above which the page is forced single-column
	// (default: 5)
	MaxWeaveTransitions int

	// SmoothingMinGroupSize is the minimum length of a run of identical
	// column IDs; shorter runs flanked by a different but equal ID on both
	// sides are reassigned to the flanking ID (default: 3)
	SmoothingMinGroupSize int

	// SmoothingFullWidthRatio protects full-width runs from smoothing: a
	// run of column 0 containing a line at least this fraction of the page
	// width is never reassigned (default: 0.60)
	SmoothingFullWidthRatio float64

	// FootnoteZoneRatio defines the bottom zone of the page (as a fraction
	// of page height) where narrow continuations of full-width lines
	// inherit column 0 (default: 0.75)
	FootnoteZoneRatio float64

	// FootnoteGapFactor is the maximum vertical gap to the line above, as a
	// multiple of the median line height, for the footnote-zone override to
	// apply (default: 2.0)
	FootnoteGapFactor float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		GapThresholdRatio:          0.25,
		FullWidthRatio:             0.45,
		LeftMarginRatio:            0.05,
		RightMarginRatio:           0.95,
		SingleColumnAlignmentRatio: 0.80,
		AlignmentWindow:            20.0,
		MaxWeaveTransitions:        5,
		SmoothingMinGroupSize:      3,
		SmoothingFullWidthRatio:    0.60,
		FootnoteZoneRatio:          0.75,
		FootnoteGapFactor:          2.0,
	}
}

// ColumnClassifier determines how many reading columns a page has and
// assigns each line a column ID. Column 0 is reserved for full-width
// content; real columns are numbered 1-based, left to right.
//
// Naive per-line classification is unstable on pages with short headers,
// indented quotes, or footnote call-outs: these produce spurious
// alternation between column IDs ("weaving") that corrupts reading order
// downstream. The classifier therefore applies a single-column override and
// a run-smoothing pass after the initial assignment.
type ColumnClassifier struct {
	config ColumnConfig
}

// NewColumnClassifier creates a column classifier with default configuration
func NewColumnClassifier() *ColumnClassifier {
	return &ColumnClassifier{config: DefaultColumnConfig()}
}

// NewColumnClassifierWithConfig creates a column classifier with custom configuration
func NewColumnClassifierWithConfig(config ColumnConfig) *ColumnClassifier {
	return &ColumnClassifier{config: config}
}

// ColumnResult describes the classification outcome for one page
type ColumnResult struct {
	// Lines are the classified lines in baseline order, with ColID set
	Lines []Line

	// ColumnStarts are the detected column start X positions, left to right
	ColumnStarts []float64

	// SingleColumnOverride is true when one of the single-column rules
	// fired and every line was forced into column 1
	SingleColumnOverride bool

	// SmoothedRuns is the number of short runs reassigned by smoothing
	SmoothedRuns int
}

// Assign classifies every line. It returns a new annotated slice in
// baseline order; the input slice is not modified.
func (c *ColumnClassifier) Assign(lines []Line, pageWidth, pageHeight float64) *ColumnResult {
	result := &ColumnResult{}
	if len(lines) == 0 {
		return result
	}

	work := make([]Line, len(lines))
	copy(work, lines)
	sort.SliceStable(work, func(i, j int) bool {
		if work[i].Baseline != work[j].Baseline {
			return work[i].Baseline < work[j].Baseline
		}
		return work[i].BBox.Left < work[j].BBox.Left
	})

	colStarts := c.clusterColumnStarts(work, pageWidth)
	result.ColumnStarts = colStarts

	for i := range work {
		work[i].ColID = c.classifyLine(work[i], colStarts, pageWidth)
	}

	if c.isSingleColumn(work, colStarts) {
		for i := range work {
			work[i].ColID = 1
		}
		result.SingleColumnOverride = true
		result.Lines = work
		return result
	}

	result.SmoothedRuns = c.smooth(work, pageWidth)

	// The footnote-zone override runs after smoothing so that it takes
	// precedence when both rules would fire with conflicting outcomes.
	c.applyFootnoteZone(work, pageHeight)

	result.Lines = work
	return result
}

// clusterColumnStarts clusters line left edges into candidate column start
// positions. Lefts are sorted and greedily merged into the current cluster
// while they stay within GapThresholdRatio of page width from the cluster
// mean; the cluster means become the column starts.
func (c *ColumnClassifier) clusterColumnStarts(lines []Line, pageWidth float64) []float64 {
	lefts := make([]float64, len(lines))
	for i, l := range lines {
		lefts[i] = l.BBox.Left
	}
	sort.Float64s(lefts)

	threshold := pageWidth * c.config.GapThresholdRatio

	var starts []float64
	clusterSum := 0.0
	clusterCount := 0

	flush := func() {
		if clusterCount > 0 {
			starts = append(starts, clusterSum/float64(clusterCount))
		}
		clusterSum, clusterCount = 0, 0
	}

	for _, left := range lefts {
		if clusterCount > 0 {
			mean := clusterSum / float64(clusterCount)
			if absFloat64(left-mean) > threshold {
				flush()
			}
		}
		clusterSum += left
		clusterCount++
	}
	flush()

	return starts
}

// classifyLine assigns a single line's column ID from the detected starts
func (c *ColumnClassifier) classifyLine(line Line, colStarts []float64, pageWidth float64) int {
	left := line.BBox.Left
	right := line.BBox.Right()

	nearLeftMargin := left <= pageWidth*c.config.LeftMarginRatio
	nearRightMargin := right >= pageWidth*c.config.RightMarginRatio
	if (nearLeftMargin && nearRightMargin) || line.BBox.Width >= pageWidth*c.config.FullWidthRatio {
		return FullWidthColumn
	}

	if len(colStarts) == 0 {
		return 1
	}

	// Bucket by the midpoints between consecutive column starts
	col := 1
	for i := 0; i < len(colStarts)-1; i++ {
		midpoint := (colStarts[i] + colStarts[i+1]) / 2
		if left >= midpoint {
			col = i + 2
		}
	}
	return col
}

// isSingleColumn applies the three single-column rules:
// (a) at most one column start; (b) the dominant share of lines aligns with
// the modal left position; (c) the page weaves between columns 0 and 1.
func (c *ColumnClassifier) isSingleColumn(lines []Line, colStarts []float64) bool {
	if len(colStarts) <= 1 {
		return true
	}

	if c.modalAlignmentShare(lines) > c.config.SingleColumnAlignmentRatio {
		return true
	}

	transitions := 0
	prev := -1
	for _, l := range lines {
		if l.ColID != FullWidthColumn && l.ColID != 1 {
			prev = -1
			continue
		}
		if prev >= 0 && l.ColID != prev {
			transitions++
		}
		prev = l.ColID
	}
	return transitions > c.config.MaxWeaveTransitions
}

// modalAlignmentShare returns the largest fraction of lines whose left edge
// falls within the alignment window of any single line's left position
func (c *ColumnClassifier) modalAlignmentShare(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}

	best := 0
	for _, anchor := range lines {
		count := 0
		for _, l := range lines {
			if absFloat64(l.BBox.Left-anchor.BBox.Left) <= c.config.AlignmentWindow {
				count++
			}
		}
		if count > best {
			best = count
		}
	}
	return float64(best) / float64(len(lines))
}

// smooth reassigns short runs of identical column IDs that are flanked on
// both sides by a different but equal ID. A run of column 0 containing a
// line wider than SmoothingFullWidthRatio of the page is never reassigned:
// genuine full-width content must survive between columns.
func (c *ColumnClassifier) smooth(lines []Line, pageWidth float64) int {
	if len(lines) < 3 {
		return 0
	}

	smoothed := 0
	i := 0
	for i < len(lines) {
		j := i
		for j < len(lines) && lines[j].ColID == lines[i].ColID {
			j++
		}
		runLen := j - i

		if runLen < c.config.SmoothingMinGroupSize && i > 0 && j < len(lines) {
			before := lines[i-1].ColID
			after := lines[j].ColID
			if before == after && before != lines[i].ColID && !c.protectedRun(lines[i:j], pageWidth) {
				for k := i; k < j; k++ {
					lines[k].ColID = before
				}
				smoothed++
				// Rescan from the run before the reassignment so newly
				// joined runs are measured as one.
				i = maxInt(i-1, 0)
				continue
			}
		}
		i = j
	}
	return smoothed
}

// protectedRun reports whether a column-0 run contains genuinely full-width
// content that smoothing must not reassign
func (c *ColumnClassifier) protectedRun(run []Line, pageWidth float64) bool {
	if len(run) == 0 || run[0].ColID != FullWidthColumn {
		return false
	}
	for _, l := range run {
		if l.BBox.Width >= pageWidth*c.config.SmoothingFullWidthRatio {
			return true
		}
	}
	return false
}

// applyFootnoteZone inherits column 0 onto narrow lines in the bottom zone
// of the page that directly continue a full-width line above them. Footnote
// text commonly ends with a short last line that would otherwise fall below
// the full-width threshold.
func (c *ColumnClassifier) applyFootnoteZone(lines []Line, pageHeight float64) {
	if len(lines) < 2 || pageHeight <= 0 {
		return
	}

	median := medianLineHeight(lines)
	maxGap := median * c.config.FootnoteGapFactor
	zoneTop := pageHeight * c.config.FootnoteZoneRatio

	for i := 1; i < len(lines); i++ {
		line := &lines[i]
		if line.ColID == FullWidthColumn || line.BBox.Top < zoneTop {
			continue
		}

		above := lines[i-1]
		if above.ColID != FullWidthColumn {
			continue
		}
		if above.BBox.Width <= line.BBox.Width {
			continue
		}

		gap := line.BBox.Top - above.BBox.Bottom()
		if gap <= maxGap {
			line.ColID = FullWidthColumn
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
