package layout

import (
	"strings"
	"unicode"

	"github.com/pagestitch/pagestitch/text"
)

// MergeConfig holds configuration for inline fragment merging
type MergeConfig struct {
	// GapTolerance is the maximum horizontal gap deviation for merging two
	// adjacent fragments (default: 1.5)
	GapTolerance float64

	// SpaceWidth is the estimated width of a single rendered space,
	// used by the space-start pass (default: 1.0)
	SpaceWidth float64
}

// DefaultMergeConfig returns sensible default configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		GapTolerance: 1.5,
		SpaceWidth:   1.0,
	}
}

// InlineMerger collapses adjacent fragments within a line into fewer, larger
// text runs. Three ordered rules are checked per adjacent pair; the first
// matching rule wins and the rules are mutually exclusive per pair:
//
//  1. trailing-space: left fragment ends with whitespace, right one does
//     not start with whitespace, and the gap is within tolerance
//  2. zero-gap: the gap is within tolerance regardless of whitespace
//     (fonts with no inter-word spacing, runs right after a script merge)
//  3. space-start: right fragment starts with whitespace and the gap matches
//     the estimated width of a single space
//
// Merging is idempotent: re-running the merger on an already-merged line
// produces the same result.
type InlineMerger struct {
	config MergeConfig
}

// NewInlineMerger creates an inline merger with default configuration
func NewInlineMerger() *InlineMerger {
	return &InlineMerger{config: DefaultMergeConfig()}
}

// NewInlineMergerWithConfig creates an inline merger with custom configuration
func NewInlineMergerWithConfig(config MergeConfig) *InlineMerger {
	return &InlineMerger{config: config}
}

// Merge returns a new line with adjacent fragments merged. ColID, Block and
// the line's representative baseline are unchanged.
//
// Returns the merged line and the number of pair merges performed.
func (m *InlineMerger) Merge(line Line) (Line, int) {
	if len(line.Fragments) < 2 {
		return line, 0
	}

	merged := make([]text.TextFragment, 0, len(line.Fragments))
	merged = append(merged, line.Fragments[0])
	merges := 0

	for _, next := range line.Fragments[1:] {
		last := &merged[len(merged)-1]
		joined, ok := m.mergePair(*last, next)
		if ok {
			*last = joined
			merges++
		} else {
			merged = append(merged, next)
		}
	}

	result := line
	result.Fragments = merged
	result.recompute()
	return result, merges
}

// mergePair applies the three ordered rules to one adjacent pair
func (m *InlineMerger) mergePair(a, b text.TextFragment) (text.TextFragment, bool) {
	gap := b.Left - a.Right()

	endsWithSpace := endsWithWhitespace(a.Text)
	startsWithSpace := startsWithWhitespace(b.Text)

	// Pass 1: trailing-space
	if endsWithSpace && !startsWithSpace && absFloat64(gap) <= m.config.GapTolerance {
		return m.join(a, b, ""), true
	}

	// Pass 2: zero-gap
	if absFloat64(gap) <= m.config.GapTolerance {
		return m.join(a, b, ""), true
	}

	// Pass 3: space-start
	if startsWithSpace && absFloat64(gap-m.config.SpaceWidth) <= m.config.GapTolerance {
		joined := a
		joined.Text = a.Text + " " + strings.TrimLeftFunc(b.Text, unicode.IsSpace)
		return m.extend(joined, b), true
	}

	return text.TextFragment{}, false
}

// join concatenates two fragments with an optional separator, keeping the
// left fragment's position and font
func (m *InlineMerger) join(a, b text.TextFragment, sep string) text.TextFragment {
	joined := a
	joined.Text = a.Text + sep + b.Text
	return m.extend(joined, b)
}

// extend grows the fragment's box to cover the absorbed fragment
func (m *InlineMerger) extend(f, absorbed text.TextFragment) text.TextFragment {
	if r := absorbed.Right(); r > f.Right() {
		f.Width = r - f.Left
	}
	if absorbed.Top < f.Top {
		bottom := f.Top + f.Height
		f.Top = absorbed.Top
		f.Height = bottom - f.Top
	}
	if b := absorbed.Top + absorbed.Height; b > f.Top+f.Height {
		f.Height = b - f.Top
	}
	return f
}

func endsWithWhitespace(s string) bool {
	if s == "" {
		return false
	}
	return strings.TrimRightFunc(s, unicode.IsSpace) != s
}

func startsWithWhitespace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}
