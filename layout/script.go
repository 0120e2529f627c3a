package layout

import (
	"sort"
	"unicode/utf8"

	"github.com/pagestitch/pagestitch/text"
)

// ScriptConfig holds configuration for superscript/subscript detection
type ScriptConfig struct {
	// MaxWidth is the maximum width of a script candidate (default: 20)
	MaxWidth float64

	// MaxHeight is the maximum height of a script candidate (default: 15)
	MaxHeight float64

	// MaxRunes is the maximum text length of a script candidate (default: 3)
	MaxRunes int

	// MaxGap is the maximum edge-to-edge horizontal distance between a
	// candidate and its parent (default: 5)
	MaxGap float64

	// SuperscriptMinOffset and SuperscriptMaxOffset bound the candidate's
	// top offset relative to the parent's top for a superscript
	// (default: -3 inclusive to 3 exclusive)
	SuperscriptMinOffset float64
	SuperscriptMaxOffset float64

	// SubscriptMaxOffset bounds the top offset for a subscript; the range is
	// SuperscriptMaxOffset inclusive to SubscriptMaxOffset inclusive
	// (default: 10)
	SubscriptMaxOffset float64
}

// DefaultScriptConfig returns sensible default configuration
func DefaultScriptConfig() ScriptConfig {
	return ScriptConfig{
		MaxWidth:             20.0,
		MaxHeight:            15.0,
		MaxRunes:             3,
		MaxGap:               5.0,
		SuperscriptMinOffset: -3.0,
		SuperscriptMaxOffset: 3.0,
		SubscriptMaxOffset:   10.0,
	}
}

// ScriptDetector identifies superscript and subscript fragments and merges
// them into their adjacent parent fragment's text run.
//
// It must run before line grouping: baseline-based grouping computes a
// script fragment's baseline from its own (much smaller) height and would
// misclassify it into a separate line. The detector therefore compares raw
// Top values rather than baselines.
type ScriptDetector struct {
	config ScriptConfig
}

// NewScriptDetector creates a script detector with default configuration
func NewScriptDetector() *ScriptDetector {
	return &ScriptDetector{config: DefaultScriptConfig()}
}

// NewScriptDetectorWithConfig creates a script detector with custom configuration
func NewScriptDetectorWithConfig(config ScriptConfig) *ScriptDetector {
	return &ScriptDetector{config: config}
}

// scriptKind classifies the vertical relationship between candidate and parent
type scriptKind int

const (
	scriptNone scriptKind = iota
	scriptSuper
	scriptSub
)

// DetectAndMerge returns a new fragment sequence with script fragments
// removed and their text absorbed into the parent fragment. The parent's
// width is extended to the rightmost edge of the pair; its top, height and
// therefore baseline are unchanged. Candidates without a plausible parent
// pass through unmerged. The input order does not matter and the input
// slice is not modified.
//
// Returns the new sequence and the number of merges performed.
func (d *ScriptDetector) DetectAndMerge(fragments []text.TextFragment) ([]text.TextFragment, int) {
	if len(fragments) < 2 {
		result := make([]text.TextFragment, len(fragments))
		copy(result, fragments)
		return result, 0
	}

	work := make([]text.TextFragment, len(fragments))
	copy(work, fragments)

	// Process candidates left to right so that a parent absorbing several
	// scripts receives them in reading order.
	order := make([]int, len(work))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return work[order[a]].Left < work[order[b]].Left
	})

	absorbed := make([]bool, len(work))
	merges := 0

	for _, ci := range order {
		if absorbed[ci] || !d.isCandidate(work[ci]) {
			continue
		}

		pi, kind := d.findParent(work, absorbed, ci)
		if pi < 0 {
			continue
		}

		marker := "^"
		if kind == scriptSub {
			marker = "_"
		}
		work[pi].Text = work[pi].Text + marker + work[ci].Text
		if r := work[ci].Right(); r > work[pi].Right() {
			work[pi].Width = r - work[pi].Left
		}
		absorbed[ci] = true
		merges++
	}

	result := make([]text.TextFragment, 0, len(work))
	for i, f := range work {
		if !absorbed[i] {
			result = append(result, f)
		}
	}

	return result, merges
}

// isCandidate reports whether a fragment is small enough to be a script
func (d *ScriptDetector) isCandidate(f text.TextFragment) bool {
	return f.Width < d.config.MaxWidth &&
		f.Height < d.config.MaxHeight &&
		utf8.RuneCountInString(f.Text) > 0 &&
		utf8.RuneCountInString(f.Text) <= d.config.MaxRunes
}

// findParent locates the best parent for a candidate. A parent must be
// horizontally adjacent within MaxGap, taller than the candidate, and the
// candidate's top offset must fall in the superscript or subscript window.
// Ties prefer the nearer parent, then the parent to the left.
func (d *ScriptDetector) findParent(fragments []text.TextFragment, absorbed []bool, ci int) (int, scriptKind) {
	cand := fragments[ci]

	best := -1
	bestKind := scriptNone
	bestGap := 0.0

	for pi := range fragments {
		if pi == ci || absorbed[pi] {
			continue
		}
		parent := fragments[pi]

		if parent.Height <= cand.Height {
			continue
		}

		gap := cand.Gap(parent)
		if gap > d.config.MaxGap || gap < -d.config.MaxGap {
			continue
		}

		kind := d.classify(cand.Top - parent.Top)
		if kind == scriptNone {
			continue
		}

		absGap := gap
		if absGap < 0 {
			absGap = -absGap
		}

		if best < 0 || absGap < bestGap {
			best, bestKind, bestGap = pi, kind, absGap
			continue
		}
		if absGap == bestGap && parent.Left < fragments[best].Left {
			best, bestKind = pi, kind
		}
	}

	return best, bestKind
}

// classify maps a candidate-to-parent top offset to a script kind
func (d *ScriptDetector) classify(topDiff float64) scriptKind {
	switch {
	case topDiff >= d.config.SuperscriptMinOffset && topDiff < d.config.SuperscriptMaxOffset:
		return scriptSuper
	case topDiff >= d.config.SuperscriptMaxOffset && topDiff <= d.config.SubscriptMaxOffset:
		return scriptSub
	default:
		return scriptNone
	}
}
