package layout

import (
	"sort"
)

// BlockAssembler orders classified lines into a single linear reading
// sequence per page by numbering reading-order blocks.
//
// A block is a maximal run of lines sharing one column ID when lines are
// walked in (baseline, left) order. The block number increments at every
// column transition, so full-width content appearing between two columns
// (a title, a figure caption, a footnote) receives its own block. Two
// unrelated full-width regions separated by columnar content must never
// collapse into one block just because they share column 0.
type BlockAssembler struct{}

// NewBlockAssembler creates a block assembler
func NewBlockAssembler() *BlockAssembler {
	return &BlockAssembler{}
}

// Assign numbers reading-order blocks. It returns a new slice sorted by
// (baseline, left) with Block set on every line; the input is not modified.
// A page with a single distinct column ID yields block 1 for every line.
func (a *BlockAssembler) Assign(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}

	work := make([]Line, len(lines))
	copy(work, lines)
	sort.SliceStable(work, func(i, j int) bool {
		if work[i].Baseline != work[j].Baseline {
			return work[i].Baseline < work[j].Baseline
		}
		return work[i].BBox.Left < work[j].BBox.Left
	})

	if uniformColumn(work) {
		for i := range work {
			work[i].Block = 1
		}
		return work
	}

	block := 0
	prevCol := -1
	first := true
	for i := range work {
		if first || work[i].ColID != prevCol {
			block++
			prevCol = work[i].ColID
			first = false
		}
		work[i].Block = block
	}

	return work
}

// Sequence returns the page's linear reading sequence: blocks concatenated
// in increasing block order, lines within a block retaining their
// (baseline, left) order. Block numbers are monotone along the walk, so the
// assigned order already is the reading sequence.
func (a *BlockAssembler) Sequence(lines []Line) []Line {
	return a.Assign(lines)
}

// uniformColumn reports whether every line shares one column ID
func uniformColumn(lines []Line) bool {
	for _, l := range lines[1:] {
		if l.ColID != lines[0].ColID {
			return false
		}
	}
	return true
}
