package layout

import (
	"testing"

	"github.com/pagestitch/pagestitch/text"
)

const (
	testPageWidth  = 612.0
	testPageHeight = 792.0
)

func makeLine(left, top, width, height float64, txt string) Line {
	line := Line{Fragments: []text.TextFragment{makeFragment(left, top, width, height, txt)}}
	line.recompute()
	return line
}

// A representative two-column page: full-width title, left column, full-width
// caption, right column, full-width footnote.
func twoColumnPage() []Line {
	return []Line{
		makeLine(50, 86, 530, 14, "Chapter Title Spanning The Page"),
		makeLine(72, 186, 200, 14, "left column line one"),
		makeLine(72, 206, 200, 14, "left column line two"),
		makeLine(72, 226, 200, 14, "left column line three"),
		makeLine(60, 386, 400, 14, "Figure 1: a caption between the columns"),
		makeLine(322, 486, 200, 14, "right column line one"),
		makeLine(322, 506, 200, 14, "right column line two"),
		makeLine(322, 526, 200, 14, "right column line three"),
		makeLine(40, 600, 500, 10, "1. A footnote spanning the full width"),
	}
}

func TestColumnClassifier_TwoColumnPage(t *testing.T) {
	classifier := NewColumnClassifier()

	result := classifier.Assign(twoColumnPage(), testPageWidth, testPageHeight)

	if result.SingleColumnOverride {
		t.Fatal("two-column page must not trigger the single-column override")
	}
	if len(result.ColumnStarts) != 2 {
		t.Fatalf("expected 2 column starts, got %v", result.ColumnStarts)
	}

	want := []int{0, 1, 1, 1, 0, 2, 2, 2, 0}
	for i, line := range result.Lines {
		if line.ColID != want[i] {
			t.Errorf("line %d (%q): col = %d, want %d", i, line.Text(), line.ColID, want[i])
		}
	}
}

func TestColumnClassifier_SingleClusterOverride(t *testing.T) {
	classifier := NewColumnClassifier()

	// Every line starts at the same left edge, widths vary
	lines := []Line{
		makeLine(72, 86, 250, 14, "first"),
		makeLine(72, 106, 120, 14, "second"),
		makeLine(72, 126, 200, 14, "third"),
		makeLine(72, 146, 60, 14, "fourth"),
	}

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if !result.SingleColumnOverride {
		t.Fatal("single left-edge cluster must force single-column")
	}
	for i, line := range result.Lines {
		if line.ColID != 1 {
			t.Errorf("line %d: col = %d, want 1", i, line.ColID)
		}
	}
}

func TestColumnClassifier_AlignmentOverride(t *testing.T) {
	classifier := NewColumnClassifier()

	// Nine aligned lines plus one stray indented line: the stray creates a
	// second cluster, but 90% of lines share the modal left edge
	var lines []Line
	for i := 0; i < 9; i++ {
		lines = append(lines, makeLine(72, float64(86+i*20), 200, 14, "aligned"))
	}
	lines = append(lines, makeLine(400, 300, 150, 14, "stray"))

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if !result.SingleColumnOverride {
		t.Fatal("dominant left alignment must force single-column")
	}
	for i, line := range result.Lines {
		if line.ColID != 1 {
			t.Errorf("line %d: col = %d, want 1", i, line.ColID)
		}
	}
}

func TestColumnClassifier_WeavingOverride(t *testing.T) {
	classifier := NewColumnClassifier()

	// Full-width and narrow lines alternate seven times: the resulting
	// column sequence weaves between 0 and 1 more than five times, which
	// indicates a single-column page with mixed line widths
	var lines []Line
	for i := 0; i < 7; i++ {
		if i%2 == 0 {
			lines = append(lines, makeLine(50, float64(86+i*20), 530, 14, "wide"))
		} else {
			lines = append(lines, makeLine(72, float64(86+i*20), 200, 14, "narrow"))
		}
	}
	// A distant second cluster so the single-cluster rule does not fire first
	for i := 0; i < 3; i++ {
		lines = append(lines, makeLine(400, float64(300+i*20), 150, 14, "aside"))
	}

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if !result.SingleColumnOverride {
		t.Fatal("weaving page must force single-column")
	}
}

func TestColumnClassifier_SmoothingReassignsShortRun(t *testing.T) {
	classifier := NewColumnClassifier()

	// An indented quote inside the left column lands near the right column's
	// start and is misclassified; smoothing folds it back
	lines := []Line{
		makeLine(72, 86, 200, 14, "left one"),
		makeLine(72, 106, 200, 14, "left two"),
		makeLine(330, 126, 180, 14, "an indented quote"),
		makeLine(72, 146, 200, 14, "left three"),
		makeLine(72, 166, 200, 14, "left four"),
		makeLine(322, 486, 200, 14, "right one"),
		makeLine(322, 506, 200, 14, "right two"),
		makeLine(322, 526, 200, 14, "right three"),
	}

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if result.SingleColumnOverride {
		t.Fatal("page must not trigger the single-column override")
	}
	if result.SmoothedRuns != 1 {
		t.Errorf("SmoothedRuns = %d, want 1", result.SmoothedRuns)
	}
	if got := result.Lines[2].ColID; got != 1 {
		t.Errorf("misclassified quote col = %d, want 1 after smoothing", got)
	}
}

func TestColumnClassifier_SmoothingProtectsFullWidthRun(t *testing.T) {
	classifier := NewColumnClassifier()

	// A genuine full-width line between column-1 runs: short, but protected
	// from smoothing by its width
	lines := []Line{
		makeLine(72, 86, 200, 14, "left one"),
		makeLine(72, 106, 200, 14, "left two"),
		makeLine(60, 126, 400, 14, "a genuinely full-width interruption"),
		makeLine(72, 146, 200, 14, "left three"),
		makeLine(72, 166, 200, 14, "left four"),
		makeLine(322, 486, 200, 14, "right one"),
		makeLine(322, 506, 200, 14, "right two"),
		makeLine(322, 526, 200, 14, "right three"),
	}

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if result.SmoothedRuns != 0 {
		t.Errorf("SmoothedRuns = %d, want 0", result.SmoothedRuns)
	}
	if got := result.Lines[2].ColID; got != FullWidthColumn {
		t.Errorf("full-width line col = %d, want %d", got, FullWidthColumn)
	}
}

func TestColumnClassifier_FootnoteZoneInheritsFullWidth(t *testing.T) {
	classifier := NewColumnClassifier()

	lines := []Line{
		makeLine(72, 100, 200, 14, "left one"),
		makeLine(72, 120, 200, 14, "left two"),
		makeLine(72, 140, 200, 14, "left three"),
		makeLine(322, 300, 200, 14, "right one"),
		makeLine(322, 320, 200, 14, "right two"),
		makeLine(322, 340, 200, 14, "right three"),
		makeLine(40, 700, 500, 10, "9. Footnote text that wraps onto a short"),
		makeLine(40, 715, 120, 10, "last line"),
	}

	result := classifier.Assign(lines, testPageWidth, testPageHeight)

	if result.SingleColumnOverride {
		t.Fatal("page must not trigger the single-column override")
	}

	last := result.Lines[len(result.Lines)-1]
	if last.Text() != "last line" {
		t.Fatalf("unexpected final line %q", last.Text())
	}
	if last.ColID != FullWidthColumn {
		t.Errorf("footnote continuation col = %d, want %d", last.ColID, FullWidthColumn)
	}
}

func TestColumnClassifier_InputNotModified(t *testing.T) {
	classifier := NewColumnClassifier()

	lines := twoColumnPage()
	classifier.Assign(lines, testPageWidth, testPageHeight)

	for i, line := range lines {
		if line.ColID != 0 {
			t.Fatalf("input line %d was modified: col = %d", i, line.ColID)
		}
	}
}
