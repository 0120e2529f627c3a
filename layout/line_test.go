package layout

import (
	"testing"

	"github.com/pagestitch/pagestitch/model"
	"github.com/pagestitch/pagestitch/text"
)

func bboxOf(left, top, width, height float64) model.BBox {
	return model.NewBBox(left, top, width, height)
}

func TestLineGrouper_GroupsByBaseline(t *testing.T) {
	grouper := NewLineGrouper()

	// Two lines: baselines 114 and 140, each with two fragments. The second
	// fragment of line one sits 1.5 units lower, within tolerance.
	fragments := []text.TextFragment{
		makeFragment(100, 100, 80, 14, "The quick "),
		makeFragment(181, 101.5, 60, 14, "brown fox"),
		makeFragment(100, 126, 120, 14, "jumps over"),
	}

	lines := grouper.Group(fragments)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "The quick brown fox" {
		t.Errorf("line 1 text = %q", got)
	}
	if got := lines[1].Text(); got != "jumps over" {
		t.Errorf("line 2 text = %q", got)
	}
	if lines[0].Baseline != 115.5 {
		t.Errorf("line 1 baseline = %v, want maximum member baseline 115.5", lines[0].Baseline)
	}
}

func TestLineGrouper_LeftToRightWithinLine(t *testing.T) {
	grouper := NewLineGrouper()

	// Fragments arrive out of horizontal order
	fragments := []text.TextFragment{
		makeFragment(300, 100, 50, 14, "world"),
		makeFragment(100, 100, 50, 14, "hello "),
	}

	lines := grouper.Group(fragments)

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "hello world" {
		t.Errorf("fragments must be ordered left to right, got %q", got)
	}
}

func TestLineGrouper_OverlappingFragmentsRetained(t *testing.T) {
	grouper := NewLineGrouper()

	// Horizontally overlapping fragments on one baseline are both kept
	fragments := []text.TextFragment{
		makeFragment(100, 100, 80, 14, "alpha"),
		makeFragment(150, 100, 80, 14, "beta"),
	}

	lines := grouper.Group(fragments)

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(lines[0].Fragments) != 2 {
		t.Errorf("overlapping fragments must be retained, got %d", len(lines[0].Fragments))
	}
}

func TestLineGrouper_ToleranceBoundary(t *testing.T) {
	grouper := NewLineGrouperWithConfig(LineConfig{BaselineTolerance: 2.0})

	tests := []struct {
		name      string
		offset    float64
		wantLines int
	}{
		{"within tolerance", 2.0, 1},
		{"beyond tolerance", 2.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := []text.TextFragment{
				makeFragment(100, 100, 50, 14, "a"),
				makeFragment(160, 100+tt.offset, 50, 14, "b"),
			}
			lines := grouper.Group(fragments)
			if len(lines) != tt.wantLines {
				t.Errorf("got %d lines, want %d", len(lines), tt.wantLines)
			}
		})
	}
}

func TestLine_DominantFontSize(t *testing.T) {
	line := Line{
		Fragments: []text.TextFragment{
			{Text: "mostly body ", Left: 0, Top: 0, Width: 300, Height: 10, FontSize: 10},
			{Text: "x", Left: 301, Top: 0, Width: 8, Height: 18, FontSize: 18},
		},
	}

	if got := line.DominantFontSize(); got != 10 {
		t.Errorf("DominantFontSize = %v, want the size carrying the most width", got)
	}
}

func TestLine_IsEmpty(t *testing.T) {
	empty := Line{Fragments: []text.TextFragment{makeFragment(0, 0, 10, 10, "   ")}}
	if !empty.IsEmpty() {
		t.Error("whitespace-only line must be empty")
	}

	full := Line{Fragments: []text.TextFragment{makeFragment(0, 0, 10, 10, "x")}}
	if full.IsEmpty() {
		t.Error("line with text must not be empty")
	}
}

func TestMedianLineHeight(t *testing.T) {
	lines := []Line{
		{BBox: bboxOf(0, 0, 100, 10)},
		{BBox: bboxOf(0, 20, 100, 12)},
		{BBox: bboxOf(0, 40, 100, 40)},
	}

	if got := medianLineHeight(lines); got != 12 {
		t.Errorf("medianLineHeight = %v, want 12", got)
	}
}
