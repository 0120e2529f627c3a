package layout

import (
	"testing"

	"github.com/pagestitch/pagestitch/text"
)

// Helper to create a text fragment in top-left coordinates
func makeFragment(left, top, width, height float64, txt string) text.TextFragment {
	return text.TextFragment{
		Left:     left,
		Top:      top,
		Width:    width,
		Height:   height,
		Text:     txt,
		FontSize: height,
		Page:     1,
	}
}

func TestScriptDetector_SuperscriptMerge(t *testing.T) {
	detector := NewScriptDetector()

	// Body text followed by a small raised "7": top difference of 1 falls
	// in the superscript window
	fragments := []text.TextFragment{
		makeFragment(101, 191, 428, 18, "bacterial populations reach around 10"),
		makeFragment(529, 192, 5, 11, "7"),
	}

	merged, count := detector.DetectAndMerge(fragments)

	if count != 1 {
		t.Fatalf("expected 1 merge, got %d", count)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 fragment after merge, got %d", len(merged))
	}

	got := merged[0]
	if got.Text != "bacterial populations reach around 10^7" {
		t.Errorf("unexpected merged text: %q", got.Text)
	}
	if got.Top != 191 || got.Height != 18 {
		t.Errorf("parent top/height must be unchanged, got top=%v height=%v", got.Top, got.Height)
	}
	if got.Right() != 534 {
		t.Errorf("parent width must extend to the script's right edge, got right=%v", got.Right())
	}
}

func TestScriptDetector_SubscriptMerge(t *testing.T) {
	detector := NewScriptDetector()

	// "H" followed by a lowered "2": top difference of 5 falls in the
	// subscript window
	fragments := []text.TextFragment{
		makeFragment(100, 200, 12, 14, "H"),
		makeFragment(113, 205, 6, 9, "2"),
		makeFragment(120, 200, 14, 14, "O"),
	}

	merged, count := detector.DetectAndMerge(fragments)

	if count != 1 {
		t.Fatalf("expected 1 merge, got %d", count)
	}

	var found bool
	for _, f := range merged {
		if f.Text == "H_2" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a fragment with text %q, got %v", "H_2", fragmentTexts(merged))
	}
}

func TestScriptDetector_NoParentAbstains(t *testing.T) {
	detector := NewScriptDetector()

	// The candidate is isolated: nothing within the gap tolerance
	fragments := []text.TextFragment{
		makeFragment(100, 200, 300, 14, "A full body line of text"),
		makeFragment(550, 202, 5, 10, "3"),
	}

	merged, count := detector.DetectAndMerge(fragments)

	if count != 0 {
		t.Errorf("expected no merges, got %d", count)
	}
	if len(merged) != 2 {
		t.Errorf("candidate without a parent must pass through, got %d fragments", len(merged))
	}
}

func TestScriptDetector_OffsetOutsideWindows(t *testing.T) {
	detector := NewScriptDetector()

	// Small fragment adjacent to a taller one, but far below it:
	// top difference of 20 is outside both windows
	fragments := []text.TextFragment{
		makeFragment(100, 200, 300, 14, "Body text"),
		makeFragment(401, 220, 5, 10, "x"),
	}

	_, count := detector.DetectAndMerge(fragments)

	if count != 0 {
		t.Errorf("offset outside script windows must not merge, got %d merges", count)
	}
}

func TestScriptDetector_LongTextNotCandidate(t *testing.T) {
	detector := NewScriptDetector()

	fragments := []text.TextFragment{
		makeFragment(100, 200, 300, 14, "Body text continues"),
		makeFragment(401, 201, 18, 10, "word"), // 4 runes: too long
	}

	_, count := detector.DetectAndMerge(fragments)

	if count != 0 {
		t.Errorf("fragment over the rune limit must not be a candidate, got %d merges", count)
	}
}

func TestScriptDetector_NearerParentWins(t *testing.T) {
	detector := NewScriptDetector()

	// Candidate between two taller fragments; the right one is nearer
	fragments := []text.TextFragment{
		makeFragment(100, 200, 95, 14, "left run"),
		makeFragment(200, 201, 6, 9, "2"),
		makeFragment(208, 200, 100, 14, "right run"),
	}

	merged, count := detector.DetectAndMerge(fragments)

	if count != 1 {
		t.Fatalf("expected 1 merge, got %d", count)
	}
	var found bool
	for _, f := range merged {
		if f.Text == "right run^2" {
			found = true
		}
	}
	if !found {
		t.Errorf("nearer parent must absorb the script, got %v", fragmentTexts(merged))
	}
}

func TestScriptDetector_InputNotModified(t *testing.T) {
	detector := NewScriptDetector()

	fragments := []text.TextFragment{
		makeFragment(101, 191, 428, 18, "around 10"),
		makeFragment(529, 192, 5, 11, "7"),
	}

	detector.DetectAndMerge(fragments)

	if fragments[0].Text != "around 10" || fragments[0].Width != 428 {
		t.Error("input slice must not be modified")
	}
}

func fragmentTexts(fragments []text.TextFragment) []string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return texts
}
