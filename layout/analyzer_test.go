package layout

import (
	"testing"

	"github.com/pagestitch/pagestitch/model"
	"github.com/pagestitch/pagestitch/text"
)

func TestPageAnalyzer_FullPipeline(t *testing.T) {
	analyzer := NewPageAnalyzer()

	fragments := []text.TextFragment{
		// Malformed geometry: dropped during sanitization
		makeFragment(50, 50, -5, 10, "bad"),
		makeFragment(72, 86, 200, 14, "Heading text here"),
		makeFragment(72, 126, 100, 12, "body "),
		makeFragment(173, 126, 80, 12, "continues"),
		makeFragment(72, 166, 150, 12, "energy E = mc"),
		makeFragment(222.5, 168, 5, 7, "2"),
	}

	media := []model.MediaRegion{
		{
			ID:   "img-1",
			Type: model.MediaTypeRaster,
			Page: 1,
			BBox: model.NewBBox(300, 140, 40, 20), // center y = 150
		},
	}

	result := analyzer.Analyze(1, fragments, media, testPageWidth, testPageHeight)

	stats := result.Stats
	if stats.DroppedFragments != 1 {
		t.Errorf("DroppedFragments = %d, want 1", stats.DroppedFragments)
	}
	if stats.ScriptMerges != 1 {
		t.Errorf("ScriptMerges = %d, want 1", stats.ScriptMerges)
	}
	if stats.InlineMerges != 1 {
		t.Errorf("InlineMerges = %d, want 1", stats.InlineMerges)
	}
	if !stats.SingleColumnOverride {
		t.Error("left-aligned page must report the single-column override")
	}
	if stats.Empty {
		t.Error("page with text must not be empty")
	}

	if len(result.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(result.Lines))
	}
	wantTexts := []string{"Heading text here", "body continues", "energy E = mc^2"}
	for i, want := range wantTexts {
		if got := result.Lines[i].Text(); got != want {
			t.Errorf("line %d text = %q, want %q", i, got, want)
		}
	}

	// The raster's center falls between the second and third baselines, so
	// the sequence is line, line, media, line
	if len(result.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(result.Items))
	}
	if result.Items[2].Media == nil || result.Items[2].Media.ID != "img-1" {
		t.Errorf("item 2 must be the media region, got %+v", result.Items[2])
	}
	for _, i := range []int{0, 1, 3} {
		if result.Items[i].Line == nil {
			t.Errorf("item %d must be a text line", i)
		}
	}
}

func TestPageAnalyzer_EmptyPage(t *testing.T) {
	analyzer := NewPageAnalyzer()

	media := []model.MediaRegion{
		{ID: "img-1", Type: model.MediaTypeRaster, Page: 3, BBox: model.NewBBox(100, 100, 200, 150)},
	}

	result := analyzer.Analyze(3, nil, media, testPageWidth, testPageHeight)

	if !result.Stats.Empty {
		t.Error("page without fragments must be flagged empty")
	}
	if result.Stats.UnplacedMedia != 1 {
		t.Errorf("UnplacedMedia = %d, want 1", result.Stats.UnplacedMedia)
	}
	if len(result.Items) != 1 || result.Items[0].Media == nil {
		t.Fatalf("expected the lone media item, got %+v", result.Items)
	}
}

func TestPageAnalyzer_NoContentAtAll(t *testing.T) {
	analyzer := NewPageAnalyzer()

	result := analyzer.Analyze(5, nil, nil, testPageWidth, testPageHeight)

	if !result.Stats.Empty {
		t.Error("page must be flagged empty")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %d", len(result.Items))
	}
}
