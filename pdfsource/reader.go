// Package pdfsource adapts the output of a PDF text extraction library to
// the fragment records consumed by the layout engine. It is a thin intake
// layer: all structural inference happens downstream in package layout.
package pdfsource

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pagestitch/pagestitch/text"
)

// PageInput carries one page's extracted content in layout coordinates
// (top-left origin, Y increasing downward)
type PageInput struct {
	// Number is the 1-based page number
	Number int

	// Width and Height are the page dimensions from the media box
	Width  float64
	Height float64

	// Fragments are the page's positioned text fragments
	Fragments []text.TextFragment
}

// defaultPageWidth and defaultPageHeight are US Letter, used when a page
// carries no media box
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// coalesceGapFactor bounds the gap, as a fraction of font size, between two
// raw text runs that are joined into a single fragment during intake
const coalesceGapFactor = 0.15

// Load reads positioned text from a PDF file and returns one PageInput per
// page. Raw glyph runs sharing a baseline and font are coalesced into
// fragments when they are close enough to belong to one run; everything
// beyond that (line grouping, merging, ordering) is the layout engine's job.
func Load(path string) ([]PageInput, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: open %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	inputs := make([]PageInput, 0, numPages)

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		width, height := pageSize(page)
		fragments := pageFragments(page, pageNum, height)

		inputs = append(inputs, PageInput{
			Number:    pageNum,
			Width:     width,
			Height:    height,
			Fragments: fragments,
		})
	}

	return inputs, nil
}

// pageSize reads the page dimensions from the media box, falling back to
// US Letter when absent
func pageSize(page pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == pdf.Array && mediaBox.Len() >= 4 {
		width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}
	return width, height
}

// pageFragments converts one page's raw text runs to fragments. The source
// library reports baseline positions in PDF coordinates (origin bottom-left);
// fragments use a top-left origin with the glyph box approximated from the
// font size.
func pageFragments(page pdf.Page, pageNum int, pageHeight float64) []text.TextFragment {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	var fragments []text.TextFragment
	var current *text.TextFragment
	var lastRun pdf.Text

	flush := func() {
		if current != nil {
			fragments = append(fragments, *current)
			current = nil
		}
	}

	for _, run := range content.Text {
		if run.S == "" {
			continue
		}

		if current != nil && joinable(lastRun, run) {
			current.Text += run.S
			current.Width = run.X + run.W - current.Left
			lastRun = run
			continue
		}

		flush()
		top := pageHeight - run.Y - run.FontSize
		current = &text.TextFragment{
			Text:     run.S,
			Left:     run.X,
			Top:      top,
			Width:    run.W,
			Height:   run.FontSize,
			FontID:   run.Font,
			FontName: run.Font,
			FontSize: run.FontSize,
			Page:     pageNum,
		}
		lastRun = run
	}
	flush()

	return fragments
}

// joinable reports whether two consecutive raw runs belong to one fragment:
// same font, same baseline, and horizontally contiguous
func joinable(prev, next pdf.Text) bool {
	if next.Font != prev.Font || next.FontSize != prev.FontSize {
		return false
	}
	if next.Y != prev.Y {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	limit := prev.FontSize * coalesceGapFactor
	return gap >= -limit && gap <= limit
}
