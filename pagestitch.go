// Package pagestitch reconstructs logical document structure (chapters,
// sections, paragraphs, figures, tables, reading order) from the raw
// geometric output of PDF text and image extraction, and serializes it into
// a hierarchical DocBook-like XML format.
//
// Basic usage:
//
//	pages, err := pdfsource.Load("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	input := pagestitch.InputFromPages(pages)
//	book, summary, err := pagestitch.New(pagestitch.DefaultConfig()).Reconstruct(input)
//	if err != nil {
//	    // handle error
//	}
//	xml, err := docbook.Marshal(book)
//
// Pages are processed independently and in parallel; anomalies (dropped
// fragments, single-column overrides, unplaced media) degrade to documented
// defaults and are reported in the returned Summary rather than raised.
package pagestitch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pagestitch/pagestitch/doctree"
	"github.com/pagestitch/pagestitch/layout"
	"github.com/pagestitch/pagestitch/model"
	"github.com/pagestitch/pagestitch/pdfsource"
	"github.com/pagestitch/pagestitch/text"
)

// Page is one page of extracted input: the fragment and media streams plus
// the page dimensions
type Page struct {
	// Number is the 1-based page number, used only for final ordering
	Number int

	// Width and Height are the page dimensions
	Width  float64
	Height float64

	// Fragments are the page's positioned text fragments
	Fragments []text.TextFragment

	// Media are the page's detected media regions
	Media []model.MediaRegion
}

// Input is a fully materialized document: every page's fragment and media
// list, the font specification table, and an optional pre-built role map
type Input struct {
	// Pages are the document's pages in any order
	Pages []Page

	// Fonts resolves upstream font identifiers to sizes and families
	Fonts text.FontTable

	// Roles maps font sizes to structural roles. When empty, roles are
	// derived from the document's font-size histogram.
	Roles doctree.RoleMap
}

// InputFromPages wraps loader output into an Input
func InputFromPages(pages []pdfsource.PageInput) *Input {
	input := &Input{}
	for _, p := range pages {
		input.Pages = append(input.Pages, Page{
			Number:    p.Number,
			Width:     p.Width,
			Height:    p.Height,
			Fragments: p.Fragments,
		})
	}
	return input
}

// Summary aggregates per-page anomaly counts for the whole document.
// Callers report these as a summary, not as individual interruptions.
type Summary struct {
	// Pages are the per-page statistics in page order
	Pages []layout.PageStats

	// DroppedFragments is the document-wide count of fragments dropped
	// for malformed geometry
	DroppedFragments int

	// SingleColumnOverrides counts pages forced single-column
	SingleColumnOverrides int

	// DroppedMedia counts regions removed by raster/vector deduplication
	DroppedMedia int

	// UnplacedMedia counts regions appended as fallback placements,
	// flagged for downstream review
	UnplacedMedia int

	// EmptyPages counts pages that produced no usable fragments
	EmptyPages int
}

// add folds one page's statistics into the summary
func (s *Summary) add(stats layout.PageStats) {
	s.Pages = append(s.Pages, stats)
	s.DroppedFragments += stats.DroppedFragments
	s.DroppedMedia += stats.DroppedMedia
	s.UnplacedMedia += stats.UnplacedMedia
	if stats.SingleColumnOverride {
		s.SingleColumnOverrides++
	}
	if stats.Empty {
		s.EmptyPages++
	}
}

// Reconstructor runs the full reconstruction pipeline for a document
type Reconstructor struct {
	config Config
}

// New creates a reconstructor. Zero-valued config fields fall back to the
// documented defaults.
func New(config Config) *Reconstructor {
	config.applyDefaults()
	return &Reconstructor{config: config}
}

// Reconstruct analyzes every page and builds the document tree. Pages are
// processed concurrently by a bounded worker pool; each page's data is
// self-contained, and the font table and role map are read-only, so the
// workers share no mutable state.
//
// An input with no pages at all is structurally impossible and returns an
// error; pages with no content merely count toward Summary.EmptyPages.
func (r *Reconstructor) Reconstruct(input *Input) (*model.DocumentNode, Summary, error) {
	var summary Summary

	if input == nil || len(input.Pages) == 0 {
		return nil, summary, fmt.Errorf("pagestitch: input has no pages")
	}

	pages := make([]Page, len(input.Pages))
	copy(pages, input.Pages)
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})

	results := r.analyzePages(pages, input.Fonts)

	for _, res := range results {
		summary.add(res.Stats)
	}

	roles := input.Roles
	if roles.Len() == 0 {
		var allLines []layout.Line
		for _, res := range results {
			allLines = append(allLines, res.Lines...)
		}
		roles = doctree.DeriveRoles(allLines)
	}

	var items []layout.Item
	for _, res := range results {
		items = append(items, res.Items...)
	}

	builder := doctree.NewBuilderWithConfig(r.config.builderConfig())
	book := builder.Build(items, roles)

	return book, summary, nil
}

// analyzePages fans pages out to a bounded worker pool and returns results
// in page order
func (r *Reconstructor) analyzePages(pages []Page, fonts text.FontTable) []*layout.PageResult {
	analyzer := layout.NewPageAnalyzerWithConfig(r.config.analyzerConfig())
	results := make([]*layout.PageResult, len(pages))

	workers := r.config.Workers
	if workers > len(pages) {
		workers = len(pages)
	}

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				page := pages[i]
				fragments := fonts.Apply(page.Fragments)
				results[i] = analyzer.Analyze(page.Number, fragments, page.Media, page.Width, page.Height)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
