package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pagestitch/pagestitch/model"
)

// SurvivorPolicy selects which representation survives when a raster and a
// vector region overlap above the redundancy threshold. The legacy tooling
// treated both as equally valid strategies; the choice stays an external
// configuration rather than a criterion inferred from content.
type SurvivorPolicy int

const (
	// KeepVector drops redundant rasters contained in a vector frame (default)
	KeepVector SurvivorPolicy = iota
	// KeepRaster drops vector frames that overlap a raster
	KeepRaster
)

// String returns a string representation of the policy
func (p SurvivorPolicy) String() string {
	if p == KeepRaster {
		return "keep-raster"
	}
	return "keep-vector"
}

// MediaConfig holds configuration for media deduplication and association
type MediaConfig struct {
	// OverlapThreshold is the intersection-over-raster-area ratio above
	// which a raster/vector pair is considered redundant (default: 0.2)
	OverlapThreshold float64

	// Policy selects the surviving representation for redundant pairs
	Policy SurvivorPolicy
}

// DefaultMediaConfig returns sensible default configuration
func DefaultMediaConfig() MediaConfig {
	return MediaConfig{
		OverlapThreshold: 0.2,
		Policy:           KeepVector,
	}
}

// Placement is a resolved insertion of a media region into the reading
// sequence: the region is read after the line at Index (-1 means before the
// first line).
type Placement struct {
	// Index is the position in the line sequence after which the region
	// is inserted
	Index int

	// Region is the placed media region
	Region model.MediaRegion

	// ByCaption is true when the placement came from caption-text matching
	// rather than vertical position
	ByCaption bool

	// Fallback is true when no plausible insertion point existed and the
	// region was appended at the end of the page's sequence. Flagged for
	// downstream review rather than dropped silently.
	Fallback bool
}

// captionPattern matches "Figure 3", "Fig. 3", "Table 12" style caption
// lines and captures the keyword and the label number
var captionPattern = regexp.MustCompile(`(?i)\b(figure|fig\.?|table)\s+(\d+|[ivxlc]+)\b`)

// MediaAssociator resolves raster/vector redundancy and assigns each media
// region an insertion position in the page's reading sequence.
type MediaAssociator struct {
	config MediaConfig
}

// NewMediaAssociator creates a media associator with default configuration
func NewMediaAssociator() *MediaAssociator {
	return &MediaAssociator{config: DefaultMediaConfig()}
}

// NewMediaAssociatorWithConfig creates a media associator with custom configuration
func NewMediaAssociatorWithConfig(config MediaConfig) *MediaAssociator {
	return &MediaAssociator{config: config}
}

// Deduplicate resolves overlapping raster/vector pairs on one page. Each
// raster is checked independently against every vector, so one large vector
// frame can absorb several rasters (a multi-panel figure). The survivor is
// marked Composite. Figure regions fully redundant with a table region at
// the same position are dropped the same way: tables and figures are
// mutually exclusive over one bbox.
//
// Returns the surviving regions and the number dropped. The input slice is
// not modified.
func (a *MediaAssociator) Deduplicate(media []model.MediaRegion) ([]model.MediaRegion, int) {
	if len(media) < 2 {
		result := make([]model.MediaRegion, len(media))
		copy(result, media)
		return result, 0
	}

	work := make([]model.MediaRegion, len(media))
	copy(work, media)
	dropped := make([]bool, len(work))

	for ri := range work {
		if work[ri].Type != model.MediaTypeRaster {
			continue
		}
		for vi := range work {
			if work[vi].Type != model.MediaTypeVector || dropped[vi] || dropped[ri] {
				continue
			}

			// overlap_ratio = intersection / raster area
			ratio := work[ri].BBox.OverlapRatio(work[vi].BBox)
			if ratio <= a.config.OverlapThreshold {
				continue
			}

			if a.config.Policy == KeepRaster {
				dropped[vi] = true
				work[ri].Composite = true
			} else {
				dropped[ri] = true
				work[vi].Composite = true
			}
		}
	}

	// Table regions win over figure regions occupying the same bbox
	for fi := range work {
		if dropped[fi] || !work[fi].IsFigure() {
			continue
		}
		for ti := range work {
			if dropped[ti] || work[ti].Type != model.MediaTypeTable {
				continue
			}
			if work[fi].BBox.OverlapRatio(work[ti].BBox) > a.config.OverlapThreshold {
				dropped[fi] = true
				break
			}
		}
	}

	result := make([]model.MediaRegion, 0, len(work))
	droppedCount := 0
	for i, m := range work {
		if dropped[i] {
			droppedCount++
			continue
		}
		result = append(result, m)
	}
	return result, droppedCount
}

// Associate assigns each region an insertion position in the reading
// sequence. Caption-text matching wins over vertical position: when a line
// matches a "Figure N" / "Table N" pattern referencing the region's label,
// the region is inserted immediately after that caption line. Otherwise the
// region lands where its vertical center falls between two consecutive
// lines' baselines. Regions with no plausible insertion point are appended
// at the end, flagged as fallback placements.
//
// The lines must already be in reading order (see BlockAssembler.Sequence).
// Placements are returned sorted by insertion index.
func (a *MediaAssociator) Associate(lines []Line, media []model.MediaRegion) []Placement {
	placements := make([]Placement, 0, len(media))

	for _, region := range media {
		if idx, ok := a.findCaptionLine(lines, region); ok {
			placements = append(placements, Placement{
				Index:     idx,
				Region:    region,
				ByCaption: true,
			})
			continue
		}

		if idx, ok := a.findVerticalSlot(lines, region); ok {
			placements = append(placements, Placement{
				Index:  idx,
				Region: region,
			})
			continue
		}

		placements = append(placements, Placement{
			Index:    len(lines) - 1,
			Region:   region,
			Fallback: true,
		})
	}

	sortPlacements(placements)
	return placements
}

// captionLabel is a parsed caption reference: the keyword kind ("figure" or
// "table") and the label number
type captionLabel struct {
	kind   string
	number string
}

// normalizeCaptionKind folds caption keyword variants ("Fig.", "FIG") onto
// their canonical kind
func normalizeCaptionKind(kind string) string {
	kind = strings.TrimSuffix(strings.ToLower(kind), ".")
	if kind == "fig" {
		return "figure"
	}
	return kind
}

// regionLabel extracts the region's caption label, if known. The label's
// keyword must agree with the region's type: a table region never adopts a
// "Figure N" label and vice versa, so a page carrying both a Figure 1 and a
// Table 1 caption places each region after its own caption.
func regionLabel(region model.MediaRegion) (captionLabel, bool) {
	want := "figure"
	if region.Type == model.MediaTypeTable {
		want = "table"
	}

	for _, source := range []string{region.Caption, region.ID} {
		m := captionPattern.FindStringSubmatch(source)
		if m == nil {
			continue
		}
		label := captionLabel{
			kind:   normalizeCaptionKind(m[1]),
			number: strings.ToLower(m[2]),
		}
		if label.kind != want {
			continue
		}
		return label, true
	}
	return captionLabel{}, false
}

// findCaptionLine locates a line whose caption reference matches the
// region's label in both kind and number
func (a *MediaAssociator) findCaptionLine(lines []Line, region model.MediaRegion) (int, bool) {
	label, ok := regionLabel(region)
	if !ok {
		return 0, false
	}

	for i := range lines {
		if lines[i].Page != region.Page {
			continue
		}
		m := captionPattern.FindStringSubmatch(lines[i].Text())
		if m == nil {
			continue
		}
		if normalizeCaptionKind(m[1]) == label.kind && strings.ToLower(m[2]) == label.number {
			return i, true
		}
	}
	return 0, false
}

// findVerticalSlot locates the point in the sequence where the region's
// vertical center falls between two consecutive lines' baselines on the
// same page
func (a *MediaAssociator) findVerticalSlot(lines []Line, region model.MediaRegion) (int, bool) {
	center := region.BBox.Center().Y

	for i := 0; i < len(lines)-1; i++ {
		if lines[i].Page != region.Page || lines[i+1].Page != region.Page {
			continue
		}
		if lines[i].Baseline <= center && center < lines[i+1].Baseline {
			return i, true
		}
	}

	// Above the first line of the page: insert before it
	for i := range lines {
		if lines[i].Page == region.Page {
			if center < lines[i].Baseline {
				return i - 1, true
			}
			break
		}
	}

	return 0, false
}

// sortPlacements orders placements by insertion index (stable for equal
// indexes, preserving media input order)
func sortPlacements(placements []Placement) {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Index < placements[j].Index
	})
}
