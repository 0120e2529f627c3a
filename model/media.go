package model

// MediaType represents the kind of detected media region
type MediaType int

const (
	MediaTypeUnknown MediaType = iota
	MediaTypeRaster            // Embedded raster image (photo, scan)
	MediaTypeVector            // Vector drawing region (charts, diagrams)
	MediaTypeTable             // Detected table region
)

// String returns a string representation of the media type
func (t MediaType) String() string {
	switch t {
	case MediaTypeRaster:
		return "raster"
	case MediaTypeVector:
		return "vector"
	case MediaTypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// MediaRegion represents a detected image or table region on a page.
// Regions arrive from the upstream extractor and are deduplicated and
// positioned into the reading sequence by the layout engine.
type MediaRegion struct {
	// ID is the upstream identifier for the region
	ID string

	// Type is the kind of media (raster, vector, table)
	Type MediaType

	// BBox is the region's bounding box on the page
	BBox BBox

	// Page is the 1-based page number the region belongs to
	Page int

	// FileRef is the extracted asset path, if the upstream producer wrote one
	FileRef string

	// Caption is the caption text reported by the upstream producer, if any
	Caption string

	// Composite is true when this region survived overlap deduplication and
	// absorbed one or more discarded regions of the other representation
	// (a vector frame that contained redundant rasters, or vice versa)
	Composite bool
}

// IsFigure reports whether the region renders as a figure (raster or vector)
func (m *MediaRegion) IsFigure() bool {
	return m.Type == MediaTypeRaster || m.Type == MediaTypeVector
}
