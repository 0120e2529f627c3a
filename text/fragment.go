package text

import (
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/pagestitch/pagestitch/model"
)

// TextFragment represents a piece of extracted text with position.
// Coordinates are page-local with a top-left origin; the baseline is
// Top + Height. Fragments are created once per extracted glyph run and
// never mutated after a script merge absorbs them into a parent.
type TextFragment struct {
	Text     string
	Left     float64
	Top      float64
	Width    float64
	Height   float64
	FontID   string
	FontSize float64
	FontName string
	Page     int
}

// Baseline returns the fragment's text baseline (Top + Height)
func (f TextFragment) Baseline() float64 {
	return f.Top + f.Height
}

// Right returns the fragment's right edge
func (f TextFragment) Right() float64 {
	return f.Left + f.Width
}

// BBox returns the fragment's bounding box
func (f TextFragment) BBox() model.BBox {
	return model.BBox{Left: f.Left, Top: f.Top, Width: f.Width, Height: f.Height}
}

// Gap returns the edge-to-edge horizontal distance to another fragment.
// Negative when the fragments overlap horizontally.
func (f TextFragment) Gap(other TextFragment) float64 {
	return f.BBox().HorizontalGap(other.BBox())
}

// IsValid reports whether the fragment has usable geometry
func (f TextFragment) IsValid() bool {
	if !f.BBox().IsValid() {
		return false
	}
	return !math.IsNaN(f.FontSize) && !math.IsInf(f.FontSize, 0)
}

// Sanitize drops fragments with malformed geometry and NFC-normalizes the
// text of the survivors so that downstream pattern matching (list markers,
// captions) sees composed forms. Returns the cleaned sequence and the number
// of fragments dropped. The input slice is not modified.
func Sanitize(fragments []TextFragment) ([]TextFragment, int) {
	cleaned := make([]TextFragment, 0, len(fragments))
	dropped := 0

	for _, f := range fragments {
		if !f.IsValid() {
			dropped++
			continue
		}
		if !norm.NFC.IsNormalString(f.Text) {
			f.Text = norm.NFC.String(f.Text)
		}
		cleaned = append(cleaned, f)
	}

	return cleaned, dropped
}
