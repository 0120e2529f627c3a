package model

import "math"

// Point represents a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box (rectangle) in page-local coordinates.
// The origin is the top-left corner of the page and Y increases downward,
// matching the coordinate space of the upstream fragment producer.
type BBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from position and size
func NewBBox(left, top, width, height float64) BBox {
	return BBox{Left: left, Top: top, Width: width, Height: height}
}

// BBoxFromCorners creates a bounding box from two opposite corners
func BBoxFromCorners(x1, y1, x2, y2 float64) BBox {
	left := math.Min(x1, x2)
	top := math.Min(y1, y2)
	return BBox{
		Left:   left,
		Top:    top,
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge Y coordinate (larger Y is lower on the page)
func (b BBox) Bottom() float64 {
	return b.Top + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.Left + b.Width/2,
		Y: b.Top + b.Height/2,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right() &&
		p.Y >= b.Top && p.Y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left ||
		b.Left > other.Right() ||
		b.Bottom() < other.Top ||
		b.Top > other.Bottom())
}

// Intersection returns the intersection of two bounding boxes.
// Returns an empty box when the boxes do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	left := math.Max(b.Left, other.Left)
	top := math.Max(b.Top, other.Top)
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Union returns the smallest bounding box covering both boxes
func (b BBox) Union(other BBox) BBox {
	left := math.Min(b.Left, other.Left)
	top := math.Min(b.Top, other.Top)
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// OverlapRatio returns the intersection area divided by this box's own area.
// Used for redundancy checks between raster and vector media regions.
func (b BBox) OverlapRatio(other BBox) float64 {
	area := b.Area()
	if area == 0 {
		return 0
	}
	return b.Intersection(other).Area() / area
}

// HorizontalGap returns the edge-to-edge horizontal distance to another box.
// The result is negative when the boxes overlap horizontally.
func (b BBox) HorizontalGap(other BBox) float64 {
	if b.Left <= other.Left {
		return other.Left - b.Right()
	}
	return b.Left - other.Right()
}

// VerticalGap returns the edge-to-edge vertical distance to another box.
// The result is negative when the boxes overlap vertically.
func (b BBox) VerticalGap(other BBox) float64 {
	if b.Top <= other.Top {
		return other.Top - b.Bottom()
	}
	return b.Top - other.Bottom()
}

// IsValid reports whether the box has non-negative, finite dimensions.
// Malformed geometry from the upstream extractor fails this check and the
// owning record is dropped with a diagnostic rather than propagated.
func (b BBox) IsValid() bool {
	for _, v := range []float64{b.Left, b.Top, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width >= 0 && b.Height >= 0
}
