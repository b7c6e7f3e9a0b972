package geom

import "math"

// Point is a 2D point in page coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size is a width/height pair. The unit depends on context: pixels for
// page-local rectangles, millimetres for physical sizes.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle in raster coordinates: X/Y is the
// top-left corner and Y grows downward, matching scanned images.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// NewRectFromPoints creates the bounding rectangle of two points.
func NewRectFromPoints(p1, p2 Point) Rect {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	return Rect{X: x, Y: y, Width: math.Abs(p2.X - p1.X), Height: math.Abs(p2.Y - p1.Y)}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains checks whether a point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects checks whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() < other.Left() ||
		r.Left() > other.Right() ||
		r.Bottom() < other.Top() ||
		r.Top() > other.Bottom())
}

// Intersection returns the overlapping region of two rectangles, or the
// zero rectangle when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := math.Max(r.Left(), other.Left())
	y := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := math.Min(r.Left(), other.Left())
	y := math.Min(r.Top(), other.Top())
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Translated returns the rectangle shifted by (dx, dy).
func (r Rect) Translated(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Adjusted grows or shrinks the rectangle by moving each edge outward
// (positive deltas grow the left/top outward, i.e. the semantics of
// expanding margins around a content box).
func (r Rect) Adjusted(left, top, right, bottom float64) Rect {
	return Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}
