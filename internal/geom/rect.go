package geom

import "math"

// Rect is an axis-aligned rectangle stored as its min and max corners.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromCorners builds the normalized rectangle spanned by two opposite
// corners given in any order.
func RectFromCorners(a, b Point) Rect {
	return Rect{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// BoundingBox returns the smallest rectangle containing every point.
// The bounding box of an empty slice is the zero Rect.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(p Point) bool {
	return PointInRect(p, r.Min, r.Max)
}

// ContainsRect checks if o lies entirely within r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Min.X <= o.Min.X && o.Max.X <= r.Max.X &&
		r.Min.Y <= o.Min.Y && o.Max.Y <= r.Max.Y
}

// Intersects reports whether r and o share at least one point. Touching
// edges count as an intersection.
func (r Rect) Intersects(o Rect) bool {
	return !(o.Max.X < r.Min.X || o.Min.X > r.Max.X || o.Max.Y < r.Min.Y || o.Min.Y > r.Max.Y)
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Corners returns the four logical corners in the order
// top-left, top-right, bottom-left, bottom-right (y grows upwards).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Min.X, r.Max.Y},
		{r.Max.X, r.Max.Y},
		{r.Min.X, r.Min.Y},
		{r.Max.X, r.Min.Y},
	}
}
