// Package geom holds the pure 2D math the editor is built on: points and
// vectors in world space, axis-aligned rectangles, segment distance and the
// affine matrices used to place transformed shapes.
package geom

import "math"

// World space bounds. Every entity lives in [WorldMin, WorldMax] on both axes.
const (
	WorldMin = -10.0
	WorldMax = 10.0
)

// Point is a position or a vector in world space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point  { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64  { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }
func (p Point) IsNaN() bool          { return math.IsNaN(p.X) || math.IsNaN(p.Y) }
func (p Point) Abs() Point           { return Point{math.Abs(p.X), math.Abs(p.Y)} }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Normalize returns the unit vector of p and its original length.
// A zero vector is returned unchanged with length 0.
func (p Point) Normalize() (Point, float64) {
	l := p.Len()
	if l == 0 {
		return p, 0
	}
	return Point{p.X / l, p.Y / l}, l
}

// DistancePointToSegment returns the distance from p to the closed segment ab.
// The projection parameter is clamped to [0, 1]; a degenerate segment (a == b)
// yields the distance from p to a.
func DistancePointToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Mul(t)))
}

// PointInRect reports whether p lies inside the rectangle spanned by rectMin
// and rectMax, edges included. NaN coordinates never match.
func PointInRect(p, rectMin, rectMax Point) bool {
	return p.X >= rectMin.X && p.X <= rectMax.X && p.Y >= rectMin.Y && p.Y <= rectMax.Y
}

// Centroid returns the mean of the given points, or the zero point for an
// empty slice.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(points)))
}

// ClonePoints returns a copy of points that shares no storage with it.
// The copy of an empty or nil slice is an empty, non-nil slice.
func ClonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}
