// Package clip recomputes the visible geometry of a scene against the clip
// window. Lines are clipped exactly with Cohen-Sutherland; every other kind is
// shown, hidden or highlighted by its bounding box.
package clip

import (
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

// Outcode classifies a point against the extended edges of a rectangle.
type Outcode uint8

const (
	Inside Outcode = 0
	Left   Outcode = 1
	Right  Outcode = 2
	Bottom Outcode = 4
	Top    Outcode = 8
)

// Code returns the outcode of p. Points on an edge are inside.
func Code(p geom.Point, r geom.Rect) Outcode {
	c := Inside
	if p.X < r.Min.X {
		c |= Left
	} else if p.X > r.Max.X {
		c |= Right
	}
	if p.Y < r.Min.Y {
		c |= Bottom
	} else if p.Y > r.Max.Y {
		c |= Top
	}
	return c
}

// Each pass moves one endpoint onto one boundary; two endpoints times four
// boundaries bounds the loop.
const maxPasses = 8

// Segment clips p0-p1 to r. It returns the clipped endpoints and true when
// any part of the segment is inside, or false when it is rejected.
func Segment(p0, p1 geom.Point, r geom.Rect) (geom.Point, geom.Point, bool) {
	c0, c1 := Code(p0, r), Code(p1, r)
	for range maxPasses {
		if c0|c1 == Inside {
			return p0, p1, true
		}
		if c0&c1 != 0 {
			return geom.Point{}, geom.Point{}, false
		}

		out := c0
		if out == Inside {
			out = c1
		}

		var q geom.Point
		switch {
		case out&Top != 0:
			q = geom.Pt(p0.X+(p1.X-p0.X)*(r.Max.Y-p0.Y)/(p1.Y-p0.Y), r.Max.Y)
		case out&Bottom != 0:
			q = geom.Pt(p0.X+(p1.X-p0.X)*(r.Min.Y-p0.Y)/(p1.Y-p0.Y), r.Min.Y)
		case out&Right != 0:
			q = geom.Pt(r.Max.X, p0.Y+(p1.Y-p0.Y)*(r.Max.X-p0.X)/(p1.X-p0.X))
		default:
			q = geom.Pt(r.Min.X, p0.Y+(p1.Y-p0.Y)*(r.Min.X-p0.X)/(p1.X-p0.X))
		}

		if out == c0 {
			p0, c0 = q, Code(q, r)
		} else {
			p1, c1 = q, Code(q, r)
		}
	}
	return geom.Point{}, geom.Point{}, false
}

// Apply recomputes every entity. With no window (ok false) every entity is
// restored to its original points and color.
func Apply(entities []*scene.Entity, window geom.Rect, ok bool) {
	for _, e := range entities {
		Entity(e, window, ok)
	}
}

// Entity recomputes the visible geometry and color of a single entity from
// its original points.
func Entity(e *scene.Entity, window geom.Rect, ok bool) {
	e.Restore()
	if !ok {
		return
	}

	if e.IsLine() {
		a, b := e.LineEndpoints()
		c0, c1, accepted := Segment(a, b, window)
		if !accepted {
			e.Hide()
			return
		}
		e.VisiblePoints = []geom.Point{c0, c1}
		if window.Contains(a) && window.Contains(b) {
			e.Color = scene.Highlight
		}
		return
	}

	box := e.Extent()
	switch {
	case !window.Intersects(box):
		e.Hide()
	case window.ContainsRect(box):
		e.Color = scene.Highlight
	}
}
