// Package clipwin models the user-defined clip window: two unordered corners
// collected one click at a time, then moved or resized by dragging.
package clipwin

import (
	"math"

	"github.com/vectorlab/clipedit/internal/geom"
)

// HandleThreshold is how close, in world units on each axis, the pointer must
// be to a logical corner to grab it.
const HandleThreshold = 0.5

// Handle identifies what a window drag manipulates.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleResizeTL
	HandleResizeTR
	HandleResizeBL
	HandleResizeBR
)

var handleNames = [...]string{"none", "move", "resize_tl", "resize_tr", "resize_bl", "resize_br"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "unknown"
	}
	return handleNames[h]
}

// Window is the clip window state machine. The zero value is an absent
// window that is not being defined.
type Window struct {
	corners  []geom.Point
	defining bool

	drag    Handle
	lastPos geom.Point
}

// New returns an absent window.
func New() *Window {
	return &Window{}
}

// StartDefine discards any existing window and starts collecting corners.
func (w *Window) StartDefine() {
	w.corners = w.corners[:0]
	w.defining = true
	w.drag = HandleNone
}

// Defining reports whether corners are being collected.
func (w *Window) Defining() bool { return w.defining }

// AddCorner records one corner while defining. It reports true when this
// corner completed the window, at which point defining mode ends and the
// caller re-runs clipping. Calls outside defining mode are ignored.
func (w *Window) AddCorner(p geom.Point) bool {
	if !w.defining || len(w.corners) >= 2 {
		return false
	}
	w.corners = append(w.corners, p)
	if len(w.corners) == 2 {
		w.defining = false
		return true
	}
	return false
}

// Clear drops the window. It reports whether a complete window was present,
// in which case the caller must restore the scene.
func (w *Window) Clear() bool {
	had := w.Present()
	w.corners = w.corners[:0]
	w.defining = false
	w.drag = HandleNone
	return had
}

// Present reports whether both corners are set.
func (w *Window) Present() bool { return len(w.corners) == 2 }

// Pending returns the corners collected so far while defining.
func (w *Window) Pending() []geom.Point {
	if !w.defining {
		return nil
	}
	return geom.ClonePoints(w.corners)
}

// StoredCorners returns the two corners in the order they are stored.
func (w *Window) StoredCorners() (geom.Point, geom.Point, bool) {
	if !w.Present() {
		return geom.Point{}, geom.Point{}, false
	}
	return w.corners[0], w.corners[1], true
}

// Bounds returns the normalized rectangle of the window.
func (w *Window) Bounds() (geom.Rect, bool) {
	if !w.Present() {
		return geom.Rect{}, false
	}
	return geom.RectFromCorners(w.corners[0], w.corners[1]), true
}

// Corners returns the logical corners in TL, TR, BL, BR order.
func (w *Window) Corners() ([4]geom.Point, bool) {
	r, ok := w.Bounds()
	if !ok {
		return [4]geom.Point{}, false
	}
	return r.Corners(), true
}

// HandleAt returns the handle under p. Corners are tested in TL, TR, BL, BR
// order; a point inside the window that is near no corner means move.
func (w *Window) HandleAt(p geom.Point) Handle {
	r, ok := w.Bounds()
	if !ok {
		return HandleNone
	}
	c := r.Corners()
	for i, h := range [4]Handle{HandleResizeTL, HandleResizeTR, HandleResizeBL, HandleResizeBR} {
		if nearCorner(p, c[i]) {
			return h
		}
	}
	if geom.PointInRect(p, r.Min, r.Max) {
		return HandleMove
	}
	return HandleNone
}

func nearCorner(p, c geom.Point) bool {
	return math.Abs(p.X-c.X) <= HandleThreshold && math.Abs(p.Y-c.Y) <= HandleThreshold
}

// BeginDrag starts a drag of h with the pointer at p. It reports whether a
// drag actually started.
func (w *Window) BeginDrag(h Handle, p geom.Point) bool {
	if !w.Present() || h == HandleNone {
		return false
	}
	w.drag = h
	w.lastPos = p
	return true
}

// Dragging returns the active drag handle, or HandleNone.
func (w *Window) Dragging() Handle { return w.drag }

// DragTo applies the pointer motion since the last sample to the stored
// corners. Resize handles move one stored corner coordinate each and never
// clamp, so dragging past the opposite edge flips the window. It reports
// whether the window changed.
func (w *Window) DragTo(p geom.Point) bool {
	if w.drag == HandleNone || !w.Present() {
		return false
	}
	d := p.Sub(w.lastPos)
	w.lastPos = p
	if d.X == 0 && d.Y == 0 {
		return false
	}

	c1, c2 := &w.corners[0], &w.corners[1]
	switch w.drag {
	case HandleMove:
		*c1 = c1.Add(d)
		*c2 = c2.Add(d)
	case HandleResizeTL:
		c1.X += d.X
		c2.Y += d.Y
	case HandleResizeTR:
		c2.X += d.X
		c2.Y += d.Y
	case HandleResizeBL:
		c1.X += d.X
		c1.Y += d.Y
	case HandleResizeBR:
		c2.X += d.X
		c1.Y += d.Y
	}
	return true
}

// EndDrag finishes the active drag.
func (w *Window) EndDrag() {
	w.drag = HandleNone
}
