package engine

import (
	"math"

	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

const (
	// HitThreshold is the pick distance, in world units, for points and lines.
	HitThreshold = 0.5

	rotateGain = 10.0
	scaleGain  = 0.1

	minLineLength = 0.1
	directionEps  = 1e-4
)

// linePivot is captured once when a line is selected for rotate or scale.
// The line swings or stretches around origin along unit.
type linePivot struct {
	set    bool
	origin geom.Point
	unit   geom.Point
	length float64
}

func captureLinePivot(ent *scene.Entity) linePivot {
	a, b := ent.LineEndpoints()
	unit, length := b.Sub(a).Normalize()
	if length == 0 {
		unit = geom.Pt(1, 0)
	}
	return linePivot{set: true, origin: a, unit: unit, length: length}
}

// Select returns the topmost visible entity under world position p, or nil.
func (e *Engine) Select(p geom.Point) *scene.Entity {
	return e.scene.Topmost(func(ent *scene.Entity) bool {
		return hit(ent, p)
	})
}

// HitTest returns the ID of the topmost entity under p, or the empty string.
func (e *Engine) HitTest(p geom.Point) string {
	if ent := e.Select(p); ent != nil {
		return ent.ID
	}
	return ""
}

func hit(ent *scene.Entity, p geom.Point) bool {
	if !ent.IsVisible() || p.IsNaN() {
		return false
	}
	pts := ent.VisiblePoints
	switch ent.Kind {
	case scene.KindPoint:
		d := p.Sub(pts[0]).Abs()
		return d.X < HitThreshold && d.Y < HitThreshold
	case scene.KindLine:
		return geom.DistancePointToSegment(p, pts[0], pts[1]) < HitThreshold
	default:
		return ent.VisibleExtent().Contains(p)
	}
}

// selectForTransform picks the entity a transform gesture will act on.
func (e *Engine) selectForTransform(p geom.Point) {
	e.selected = e.Select(p)
	e.pivot = linePivot{}
	if e.selected != nil && e.selected.IsLine() && (e.mode == ModeRotate || e.mode == ModeScale) {
		e.pivot = captureLinePivot(e.selected)
	}
}

// applyTransform applies one drag step to the selected entity.
func (e *Engine) applyTransform(delta, pos geom.Point) {
	ent := e.selected
	if ent.IsLine() {
		e.transformLine(ent, delta, pos)
		return
	}
	switch e.mode {
	case ModeTranslate:
		ent.Translate(delta)
	case ModeRotate:
		ent.Rotate(delta.X * rotateGain)
	case ModeScale:
		ent.Scale(delta.Mul(scaleGain))
	}
}

// transformLine moves line endpoints directly. Translate shifts the whole
// line and its pivot; rotate and scale move only the far endpoint and re-clip
// the line.
func (e *Engine) transformLine(ent *scene.Entity, delta, pos geom.Point) {
	switch e.mode {
	case ModeTranslate:
		ent.Translate(delta)
		if e.pivot.set {
			e.pivot.origin = e.pivot.origin.Add(delta)
		}
	case ModeRotate:
		if !e.pivot.set {
			return
		}
		dir, length := pos.Sub(e.pivot.origin).Normalize()
		if length <= directionEps {
			return
		}
		ent.SetLineEnd(e.pivot.origin.Add(dir.Mul(e.pivot.length)))
		e.reclip(ent)
	case ModeScale:
		if !e.pivot.set {
			return
		}
		proj := pos.Sub(e.pivot.origin).Dot(e.pivot.unit)
		if math.IsNaN(proj) {
			return
		}
		ent.SetLineEnd(e.pivot.origin.Add(e.pivot.unit.Mul(math.Max(minLineLength, proj))))
		e.reclip(ent)
	}
}

// SelectionBounds returns the drawn extent of the selected entity, live
// transform included, for a selection overlay.
func (e *Engine) SelectionBounds() (geom.Rect, bool) {
	if e.selected == nil || !e.selected.IsVisible() {
		return geom.Rect{}, false
	}
	return e.selected.DrawnExtent(), true
}
