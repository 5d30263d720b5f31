package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/typeid"
)

// Stroke thickness bounds and step.
const (
	MinThickness  = 0.5
	MaxThickness  = 10.0
	ThicknessStep = 0.5
)

// Transform is the live render-time state of a non-line entity. Rotation and
// scale are applied around the entity's pivot, then translation is added.
type Transform struct {
	Translation geom.Point `json:"translation"`
	Rotation    float64    `json:"rotation"` // degrees, unbounded
	Scale       geom.Point `json:"scale"`
}

// IdentityTransform is the state every entity starts with.
func IdentityTransform() Transform {
	return Transform{Scale: geom.Pt(1, 1)}
}

// Entity is one drawable object. OriginalPoints is the source of truth;
// VisiblePoints is derived by the clipping engine and empty when hidden.
//
// Lines never use Transform: their endpoints are moved directly so that
// pivot-based rotate and scale keep exact control of both ends.
type Entity struct {
	ID             string
	Kind           Kind
	OriginalPoints []geom.Point
	VisiblePoints  []geom.Point
	Color          colorful.Color
	OriginalColor  colorful.Color
	Thickness      float64
	Transform      Transform
}

// New creates an entity of the given kind. Point count is validated against
// the kind; thickness is clamped into range.
func New(kind Kind, points []geom.Point, color colorful.Color, thickness float64) (*Entity, error) {
	if err := kind.CheckPoints(len(points)); err != nil {
		return nil, err
	}
	return &Entity{
		ID:             typeid.NewEntityID(),
		Kind:           kind,
		OriginalPoints: geom.ClonePoints(points),
		VisiblePoints:  geom.ClonePoints(points),
		Color:          color,
		OriginalColor:  color,
		Thickness:      ClampThickness(thickness),
		Transform:      IdentityTransform(),
	}, nil
}

func mustNew(kind Kind, points []geom.Point, color colorful.Color, thickness float64) *Entity {
	e, err := New(kind, points, color, thickness)
	if err != nil {
		panic(err)
	}
	return e
}

// NewPoint creates a point entity. Points carry the default thickness.
func NewPoint(p geom.Point, color colorful.Color) *Entity {
	return mustNew(KindPoint, []geom.Point{p}, color, 1)
}

// NewLine creates a line between p1 and p2.
func NewLine(p1, p2 geom.Point, color colorful.Color, thickness float64) *Entity {
	return mustNew(KindLine, []geom.Point{p1, p2}, color, thickness)
}

// NewRectangle creates an axis-aligned rectangle from two opposite corners.
func NewRectangle(c1, c2 geom.Point, color colorful.Color, thickness float64) *Entity {
	return mustNew(KindRectangle, []geom.Point{c1, c2}, color, thickness)
}

// NewEllipse creates an ellipse. radius holds (rx, ry), not a world position,
// and is stored as given.
func NewEllipse(center, radius geom.Point, color colorful.Color, thickness float64) *Entity {
	return mustNew(KindEllipse, []geom.Point{center, radius}, color, thickness)
}

// NewPolygon creates a polygon through the given vertices. It returns an error
// for fewer than two vertices.
func NewPolygon(points []geom.Point, color colorful.Color, thickness float64) (*Entity, error) {
	return New(KindPolygon, points, color, thickness)
}

// ClampThickness snaps t to the thickness step and clamps it into
// [MinThickness, MaxThickness].
func ClampThickness(t float64) float64 {
	if math.IsNaN(t) {
		return 1
	}
	t = math.Round(t/ThicknessStep) * ThicknessStep
	return math.Max(MinThickness, math.Min(MaxThickness, t))
}

// IsLine reports whether the entity uses direct endpoint mutation.
func (e *Entity) IsLine() bool { return e.Kind == KindLine }

// IsVisible reports whether the entity has anything to draw.
func (e *Entity) IsVisible() bool { return len(e.VisiblePoints) > 0 }

// Restore resets the derived state to the unclipped original.
func (e *Entity) Restore() {
	e.VisiblePoints = geom.ClonePoints(e.OriginalPoints)
	e.Color = e.OriginalColor
}

// Hide clears the visible geometry.
func (e *Entity) Hide() {
	e.VisiblePoints = []geom.Point{}
}

// Extent returns the bounding box of the original points. This is what the
// clip pass tests area shapes against; for an ellipse it is the box of
// [center, radius point], not of the drawn curve.
func (e *Entity) Extent() geom.Rect {
	return geom.BoundingBox(e.OriginalPoints)
}

// VisibleExtent is the bounding box of the visible points, used for picking.
func (e *Entity) VisibleExtent() geom.Rect {
	return geom.BoundingBox(e.VisiblePoints)
}

// DrawnExtent returns the box the entity covers when drawn: its visible
// outline with the live transform applied. It is empty for hidden entities.
func (e *Entity) DrawnExtent() geom.Rect {
	if !e.IsVisible() {
		return geom.Rect{}
	}
	return geom.BoundingBox(e.RenderMatrix().ApplyAll(e.outline()))
}

func (e *Entity) outline() []geom.Point {
	pts := e.VisiblePoints
	switch e.Kind {
	case KindRectangle:
		c := geom.BoundingBox(pts).Corners()
		return c[:]
	case KindEllipse:
		r := pts[1].Abs()
		c := geom.Rect{Min: pts[0].Sub(r), Max: pts[0].Add(r)}.Corners()
		return c[:]
	default:
		return pts
	}
}

// Pivot returns the point rotation and scale are applied around.
func (e *Entity) Pivot() geom.Point {
	switch e.Kind {
	case KindRectangle:
		return geom.BoundingBox(e.OriginalPoints).Center()
	case KindEllipse, KindPoint:
		return e.OriginalPoints[0]
	default:
		return geom.Centroid(e.OriginalPoints)
	}
}

// RenderMatrix returns the matrix a renderer applies to the visible points.
// Lines are always drawn untransformed.
func (e *Entity) RenderMatrix() geom.Matrix2D {
	if e.IsLine() {
		return geom.Identity()
	}
	t := e.Transform
	return geom.AboutPivot(t.Translation, t.Scale, t.Rotation, e.Pivot())
}

// --- Transforms ---

// Translate offsets the entity by d. Lines move their endpoints, both
// original and visible; every other kind accumulates translation.
func (e *Entity) Translate(d geom.Point) {
	if e.IsLine() {
		for i := range e.OriginalPoints {
			e.OriginalPoints[i] = e.OriginalPoints[i].Add(d)
		}
		for i := range e.VisiblePoints {
			e.VisiblePoints[i] = e.VisiblePoints[i].Add(d)
		}
		return
	}
	e.Transform.Translation = e.Transform.Translation.Add(d)
}

// Rotate accumulates rotation in degrees. Lines and points ignore it.
func (e *Entity) Rotate(degrees float64) {
	if e.Kind == KindLine || e.Kind == KindPoint {
		return
	}
	e.Transform.Rotation += degrees
}

// Scale adds d to the scale factors. There is no lower bound: zero and
// negative factors collapse or mirror the shape. Lines and points ignore it.
func (e *Entity) Scale(d geom.Point) {
	if e.Kind == KindLine || e.Kind == KindPoint {
		return
	}
	e.Transform.Scale = e.Transform.Scale.Add(d)
}

// --- Line endpoint operations ---

// LineEndpoints returns the original endpoints of a line.
func (e *Entity) LineEndpoints() (geom.Point, geom.Point) {
	return e.OriginalPoints[0], e.OriginalPoints[1]
}

// SetLineEnd moves the second endpoint of a line. The caller re-runs the
// clip pass for the entity to refresh its visible geometry.
func (e *Entity) SetLineEnd(p geom.Point) {
	if !e.IsLine() {
		return
	}
	e.OriginalPoints[1] = p
}
