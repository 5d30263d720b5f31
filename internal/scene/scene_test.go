package scene

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorlab/clipedit/internal/geom"
)

func TestNewValidatesPointCount(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		points  int
		wantErr error
	}{
		{"point with one", KindPoint, 1, nil},
		{"point with two", KindPoint, 2, ErrPointCount},
		{"line with two", KindLine, 2, nil},
		{"line with three", KindLine, 3, ErrPointCount},
		{"rectangle with one", KindRectangle, 1, ErrPointCount},
		{"ellipse with two", KindEllipse, 2, nil},
		{"polygon with two", KindPolygon, 2, nil},
		{"polygon with five", KindPolygon, 5, nil},
		{"polygon with one", KindPolygon, 1, ErrPointCount},
		{"unknown kind", Kind("spline"), 2, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := make([]geom.Point, tt.points)
			e, err := New(tt.kind, pts, Red, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Len(t, e.OriginalPoints, tt.points)
		})
	}
}

func TestNewEntityDefaults(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 1)}
	e, err := New(KindRectangle, pts, Blue, 3)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, pts, e.OriginalPoints)
	assert.Equal(t, pts, e.VisiblePoints)
	assert.Equal(t, Blue, e.Color)
	assert.Equal(t, Blue, e.OriginalColor)
	assert.Equal(t, 3.0, e.Thickness)
	assert.Equal(t, IdentityTransform(), e.Transform)

	pts[0] = geom.Pt(9, 9)
	assert.Equal(t, geom.Pt(0, 0), e.OriginalPoints[0], "entity owns its points")

	e.VisiblePoints[1] = geom.Pt(5, 5)
	assert.Equal(t, geom.Pt(2, 1), e.OriginalPoints[1], "visible and original do not alias")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Line ")
	require.NoError(t, err)
	assert.Equal(t, KindLine, k)

	k, err = ParseKind("square")
	require.NoError(t, err)
	assert.Equal(t, KindRectangle, k)

	_, err = ParseKind("bezier")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestClampThickness(t *testing.T) {
	assert.Equal(t, 0.5, ClampThickness(0))
	assert.Equal(t, 10.0, ClampThickness(42))
	assert.Equal(t, 1.5, ClampThickness(1.4))
	assert.Equal(t, 2.0, ClampThickness(2))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Yellow")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)

	c, err = ParseColor("#0000ff")
	require.NoError(t, err)
	assert.Equal(t, "blue", ColorName(c))

	_, err = ParseColor("mauve-ish")
	assert.Error(t, err)

	assert.Equal(t, "#336699", ColorName(mustHex(t, "#336699")))
}

func mustHex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := ParseColor(s)
	require.NoError(t, err)
	return c
}

func TestExtent(t *testing.T) {
	rect := NewRectangle(geom.Pt(3, -1), geom.Pt(-2, 4), Red, 1)
	assert.Equal(t, geom.Rect{Min: geom.Pt(-2, -1), Max: geom.Pt(3, 4)}, rect.Extent())

	// Box of [center, radius point], the same approximation the clip pass uses.
	ell := NewEllipse(geom.Pt(4, 0), geom.Pt(2, 1), Red, 1)
	assert.Equal(t, geom.Rect{Min: geom.Pt(2, 0), Max: geom.Pt(4, 1)}, ell.Extent())
	assert.Equal(t, ell.Extent(), ell.VisibleExtent())

	pt := NewPoint(geom.Pt(2, 2), Red)
	assert.Equal(t, geom.Rect{Min: geom.Pt(2, 2), Max: geom.Pt(2, 2)}, pt.Extent())
}

func TestPivot(t *testing.T) {
	assert.Equal(t, geom.Pt(1, 1), NewRectangle(geom.Pt(0, 2), geom.Pt(2, 0), Red, 1).Pivot())
	assert.Equal(t, geom.Pt(4, -5), NewEllipse(geom.Pt(4, -5), geom.Pt(1, 1), Red, 1).Pivot())

	poly, err := NewPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(3, 0), geom.Pt(0, 3)}, Red, 1)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1, 1), poly.Pivot())
}

func TestTransformsByKind(t *testing.T) {
	t.Run("rectangle accumulates transform", func(t *testing.T) {
		e := NewRectangle(geom.Pt(0, 0), geom.Pt(2, 2), Red, 1)
		e.Translate(geom.Pt(1, -1))
		e.Translate(geom.Pt(0.5, 0))
		e.Rotate(30)
		e.Rotate(-10)
		e.Scale(geom.Pt(0.5, -1.5))

		assert.Equal(t, geom.Pt(1.5, -1), e.Transform.Translation)
		assert.Equal(t, 20.0, e.Transform.Rotation)
		assert.Equal(t, geom.Pt(1.5, -0.5), e.Transform.Scale, "scale is not clamped")
		assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(2, 2)}, e.OriginalPoints)
	})

	t.Run("point translates only", func(t *testing.T) {
		e := NewPoint(geom.Pt(0, 0), Red)
		e.Rotate(45)
		e.Scale(geom.Pt(1, 1))
		e.Translate(geom.Pt(2, 3))
		assert.Equal(t, Transform{Translation: geom.Pt(2, 3), Scale: geom.Pt(1, 1)}, e.Transform)
	})

	t.Run("line moves its endpoints", func(t *testing.T) {
		e := NewLine(geom.Pt(0, 0), geom.Pt(2, 0), Red, 1)
		e.Translate(geom.Pt(1, 1))
		e.Rotate(90)
		e.Scale(geom.Pt(3, 3))

		assert.Equal(t, []geom.Point{geom.Pt(1, 1), geom.Pt(3, 1)}, e.OriginalPoints)
		assert.Equal(t, []geom.Point{geom.Pt(1, 1), geom.Pt(3, 1)}, e.VisiblePoints)
		assert.Equal(t, IdentityTransform(), e.Transform)
		assert.Equal(t, geom.Identity(), e.RenderMatrix())

		e.SetLineEnd(geom.Pt(5, 5))
		a, b := e.LineEndpoints()
		assert.Equal(t, geom.Pt(1, 1), a)
		assert.Equal(t, geom.Pt(5, 5), b)
	})
}

func TestRenderMatrixUsesPivot(t *testing.T) {
	e := NewRectangle(geom.Pt(0, 0), geom.Pt(2, 2), Red, 1)
	e.Rotate(90)
	e.Translate(geom.Pt(10, 0))

	m := e.RenderMatrix()
	c := m.Apply(geom.Pt(1, 1))
	assert.InDelta(t, 11, c.X, 1e-9)
	assert.InDelta(t, 1, c.Y, 1e-9)

	corner := m.Apply(geom.Pt(2, 1))
	assert.InDelta(t, 11, corner.X, 1e-9)
	assert.InDelta(t, 2, corner.Y, 1e-9)
}

func TestNewEllipseKeepsRadiusAsGiven(t *testing.T) {
	e := NewEllipse(geom.Pt(0, 0), geom.Pt(-2, 1), Red, 1)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(-2, 1)}, e.OriginalPoints)
}

func TestDrawnExtent(t *testing.T) {
	tests := []struct {
		name string
		ent  func() *Entity
		want geom.Rect
	}{
		{
			name: "rotated and moved rectangle",
			ent: func() *Entity {
				e := NewRectangle(geom.Pt(0, 0), geom.Pt(4, 2), Red, 1)
				e.Rotate(90)
				e.Translate(geom.Pt(10, 0))
				return e
			},
			want: geom.Rect{Min: geom.Pt(11, -1), Max: geom.Pt(13, 3)},
		},
		{
			name: "ellipse covers center plus or minus radius",
			ent: func() *Entity {
				e := NewEllipse(geom.Pt(0, 0), geom.Pt(2, 1), Red, 1)
				e.Rotate(90)
				return e
			},
			want: geom.Rect{Min: geom.Pt(-1, -2), Max: geom.Pt(1, 2)},
		},
		{
			name: "scaled polygon",
			ent: func() *Entity {
				e, _ := NewPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(3, 0), geom.Pt(0, 3)}, Red, 1)
				e.Scale(geom.Pt(1, 1))
				return e
			},
			want: geom.Rect{Min: geom.Pt(-1, -1), Max: geom.Pt(5, 5)},
		},
		{
			name: "hidden entity",
			ent: func() *Entity {
				e := NewPoint(geom.Pt(1, 1), Red)
				e.Hide()
				return e
			},
			want: geom.Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ent().DrawnExtent()
			assert.InDelta(t, tt.want.Min.X, got.Min.X, 1e-9)
			assert.InDelta(t, tt.want.Min.Y, got.Min.Y, 1e-9)
			assert.InDelta(t, tt.want.Max.X, got.Max.X, 1e-9)
			assert.InDelta(t, tt.want.Max.Y, got.Max.Y, 1e-9)
		})
	}
}

func TestRestoreAndHide(t *testing.T) {
	e := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), Red, 1)
	e.Hide()
	e.Color = Highlight
	assert.False(t, e.IsVisible())
	assert.NotNil(t, e.VisiblePoints)

	e.Restore()
	assert.True(t, e.IsVisible())
	assert.Equal(t, e.OriginalPoints, e.VisiblePoints)
	assert.Equal(t, Red, e.Color)
}

func TestSceneOrderAndTopmost(t *testing.T) {
	s := NewScene()
	a := NewPoint(geom.Pt(0, 0), Red)
	b := NewPoint(geom.Pt(0, 0), Blue)
	s.Add(a)
	s.Add(b)

	assert.Equal(t, []*Entity{a, b}, s.Entities())
	assert.Same(t, b, s.Topmost(func(*Entity) bool { return true }))
	assert.Same(t, a, s.Topmost(func(e *Entity) bool { return e.Color == Red }))
	assert.Nil(t, s.Topmost(func(*Entity) bool { return false }))

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	s.Clear()
	assert.Zero(t, s.Len())
	_, ok = s.Get(a.ID)
	assert.False(t, ok)
}

func TestSampleSceneHasEveryKind(t *testing.T) {
	s := NewSampleScene()
	seen := map[Kind]bool{}
	for _, e := range s.Entities() {
		seen[e.Kind] = true
	}
	for _, k := range Kinds {
		assert.True(t, seen[k], "missing %s", k)
	}
}
