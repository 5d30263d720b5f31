package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistancePointToSegment(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		a, b Point
		want float64
	}{
		{"perpendicular foot inside", Pt(1, 1), Pt(0, 0), Pt(2, 0), 1},
		{"clamped to start", Pt(-3, 4), Pt(0, 0), Pt(2, 0), 5},
		{"clamped to end", Pt(5, 4), Pt(0, 0), Pt(2, 0), 5},
		{"on segment", Pt(1, 0), Pt(0, 0), Pt(2, 0), 0},
		{"degenerate segment", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
		{"diagonal", Pt(0, 2), Pt(0, 0), Pt(2, 2), math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistancePointToSegment(tt.p, tt.a, tt.b), 1e-9)
		})
	}
}

func TestPointInRect(t *testing.T) {
	lo, hi := Pt(-5, -5), Pt(5, 5)

	assert.True(t, PointInRect(Pt(0, 0), lo, hi))
	assert.True(t, PointInRect(Pt(5, -5), lo, hi), "edges are inclusive")
	assert.False(t, PointInRect(Pt(5.0001, 0), lo, hi))
	assert.False(t, PointInRect(Pt(math.NaN(), 0), lo, hi), "NaN never matches")
}

func TestBoundingBox(t *testing.T) {
	r := BoundingBox([]Point{Pt(3, -1), Pt(-2, 4), Pt(0, 0)})
	assert.Equal(t, Rect{Min: Pt(-2, -1), Max: Pt(3, 4)}, r)

	single := BoundingBox([]Point{Pt(1, 2)})
	assert.Equal(t, Pt(1, 2), single.Min)
	assert.Equal(t, Pt(1, 2), single.Max)

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestRectFromCornersNormalizes(t *testing.T) {
	r := RectFromCorners(Pt(4, -1), Pt(-2, 3))
	assert.Equal(t, Pt(-2, -1), r.Min)
	assert.Equal(t, Pt(4, 3), r.Max)
	assert.Equal(t, Pt(1, 1), r.Center())
}

func TestRectRelations(t *testing.T) {
	window := RectFromCorners(Pt(-5, -5), Pt(5, 5))

	tests := []struct {
		name       string
		box        Rect
		intersects bool
		contained  bool
	}{
		{"strictly inside", RectFromCorners(Pt(-1, -1), Pt(1, 1)), true, true},
		{"same as window", window, true, true},
		{"straddling right edge", RectFromCorners(Pt(4, 0), Pt(6, 1)), true, false},
		{"touching edge", RectFromCorners(Pt(5, 0), Pt(7, 1)), true, false},
		{"strictly outside", RectFromCorners(Pt(6, 6), Pt(8, 8)), false, false},
		{"degenerate point inside", RectFromCorners(Pt(2, 2), Pt(2, 2)), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.intersects, window.Intersects(tt.box))
			assert.Equal(t, tt.contained, window.ContainsRect(tt.box))
		})
	}
}

func TestRectCornersOrder(t *testing.T) {
	c := RectFromCorners(Pt(0, 0), Pt(2, 1)).Corners()
	assert.Equal(t, [4]Point{Pt(0, 1), Pt(2, 1), Pt(0, 0), Pt(2, 0)}, c)
}

func TestNormalize(t *testing.T) {
	u, l := Pt(3, 4).Normalize()
	assert.InDelta(t, 5, l, 1e-12)
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.InDelta(t, 0.8, u.Y, 1e-12)

	z, l0 := Point{}.Normalize()
	assert.Equal(t, Point{}, z)
	assert.Zero(t, l0)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Pt(1, 1), Centroid([]Point{Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2)}))
	assert.Equal(t, Point{}, Centroid(nil))
}

func TestClonePointsIsIndependent(t *testing.T) {
	src := []Point{Pt(1, 1)}
	dst := ClonePoints(src)
	dst[0].X = 9
	assert.Equal(t, 1.0, src[0].X)
	assert.NotNil(t, ClonePoints(nil))
}

func TestViewportScreenToWorld(t *testing.T) {
	v := Viewport{Width: 800, Height: 600}
	assert.Equal(t, Pt(-10, 10), v.ScreenToWorld(0, 0))
	assert.Equal(t, Pt(0, 0), v.ScreenToWorld(400, 300))
	assert.Equal(t, Pt(10, -10), v.ScreenToWorld(800, 600))

	d := v.DeltaToWorld(40, 30)
	assert.InDelta(t, 1, d.X, 1e-12)
	assert.InDelta(t, -1, d.Y, 1e-12)
}
