package scene

import "github.com/vectorlab/clipedit/internal/geom"

// NewSampleScene builds a scene with one entity of every kind, spread over
// world space so that a clip window can be tried against it right away.
func NewSampleScene() *Scene {
	s := NewScene()

	s.Add(NewPoint(geom.Pt(-6, 6), White))
	s.Add(NewLine(geom.Pt(-8, -2), geom.Pt(8, 3), Red, 2))
	s.Add(NewRectangle(geom.Pt(-7, -8), geom.Pt(-3, -4), Blue, 1.5))
	s.Add(NewEllipse(geom.Pt(4, -5), geom.Pt(2.5, 1.5), Magenta, 1))

	triangle, err := NewPolygon([]geom.Point{
		geom.Pt(2, 4),
		geom.Pt(6, 4),
		geom.Pt(4, 8),
		geom.Pt(2, 4),
	}, Cyan, 1)
	if err == nil {
		s.Add(triangle)
	}

	return s
}
