package geom

// Viewport maps device pixels onto world space. Device y grows downwards,
// world y grows upwards.
type Viewport struct {
	Width  float64
	Height float64
}

// ScreenToWorld converts a pixel position to world coordinates.
func (v Viewport) ScreenToWorld(px, py float64) Point {
	span := WorldMax - WorldMin
	return Point{
		X: px/v.Width*span + WorldMin,
		Y: WorldMax - py/v.Height*span,
	}
}

// DeltaToWorld converts a relative pointer motion in pixels to a world-space
// delta.
func (v Viewport) DeltaToWorld(dx, dy float64) Point {
	span := WorldMax - WorldMin
	return Point{X: dx / v.Width * span, Y: -dy / v.Height * span}
}
