package zone

// ToSource maps a point on the canvas to source-image pixels.
//
// The letterbox offset is removed, the result is clamped to the displayed
// image, and each axis is scaled by source/display and truncated.
func ToSource(p Point, g Geometry) Point {
	if g.DisplayWidth <= 0 || g.DisplayHeight <= 0 {
		return Point{}
	}
	x := clamp(p.X-g.OffsetX(), 0, g.DisplayWidth)
	y := clamp(p.Y-g.OffsetY(), 0, g.DisplayHeight)

	scaleX := float64(g.SourceWidth) / float64(g.DisplayWidth)
	scaleY := float64(g.SourceHeight) / float64(g.DisplayHeight)

	return Point{
		X: int(float64(x) * scaleX),
		Y: int(float64(y) * scaleY),
	}
}

// ToDisplay maps a source-space rectangle onto the canvas for drawing.
func ToDisplay(r Rect, g Geometry) Rect {
	if g.SourceWidth <= 0 || g.SourceHeight <= 0 {
		return Rect{}
	}
	scaleX := float64(g.DisplayWidth) / float64(g.SourceWidth)
	scaleY := float64(g.DisplayHeight) / float64(g.SourceHeight)
	offX, offY := g.OffsetX(), g.OffsetY()

	return Rect{
		X1: int(float64(r.X1)*scaleX) + offX,
		Y1: int(float64(r.Y1)*scaleY) + offY,
		X2: int(float64(r.X2)*scaleX) + offX,
		Y2: int(float64(r.Y2)*scaleY) + offY,
	}
}

// RectToSource maps both corners of a display-space rectangle to source space.
func RectToSource(r Rect, g Geometry) Rect {
	a := ToSource(Point{X: r.X1, Y: r.Y1}, g)
	b := ToSource(Point{X: r.X2, Y: r.Y2}, g)
	return NewRect(a.X, a.Y, b.X, b.Y)
}

// FromDrag turns a completed press-drag-release gesture into a source-space
// zone. The second return value is false when the gesture moved
// MinDragDistance pixels or less along either axis, or when the geometry is
// unusable; such gestures are clicks, not zones.
func FromDrag(start, end Point, g Geometry) (Rect, bool) {
	if abs(end.X-start.X) <= MinDragDistance || abs(end.Y-start.Y) <= MinDragDistance {
		return Rect{}, false
	}
	if g.Validate() != nil {
		return Rect{}, false
	}
	return RectToSource(NewRect(start.X, start.Y, end.X, end.Y), g), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
