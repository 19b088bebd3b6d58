package zone

import "fmt"

// MinDragDistance is the largest pointer travel, in display pixels along either
// axis, that is still treated as a click rather than a zone.
const MinDragDistance = 10

// Point is a pixel coordinate in either display or source space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a rectangle with X1 <= X2 and Y1 <= Y2.
type Rect struct {
	X1 int `json:"x1" yaml:"x1"` // Left edge
	Y1 int `json:"y1" yaml:"y1"` // Top edge
	X2 int `json:"x2" yaml:"x2"` // Right edge
	Y2 int `json:"y2" yaml:"y2"` // Bottom edge
}

// NewRect builds a Rect from two opposite corners in any order.
func NewRect(x1, y1, x2, y2 int) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns X2 - X1.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// Geometry describes how a source image is shown on a preview canvas.
//
// It is recomputed every time the previewed image or the canvas changes and
// is never persisted.
type Geometry struct {
	CanvasWidth   int `json:"canvas_width"`
	CanvasHeight  int `json:"canvas_height"`
	DisplayWidth  int `json:"display_width"`
	DisplayHeight int `json:"display_height"`
	SourceWidth   int `json:"source_width"`
	SourceHeight  int `json:"source_height"`
}

// OffsetX is the left letterbox margin of the centered preview.
func (g Geometry) OffsetX() int { return floorDiv(g.CanvasWidth-g.DisplayWidth, 2) }

// OffsetY is the top letterbox margin of the centered preview.
func (g Geometry) OffsetY() int { return floorDiv(g.CanvasHeight-g.DisplayHeight, 2) }

// Validate reports whether the geometry can be used for mapping.
func (g Geometry) Validate() error {
	if g.DisplayWidth <= 0 || g.DisplayHeight <= 0 {
		return fmt.Errorf("invalid display size %dx%d", g.DisplayWidth, g.DisplayHeight)
	}
	if g.SourceWidth <= 0 || g.SourceHeight <= 0 {
		return fmt.Errorf("invalid source size %dx%d", g.SourceWidth, g.SourceHeight)
	}
	return nil
}

// floorDiv divides rounding toward negative infinity, so a display larger
// than the canvas still yields the same offsets as integer floor division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
