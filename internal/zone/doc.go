// Package zone models the rectangular OCR zones drawn on an image preview.
//
// Zones are stored in source-image pixel space. The preview the operator draws
// on is a downscaled copy of the source image centered on a canvas, so every
// gesture passes through a DisplayGeometry before it becomes a Rect:
//
//	canvas (Cw x Ch)
//	+----------------------------+
//	|   offsetX                  |
//	|   +--------------------+   |
//	|   | displayed image    |   |  Dw x Dh, aspect-preserving fit of Sw x Sh
//	|   +--------------------+   |
//	+----------------------------+
//
// # Coordinate System
//
// Rectangles use the image convention: (X1, Y1) is the top-left corner and
// (X2, Y2) the bottom-right corner, with X1 <= X2 and Y1 <= Y2 after
// normalization. Rectangles are not bounds-checked against any image; an
// out-of-range zone simply yields a smaller or empty crop later on.
//
// # Thread Safety
//
// Store is safe for concurrent use. The mapping functions are pure.
package zone
