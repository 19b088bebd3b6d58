package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/zone-renamer/internal/zone"
)

// CropRegion extracts r from img.
//
// r is clamped to the image, so a zone partly outside the image yields the
// overlapping part and a zone fully outside yields an empty (0x0) image.
func CropRegion(img image.Image, r zone.Rect) *image.NRGBA {
	b := img.Bounds()
	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Add(b.Min).Intersect(b)
	if rect.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return imaging.Crop(img, rect)
}

// IsEmpty reports whether img has no pixels.
func IsEmpty(img image.Image) bool {
	return img.Bounds().Empty()
}
