package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/zone-renamer/internal/zone"
)

// Default preview canvas size.
const (
	DefaultCanvasWidth  = 400
	DefaultCanvasHeight = 300
)

// FitPreview downsizes img to fit a canvasW x canvasH canvas, preserving the
// aspect ratio, and returns the thumbnail with the geometry needed to map
// canvas coordinates back to img. Images that already fit are not enlarged.
func FitPreview(img image.Image, canvasW, canvasH int) (*image.NRGBA, zone.Geometry, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, zone.Geometry{}, fmt.Errorf("invalid canvas size %dx%d", canvasW, canvasH)
	}
	src := img.Bounds()
	if src.Empty() {
		return nil, zone.Geometry{}, fmt.Errorf("image has no pixels")
	}

	thumb := imaging.Fit(img, canvasW, canvasH, imaging.Lanczos)
	tb := thumb.Bounds()

	return thumb, zone.Geometry{
		CanvasWidth:   canvasW,
		CanvasHeight:  canvasH,
		DisplayWidth:  tb.Dx(),
		DisplayHeight: tb.Dy(),
		SourceWidth:   src.Dx(),
		SourceHeight:  src.Dy(),
	}, nil
}

// OverlayOptions control how zones are drawn on the preview.
type OverlayOptions struct {
	// Background fills the letterbox bars. Hex "#RRGGBB"; default white.
	Background string

	// LineWidth is the outline thickness in pixels; default 2.
	LineWidth int
}

// RenderOverlay composes the preview canvas: the thumbnail centered per g,
// and every zone outlined at its display position with a "Zone N" label.
func RenderOverlay(thumb image.Image, g zone.Geometry, zones []zone.Rect, opts OverlayOptions) (*image.RGBA, error) {
	bg := color.Color(color.White)
	if opts.Background != "" {
		c, err := colorful.Hex(opts.Background)
		if err != nil {
			return nil, fmt.Errorf("invalid background color %q: %w", opts.Background, err)
		}
		bg = c
	}
	lw := opts.LineWidth
	if lw <= 0 {
		lw = 2
	}

	canvas := image.NewRGBA(image.Rect(0, 0, g.CanvasWidth, g.CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	at := image.Pt(g.OffsetX(), g.OffsetY())
	tb := thumb.Bounds()
	draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(tb.Size())}, thumb, tb.Min, draw.Over)

	palette := ZonePalette(len(zones))
	for i, z := range zones {
		d := zone.ToDisplay(z, g)
		strokeRect(canvas, d, lw, palette[i])
		drawLabel(canvas, d.X1+5, d.Y1+5, fmt.Sprintf("Zone %d", i+1), palette[i])
	}

	return canvas, nil
}

// ZonePalette returns n visually distinct outline colors. Hues are spaced by
// the golden angle so neighbouring zones never share a color.
func ZonePalette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		hue := float64(i) * 137.508
		for hue >= 360 {
			hue -= 360
		}
		out[i] = colorful.Hsv(hue, 0.85, 0.9).Clamped()
	}
	return out
}

// strokeRect draws the outline of r, lw pixels thick, inside r.
func strokeRect(img *image.RGBA, r zone.Rect, lw int, c color.Color) {
	fill := func(x1, y1, x2, y2 int) {
		rect := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
		if !rect.Empty() {
			draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	fill(r.X1, r.Y1, r.X2, r.Y1+lw) // top
	fill(r.X1, r.Y2-lw, r.X2, r.Y2) // bottom
	fill(r.X1, r.Y1, r.X1+lw, r.Y2) // left
	fill(r.X2-lw, r.Y1, r.X2, r.Y2) // right
}

// drawLabel writes text with its top-left corner at (x, y).
func drawLabel(img *image.RGBA, x, y int, text string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Ascent)},
	}
	d.DrawString(text)
}

// PreviewResult is a rendered preview ready to ship to a client.
type PreviewResult struct {
	Geometry    zone.Geometry `json:"geometry"`
	OffsetX     int           `json:"offset_x"`
	OffsetY     int           `json:"offset_y"`
	ImageBase64 string        `json:"image_base64"`
	MimeType    string        `json:"mime_type"`
}

// RenderPreview fits img to the canvas and draws zones over it.
func RenderPreview(img image.Image, canvasW, canvasH int, zones []zone.Rect, opts OverlayOptions) (*image.RGBA, *PreviewResult, error) {
	thumb, g, err := FitPreview(img, canvasW, canvasH)
	if err != nil {
		return nil, nil, err
	}
	canvas, err := RenderOverlay(thumb, g, zones, opts)
	if err != nil {
		return nil, nil, err
	}
	encoded, err := EncodePNGBase64(canvas)
	if err != nil {
		return nil, nil, err
	}
	return canvas, &PreviewResult{
		Geometry:    g,
		OffsetX:     g.OffsetX(),
		OffsetY:     g.OffsetY(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// EncodePNGBase64 encodes img as a base64 PNG.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
