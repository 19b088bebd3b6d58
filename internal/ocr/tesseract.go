package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "eng"

// MinTextHeight is the crop height below which pre-processing upscales.
const MinTextHeight = 48

// Recognizer extracts text from a raster region.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(img image.Image) (string, error)

// Recognize calls f(img).
func (f RecognizerFunc) Recognize(img image.Image) (string, error) { return f(img) }

// EngineError reports a failure inside the OCR engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Tesseract recognizes text with a local Tesseract installation.
//
// A fresh engine client is created per call; Tesseract clients are not safe
// for concurrent use and the batch is sequential anyway.
type Tesseract struct {
	// Language is a Tesseract language code such as "eng" or "eng+deu".
	Language string

	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string

	// SingleBlock treats each crop as one uniform block of text, which suits
	// hand-drawn zones better than full page segmentation.
	SingleBlock bool

	// Preprocess enables grayscale, contrast and upscaling before recognition.
	Preprocess bool
}

// NewTesseract returns a recognizer for the given language.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = DefaultLanguage
	}
	return &Tesseract{Language: language, SingleBlock: true}
}

var _ Recognizer = (*Tesseract)(nil)

// Recognize runs OCR on img and returns the text with surrounding whitespace
// removed.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", nil
	}
	if t.Preprocess {
		img = Prepare(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", &EngineError{Op: "encode", Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return "", &EngineError{Op: "set tessdata path", Err: err}
		}
	}

	lang := t.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		return "", &EngineError{Op: "set language", Err: err}
	}

	if t.SingleBlock {
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			return "", &EngineError{Op: "set page segmentation", Err: err}
		}
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", &EngineError{Op: "set image", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &EngineError{Op: "recognize", Err: err}
	}

	return strings.TrimSpace(text), nil
}

// Prepare converts img to a high-contrast grayscale image, upscaling crops
// shorter than MinTextHeight so glyphs reach a size Tesseract handles well.
func Prepare(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	out := adjust.Contrast(gray, 0.4)

	b := out.Bounds()
	if b.Dy() > 0 && b.Dy() < MinTextHeight {
		factor := (MinTextHeight + b.Dy() - 1) / b.Dy()
		out = transform.Resize(out, b.Dx()*factor, b.Dy()*factor, transform.Linear)
	}
	return out
}

// OCRInfo contains information about the OCR subsystem.
type OCRInfo struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Language  string `json:"language"`
	Backend   string `json:"backend"`
}

// Info reports the engine version for diagnostics.
func (t *Tesseract) Info() OCRInfo {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	return OCRInfo{
		Available: version != "",
		Version:   version,
		Language:  t.Language,
		Backend:   "gosseract",
	}
}
