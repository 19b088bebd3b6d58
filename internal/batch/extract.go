package batch

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/naming"
	"github.com/ironsheep/zone-renamer/internal/ocr"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// ExtractText recognizes the text inside one zone of img.
//
// The zone is clamped to the image; a zone entirely outside the image yields
// "" without consulting the recognizer. The text is trimmed and, when clean
// is set, passed through naming.Sanitize.
func ExtractText(rec ocr.Recognizer, img image.Image, r zone.Rect, clean bool) (string, error) {
	crop := imaging.CropRegion(img, r)
	if imaging.IsEmpty(crop) {
		return "", nil
	}

	text, err := rec.Recognize(crop)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if clean {
		text = naming.Sanitize(text)
	}
	return text, nil
}

// ZoneText is the recognized text of one zone.
type ZoneText struct {
	Zone int       `json:"zone"`
	Rect zone.Rect `json:"rect"`
	Text string    `json:"text"`
}

func (z ZoneText) String() string {
	return fmt.Sprintf("Zone %d: '%s'", z.Zone, z.Text)
}

// TestZones runs every zone against a single image without copying anything,
// so the operator can check the zones before a batch.
func TestZones(rec ocr.Recognizer, loader imaging.Loader, path string, zones []zone.Rect, clean bool) ([]ZoneText, error) {
	if path == "" {
		return nil, &PreconditionError{Reason: ErrNoImage}
	}
	if len(zones) == 0 {
		return nil, &PreconditionError{Reason: ErrNoZones}
	}

	img, err := loader.Load(path)
	if err != nil {
		return nil, &FileError{Kind: KindDecode, Index: 1, Path: path, Err: err}
	}

	results := make([]ZoneText, 0, len(zones))
	for i, z := range zones {
		text, err := ExtractText(rec, img, z, clean)
		if err != nil {
			return nil, &FileError{Kind: KindOCR, Index: 1, Path: path, Err: fmt.Errorf("zone %d: %w", i+1, err)}
		}
		results = append(results, ZoneText{Zone: i + 1, Rect: z, Text: text})
	}
	return results, nil
}
