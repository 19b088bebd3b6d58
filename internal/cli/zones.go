package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// zoneFlags collects the zone definitions of one command.
type zoneFlags struct {
	zones  []string
	drags  []string
	canvas string
}

func (z *zoneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&z.zones, "zone", nil, "Zone in source pixels as x1,y1,x2,y2 (repeatable, read in order)")
	cmd.Flags().StringArrayVar(&z.drags, "drag", nil, "Zone as a preview drag sx,sy:ex,ey in canvas pixels (repeatable)")
	cmd.Flags().StringVar(&z.canvas, "canvas", fmt.Sprintf("%dx%d", imaging.DefaultCanvasWidth, imaging.DefaultCanvasHeight), "Preview canvas size WxH used by --drag")
}

// resolve returns every zone in flag order: --zone values first, then --drag
// values mapped through the preview geometry of reference. Drags too small
// to define a zone are skipped with a warning, as a click would be. With no
// reference there is nothing to map onto, so drags are left out and the
// caller's precondition check reports the missing image.
func (z *zoneFlags) resolve(reference string, loader imaging.Loader, warn func(string)) ([]zone.Rect, error) {
	store := zone.NewStore()
	for _, s := range z.zones {
		r, err := parseZone(s)
		if err != nil {
			return nil, err
		}
		store.Add(r)
	}

	if len(z.drags) > 0 && reference != "" {
		g, err := z.geometry(reference, loader)
		if err != nil {
			return nil, err
		}
		for _, s := range z.drags {
			start, end, err := parseDrag(s)
			if err != nil {
				return nil, err
			}
			r, ok := zone.FromDrag(start, end, g)
			if !ok {
				warn(fmt.Sprintf("ignoring --drag %s: movement must exceed %d pixels in both directions", s, zone.MinDragDistance))
				continue
			}
			store.Add(r)
		}
	}
	return store.All(), nil
}

// geometry fits reference into the canvas the same way the preview does.
func (z *zoneFlags) geometry(reference string, loader imaging.Loader) (zone.Geometry, error) {
	w, h, err := parseCanvas(z.canvas)
	if err != nil {
		return zone.Geometry{}, err
	}
	img, err := loader.Load(reference)
	if err != nil {
		return zone.Geometry{}, err
	}
	_, g, err := imaging.FitPreview(img, w, h)
	return g, err
}

func parseInts(s string, n int, sep string) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values separated by %q", n, sep)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// parseZone parses "x1,y1,x2,y2". Corners may be in any order.
func parseZone(s string) (zone.Rect, error) {
	v, err := parseInts(s, 4, ",")
	if err != nil {
		return zone.Rect{}, fmt.Errorf("invalid --zone %q: %w", s, err)
	}
	r := zone.NewRect(v[0], v[1], v[2], v[3])
	if r.Width() == 0 || r.Height() == 0 {
		return zone.Rect{}, fmt.Errorf("invalid --zone %q: zone has no area", s)
	}
	return r, nil
}

// parseDrag parses "sx,sy:ex,ey".
func parseDrag(s string) (zone.Point, zone.Point, error) {
	ends := strings.Split(s, ":")
	if len(ends) != 2 {
		return zone.Point{}, zone.Point{}, fmt.Errorf("invalid --drag %q: want sx,sy:ex,ey", s)
	}
	a, err := parseInts(ends[0], 2, ",")
	if err != nil {
		return zone.Point{}, zone.Point{}, fmt.Errorf("invalid --drag %q: %w", s, err)
	}
	b, err := parseInts(ends[1], 2, ",")
	if err != nil {
		return zone.Point{}, zone.Point{}, fmt.Errorf("invalid --drag %q: %w", s, err)
	}
	return zone.Point{X: a[0], Y: a[1]}, zone.Point{X: b[0], Y: b[1]}, nil
}

// parseCanvas parses "WxH".
func parseCanvas(s string) (int, int, error) {
	v, err := parseInts(strings.ToLower(s), 2, "x")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --canvas %q: %w", s, err)
	}
	if v[0] <= 0 || v[1] <= 0 {
		return 0, 0, fmt.Errorf("invalid --canvas %q: size must be positive", s)
	}
	return v[0], v[1], nil
}
