package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/ocr"
	"github.com/ironsheep/zone-renamer/internal/report"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// run executes the CLI with a recognizer that reads text from every crop.
func run(t *testing.T, text string, args ...string) (string, error) {
	t.Helper()
	rec := ocr.RecognizerFunc(func(image.Image) (string, error) { return text, nil })
	cmd := newRootCmd("test", rec)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		in      string
		want    zone.Rect
		wantErr bool
	}{
		{"10,20,110,70", zone.Rect{X1: 10, Y1: 20, X2: 110, Y2: 70}, false},
		{"110, 70, 10, 20", zone.Rect{X1: 10, Y1: 20, X2: 110, Y2: 70}, false},
		{"1,2,3", zone.Rect{}, true},
		{"a,b,c,d", zone.Rect{}, true},
		{"5,5,5,50", zone.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseZone(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDrag(t *testing.T) {
	start, end, err := parseDrag("50,50:30,20")
	if err != nil {
		t.Fatalf("parseDrag failed: %v", err)
	}
	if start != (zone.Point{X: 50, Y: 50}) || end != (zone.Point{X: 30, Y: 20}) {
		t.Errorf("got %v -> %v", start, end)
	}

	for _, bad := range []string{"50,50", "50,50:30", "1,2:3,4:5,6", "x,1:2,3"} {
		if _, _, err := parseDrag(bad); err == nil {
			t.Errorf("parseDrag(%q) should fail", bad)
		}
	}
}

func TestParseCanvas(t *testing.T) {
	w, h, err := parseCanvas("400X300")
	if err != nil || w != 400 || h != 300 {
		t.Errorf("got %d,%d,%v", w, h, err)
	}
	for _, bad := range []string{"400", "0x300", "-1x5", "axb"} {
		if _, _, err := parseCanvas(bad); err == nil {
			t.Errorf("parseCanvas(%q) should fail", bad)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLevel(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestZoneFlagsResolve(t *testing.T) {
	dir := t.TempDir()
	ref := writeImage(t, dir, "ref.png", 800, 400)

	zf := zoneFlags{
		zones:  []string{"0,0,50,50"},
		drags:  []string{"110,160:10,60", "50,100:55,180"},
		canvas: "400x300",
	}
	var warnings []string
	zones, err := zf.resolve(ref, imaging.FileLoader, func(s string) { warnings = append(warnings, s) })
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want := []zone.Rect{
		{X1: 0, Y1: 0, X2: 50, Y2: 50},
		{X1: 20, Y1: 20, X2: 220, Y2: 220},
	}
	if len(zones) != len(want) {
		t.Fatalf("got %v, want %v", zones, want)
	}
	for i := range want {
		if zones[i] != want[i] {
			t.Errorf("zone %d: got %v, want %v", i, zones[i], want[i])
		}
	}
	if len(warnings) != 1 {
		t.Errorf("the short drag should warn once, got %v", warnings)
	}

	// Without a reference the drags cannot be mapped; the missing image is
	// reported by the command's precondition check instead.
	zones, err = (&zoneFlags{zones: []string{"0,0,10,10"}, drags: []string{"1,1:50,50"}, canvas: "400x300"}).resolve("", imaging.FileLoader, nil)
	if err != nil {
		t.Fatalf("resolve without a reference failed: %v", err)
	}
	if len(zones) != 1 {
		t.Errorf("drags should be left out without a reference, got %v", zones)
	}
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.jpeg", "c.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	explicit := filepath.Join(dir, "c.png")
	got, err := expandSources([]string{explicit, dir}, defaultExtensions)
	if err != nil {
		t.Fatalf("expandSources failed: %v", err)
	}
	want := []string{explicit, filepath.Join(dir, "a.jpeg"), filepath.Join(dir, "b.JPG")}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", got, want)
	}

	got, _ = expandSources([]string{dir}, []string{"png"})
	if len(got) != 1 || filepath.Base(got[0]) != "c.png" {
		t.Errorf("extension without dot: got %v", got)
	}
}

func TestRenameCommand(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeImage(t, src, "1.jpg", 100, 100)
	writeImage(t, src, "2.jpg", 100, 100)
	reportPath := filepath.Join(t.TempDir(), "run.yaml")

	out, err := run(t, "Order 12", "rename", src, "--dest", dst, "--zone", "0,0,60,60", "--report", reportPath)
	if err != nil {
		t.Fatalf("rename failed: %v\n%s", err, out)
	}

	for _, name := range []string{"001_Order_12.jpg", "002_Order_12.jpg"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("missing %s", name)
		}
	}
	for _, want := range []string{"Processing 1.jpg...", "Processing complete!", "Processed: 2", "Errors: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	r, err := report.Read(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if r.Summary.Processed != 2 {
		t.Errorf("report: %+v", r.Summary)
	}
}

func TestRenameCommand_Options(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	file := writeImage(t, src, "scan.PNG", 100, 100)

	out, err := run(t, "a b", "rename", file, "-d", dst, "--zone", "0,0,60,60",
		"--clean-text=false", "--add-counter=false")
	if err != nil {
		t.Fatalf("rename failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dst, "a b.PNG")); err != nil {
		t.Errorf("expected raw name with original extension: %v", err)
	}
}

func TestRenameCommand_Preconditions(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	file := writeImage(t, src, "1.jpg", 100, 100)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no sources", []string{"rename", "--dest", dst, "--zone", "0,0,60,60"}, "select source files"},
		{"no sources with a drag", []string{"rename", "--dest", dst, "--drag", "1,1:50,50"}, "select source files"},
		{"no destination", []string{"rename", file, "--zone", "0,0,60,60"}, "destination folder"},
		{"no zones", []string{"rename", file, "--dest", dst}, "at least one OCR zone"},
		{"missing destination", []string{"rename", file, "--dest", filepath.Join(dst, "nope"), "--zone", "0,0,60,60"}, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "x", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
	if entries, _ := os.ReadDir(dst); len(entries) != 0 {
		t.Error("nothing should be copied")
	}
}

func TestTestOCRCommand(t *testing.T) {
	file := writeImage(t, t.TempDir(), "1.png", 100, 100)

	out, err := run(t, "Total: 42", "test-ocr", file, "--zone", "0,0,50,50", "--zone", "500,500,600,600")
	if err != nil {
		t.Fatalf("test-ocr failed: %v", err)
	}
	want := "Zone 1: 'Total_42'\nZone 2: ''\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	if _, err := run(t, "x", "test-ocr", "--zone", "0,0,50,50"); err == nil {
		t.Error("test-ocr without an image should fail")
	}
	if _, err := run(t, "x", "test-ocr", "--drag", "1,1:50,50"); !errors.Is(err, batch.ErrNoImage) {
		t.Errorf("test-ocr --drag without an image: got %v, want ErrNoImage", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeImage(t, dir, "1.png", 800, 400)
	output := filepath.Join(dir, "preview.png")

	out, err := run(t, "", "preview", file, "-o", output, "--zone", "0,0,400,200")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !strings.Contains(out, "display: 400x200 at offset (0,50) in 400x300 canvas") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 zones defined") {
		t.Errorf("zone count missing:\n%s", out)
	}

	img, err := imaging.Open(output)
	if err != nil {
		t.Fatalf("preview not readable: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("preview size: got %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestServeCommand(t *testing.T) {
	rec := ocr.RecognizerFunc(func(image.Image) (string, error) { return "", nil })
	cmd := newRootCmd("1.2.3", rec)

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"serve"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("serve failed: %v", err)
	}
	if !strings.Contains(out.String(), `"version":"1.2.3"`) {
		t.Errorf("initialize response should carry the version: %s", out.String())
	}
}
