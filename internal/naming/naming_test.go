package naming

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain word", "INV", "INV"},
		{"surrounding whitespace", "  2024 \n", "2024"},
		{"inner whitespace collapses", "ACME   Corp\tLtd", "ACME_Corp_Ltd"},
		{"newlines", "line one\nline two", "line_one_line_two"},
		{"punctuation removed", "Invoice #123: $45.00!", "Invoice_123_4500"},
		{"keeps hyphen and underscore", "A-1_b", "A-1_b"},
		{"reserved characters removed", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"only punctuation", "!!! ...", ""},
		{"empty", "", ""},
		{"punctuation exposes trailing space", "abc !", "abc"},
		{"unicode letters kept", "Größe Ñandú", "Größe_Ñandú"},
		{"unicode digits kept", "٣٤ ²", "٣٤_²"},
		{"file separator splits words", "a\x1cb", "a_b"},
		{"unit separators trimmed", "\x1fx\x1e", "x"},
		{"group separator between words", "INV\x1d 42", "INV_42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.raw); got != tt.want {
				t.Errorf("Sanitize(%q): got %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Invoice #123: $45.00!",
		"a - b _ c",
		"\t\ttabs\tand\nnewlines\r\n",
		"__--__",
		"mixed 文字 テキスト 123",
		"trailing punct .",
		"a\x1c\x1d\x1e\x1fb",
		" nbsp em space ",
		string([]byte{0xff, 0xfe, 'a', ' ', 'b'}),
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestDeriveStem(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		index int
		opts  Options
		want  string
	}{
		{
			name:  "join in zone order",
			texts: []string{"INV", "2024"},
			index: 1,
			opts:  Options{CleanText: true},
			want:  "INV_2024",
		},
		{
			name:  "counter prefix",
			texts: []string{"INV", "2024"},
			index: 7,
			opts:  Options{CleanText: true, AddCounter: true},
			want:  "007_INV_2024",
		},
		{
			name:  "fallback with counter",
			texts: nil,
			index: 3,
			opts:  Options{AddCounter: true},
			want:  "003_no_text_found_3",
		},
		{
			name:  "fallback without counter",
			texts: []string{"", ""},
			index: 12,
			opts:  Options{},
			want:  "no_text_found_12",
		},
		{
			name:  "empty fragments skipped",
			texts: []string{"", "A", "", "B"},
			index: 1,
			opts:  Options{},
			want:  "A_B",
		},
		{
			name:  "reserved characters replaced even without cleaning",
			texts: []string{`a/b`, `c:d*e?`},
			index: 1,
			opts:  Options{},
			want:  "a_b_c_d_e_",
		},
		{
			name:  "counter wider than three digits",
			texts: []string{"x"},
			index: 1234,
			opts:  Options{AddCounter: true},
			want:  "1234_x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStem(tt.texts, tt.index, tt.opts); got != tt.want {
				t.Errorf("DeriveStem: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveStem_Truncates(t *testing.T) {
	long := strings.Repeat("abcde", 30) // 150 characters

	got := DeriveStem([]string{long}, 1, Options{})
	if got != long[:100] {
		t.Errorf("got %d chars %q, want first 100", len(got), got)
	}

	// Counter counts toward the limit.
	got = DeriveStem([]string{long}, 1, Options{AddCounter: true})
	if len(got) != MaxStemLength || !strings.HasPrefix(got, "001_abcde") {
		t.Errorf("got %q", got)
	}
}

func TestDeriveStem_TruncatesByCharacter(t *testing.T) {
	long := strings.Repeat("é", 150)
	got := DeriveStem([]string{long}, 1, Options{})
	if n := utf8.RuneCountInString(got); n != MaxStemLength {
		t.Errorf("got %d characters, want %d", n, MaxStemLength)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte character")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"hello", -1, ""},
		{"日本語テキスト", 3, "日本語"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d): got %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSafeName(t *testing.T) {
	if got := SafeName(`<>:"/\|?*ok`); got != "_________ok" {
		t.Errorf("SafeName: got %q", got)
	}
}

func osExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestResolve_Free(t *testing.T) {
	dir := t.TempDir()
	got, err := Resolve(dir, "x", ".jpg", osExists)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := filepath.Join(dir, "x.jpg"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResolve_Collisions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x.jpg"))
	touch(t, filepath.Join(dir, "x_1.jpg"))

	got, err := Resolve(dir, "x", "jpg", osExists)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := filepath.Join(dir, "x_2.jpg"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResolve_ExtensionCasePreserved(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "scan.JPEG"))

	got, err := Resolve(dir, "scan", ".JPEG", osExists)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Base(got) != "scan_1.JPEG" {
		t.Errorf("got %s, want scan_1.JPEG", filepath.Base(got))
	}
}

func TestResolve_NoExtension(t *testing.T) {
	dir := t.TempDir()
	got, err := Resolve(dir, "noext", "", osExists)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Base(got) != "noext" {
		t.Errorf("got %s", got)
	}
}

func TestResolve_ManyCollisions(t *testing.T) {
	taken := map[string]bool{}
	for i := 0; i < 500; i++ {
		name := "dup.png"
		if i > 0 {
			name = "dup_" + strconv.Itoa(i) + ".png"
		}
		taken[filepath.Join("/dest", name)] = true
	}
	exists := func(p string) (bool, error) { return taken[p], nil }

	got, err := Resolve("/dest", "dup", ".png", exists)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := filepath.Join("/dest", "dup_500.png"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResolve_ExistsError(t *testing.T) {
	exists := func(string) (bool, error) { return false, os.ErrPermission }
	if _, err := Resolve("/dest", "x", ".jpg", exists); err == nil {
		t.Error("Resolve should propagate existence check errors")
	}
}
