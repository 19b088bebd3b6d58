package naming

import (
	"strings"
	"unicode"
)

// Sanitize normalizes raw OCR output into a filesystem-friendly token.
//
// Surrounding whitespace is trimmed, every character other than letters,
// digits, '_', '-' and whitespace is dropped, and each run of whitespace
// becomes a single '_'. The result may be empty.
func Sanitize(raw string) string {
	var kept strings.Builder
	kept.Grow(len(raw))
	for _, r := range strings.TrimFunc(raw, isSpace) {
		if isWordRune(r) || r == '-' || isSpace(r) {
			kept.WriteRune(r)
		}
	}

	// Dropping punctuation can expose new leading/trailing whitespace.
	return strings.Join(strings.FieldsFunc(kept.String(), isSpace), "_")
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which separate words like any other whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= 0x1c && r <= 0x1f
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
