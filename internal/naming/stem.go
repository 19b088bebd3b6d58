package naming

import (
	"fmt"
	"strings"
)

// MaxStemLength caps a derived stem, in characters.
const MaxStemLength = 100

// reservedChars are replaced with '_' regardless of Options.CleanText.
const reservedChars = `<>:"/\|?*`

// Options are the two processing switches offered to the operator.
type Options struct {
	// CleanText applies Sanitize to every zone's text.
	CleanText bool `json:"clean_text" yaml:"clean_text"`

	// AddCounter prefixes the zero-padded 1-based file index to the stem so two
	// files with identical text still get distinct names.
	AddCounter bool `json:"add_counter" yaml:"add_counter"`
}

// DefaultOptions has both switches enabled.
func DefaultOptions() Options {
	return Options{CleanText: true, AddCounter: true}
}

// FallbackStem is the stem used when no zone produced text for file index i.
func FallbackStem(index int) string {
	return fmt.Sprintf("no_text_found_%d", index)
}

// DeriveStem builds the filename stem for the file at the 1-based index from
// the per-zone texts, in zone order. Empty texts contribute nothing.
func DeriveStem(texts []string, index int, opts Options) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			parts = append(parts, t)
		}
	}

	stem := FallbackStem(index)
	if len(parts) > 0 {
		stem = strings.Join(parts, "_")
	}

	if opts.AddCounter {
		stem = fmt.Sprintf("%03d_%s", index, stem)
	}

	return Truncate(SafeName(stem), MaxStemLength)
}

// SafeName replaces every reserved filename character with '_'.
func SafeName(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) {
			return '_'
		}
		return r
	}, s)
}

// Truncate returns at most max characters of s.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
