package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ExistsFunc reports whether a path is already taken.
type ExistsFunc func(path string) (bool, error)

// Resolve returns the first path in destDir that does not exist, trying
// "<stem><ext>" and then "<stem>_1<ext>", "<stem>_2<ext>", and so on.
//
// ext may be given with or without its leading dot; an empty ext produces
// names without an extension. The search is unbounded and is only a
// point-in-time answer: a concurrent writer can take the name before the
// caller creates it.
func Resolve(destDir, stem, ext string, exists ExistsFunc) (string, error) {
	ext = normalizeExt(ext)

	candidate := filepath.Join(destDir, stem+ext)
	for n := 1; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
