package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultExtensions are picked up when a directory is given as a source.
var defaultExtensions = []string{".jpg", ".jpeg"}

// expandSources returns the source files in argument order. A directory
// argument contributes its files whose extension is in exts (any case),
// sorted by name; file arguments are taken as-is whatever their extension.
func expandSources(args []string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files surface as per-file decode errors in the batch.
			out = append(out, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.Type().IsRegular() && allowed[strings.ToLower(filepath.Ext(e.Name()))] {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
