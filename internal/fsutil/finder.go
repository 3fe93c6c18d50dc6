// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByBaseName lists the regular files directly inside dir whose name
// is base followed by one of the given extensions (compared case-insensitively).
// The result is sorted by file name.
func FindFilesByBaseName(dir, base string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("extensions must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if strings.TrimSuffix(name, ext) != base {
			continue
		}
		for _, want := range extensions {
			if strings.EqualFold(ext, want) {
				files = append(files, filepath.Join(dir, name))
				break
			}
		}
	}
	return files, nil
}
