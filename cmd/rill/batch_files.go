package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rill/internal/batch"
)

// collectBatchFiles resolves the diag argument to a sorted list of batch
// files: a single .rlb file stays as-is, a directory is scanned one
// level deep.
func collectBatchFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), batch.FileExt) {
			return nil, fmt.Errorf("%s: not a %s file", path, batch.FileExt)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), batch.FileExt) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no %s files found", path, batch.FileExt)
	}
	sort.Strings(files)
	return files, nil
}
