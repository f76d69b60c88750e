// Package file collects upload candidates from disk for the attachment
// commands.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is what a site diary usually attaches: photos and
// scanned paperwork.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "pdf"}

// Collect walks root and returns files matching the given extensions.
// Hidden files and directories are skipped. An empty extension list keeps
// every regular file.
func Collect(root string, extensions []string) ([]string, error) {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, strings.ToLower(ext))
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(entry.Name(), ".") && path != root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if len(normalized) == 0 {
			files = append(files, path)
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range normalized {
			if ext == e {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}

	return files, nil
}
