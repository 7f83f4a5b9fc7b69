// Package notebooks manages the directory of notebook files shown in the
// panel. Notebook contents are never parsed.
package notebooks

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// DefaultExtensions lists the file extensions treated as notebooks.
var DefaultExtensions = []string{".ipynb"}

// IsNotebook reports whether name carries one of exts (case-insensitive).
func IsNotebook(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Scan lists the notebooks under root as slash-delimited paths relative to
// root, sorted. Hidden files and directories are skipped.
func Scan(root string, exts []string) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the root itself is not.
			if fullPath == root {
				return err
			}
			return nil
		}
		if fullPath == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsNotebook(d.Name(), exts) {
			return nil
		}

		rel, err := Rel(root, fullPath)
		if err != nil {
			return nil
		}
		mu.Lock()
		paths = append(paths, rel)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// Rel returns target relative to root using forward slashes.
func Rel(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Abs returns the file path for the slash-delimited item under root.
func Abs(root, item string) string {
	return filepath.Join(root, filepath.FromSlash(item))
}
