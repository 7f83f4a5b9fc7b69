package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore keeps all prefs in a single YAML document mapping key to prefs.
// The file is read on every Get and rewritten on every Set.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The parent directory is
// created if needed; the file itself appears on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) load() (map[string]Prefs, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Prefs{}, nil
		}
		return nil, err
	}

	all := map[string]Prefs{}
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return all, nil
}

func (f *FileStore) Get(key string) (Prefs, bool, error) {
	all, err := f.load()
	if err != nil {
		return Prefs{}, false, err
	}
	p, ok := all[key]
	return p, ok, nil
}

func (f *FileStore) Set(key string, p Prefs) error {
	all, err := f.load()
	if err != nil {
		return err
	}
	all[key] = p

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Close() error { return nil }
