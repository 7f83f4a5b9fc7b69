// Package prefs persists panel preferences keyed by component name.
package prefs

import (
	"fmt"
)

// PanelKey is the key the notebook list panel stores its preferences under.
const PanelKey = "NotebookListUI"

// Prefs holds the persisted panel state.
type Prefs struct {
	Collapsed bool     `json:"collapsed" yaml:"collapsed"`
	Expanded  []string `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// Store reads and writes Prefs by key.
type Store interface {
	// Get returns the prefs stored under key. ok is false when nothing has
	// been stored yet.
	Get(key string) (p Prefs, ok bool, err error)
	Set(key string, p Prefs) error
	Close() error
}

// Update reads the prefs under key, applies fn and writes the result back.
// Missing prefs start from the zero value.
func Update(s Store, key string, fn func(*Prefs)) error {
	p, _, err := s.Get(key)
	if err != nil {
		return fmt.Errorf("read prefs %q: %w", key, err)
	}
	fn(&p)
	if err := s.Set(key, p); err != nil {
		return fmt.Errorf("write prefs %q: %w", key, err)
	}
	return nil
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates a store for the named backend. path is ignored for the memory
// backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown prefs backend %q", backend)
}

func clonePrefs(p Prefs) Prefs {
	if p.Expanded != nil {
		p.Expanded = append([]string(nil), p.Expanded...)
	}
	return p
}
