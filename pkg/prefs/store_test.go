package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "state", "prefs.yaml"))
	require.NoError(t, err)

	db, err := NewSQLiteStore(filepath.Join(dir, "state", "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendSQLite: db,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(PanelKey)
			require.NoError(t, err)
			assert.False(t, ok, "nothing stored yet")

			want := Prefs{Collapsed: true, Expanded: []string{"a", "a/b"}}
			require.NoError(t, store.Set(PanelKey, want))

			got, ok, err := store.Get(PanelKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)

			require.NoError(t, store.Set(PanelKey, Prefs{Collapsed: false}))
			got, _, err = store.Get(PanelKey)
			require.NoError(t, err)
			assert.False(t, got.Collapsed)
			assert.Empty(t, got.Expanded)
		})
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("one", Prefs{Collapsed: true}))
			require.NoError(t, store.Set("two", Prefs{Collapsed: false}))

			one, _, err := store.Get("one")
			require.NoError(t, err)
			assert.True(t, one.Collapsed)

			two, ok, err := store.Get("two")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.False(t, two.Collapsed)
		})
	}
}

func TestUpdateMergesExisting(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(PanelKey, Prefs{Expanded: []string{"x"}}))

	err := Update(store, PanelKey, func(p *Prefs) { p.Collapsed = true })
	require.NoError(t, err)

	got, _, _ := store.Get(PanelKey)
	assert.Equal(t, Prefs{Collapsed: true, Expanded: []string{"x"}}, got)
}

func TestMemoryStoreCopiesSlices(t *testing.T) {
	store := NewMemoryStore()
	expanded := []string{"a"}
	require.NoError(t, store.Set(PanelKey, Prefs{Expanded: expanded}))
	expanded[0] = "mutated"

	got, _, _ := store.Get(PanelKey)
	assert.Equal(t, []string{"a"}, got.Expanded)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(PanelKey, Prefs{Collapsed: true}))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, ok, err := second.Get(PanelKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Collapsed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NotebookListUI:")
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = store.Get(PanelKey)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(BackendFile, filepath.Join(dir, "p.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(BackendSQLite, filepath.Join(dir, "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("etcd", "")
	assert.Error(t, err)

	_, err = Open(BackendFile, "")
	assert.Error(t, err)
}
