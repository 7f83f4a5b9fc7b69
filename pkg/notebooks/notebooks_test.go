package notebooks

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root, rel, content string) {
	t.Helper()
	full := Abs(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.ipynb", "{}")
	touch(t, root, "a/z.ipynb", "{}")
	touch(t, root, "a/deep/y.IPYNB", "{}")
	touch(t, root, "a/readme.md", "")
	touch(t, root, ".hidden/x.ipynb", "{}")
	touch(t, root, ".dot.ipynb", "{}")

	paths, err := Scan(root, DefaultExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/deep/y.IPYNB", "a/z.ipynb", "b.ipynb"}, paths)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), DefaultExtensions)
	assert.Error(t, err)
}

func TestIsNotebook(t *testing.T) {
	assert.True(t, IsNotebook("x.ipynb", DefaultExtensions))
	assert.True(t, IsNotebook("dir/x.IpYnB", DefaultExtensions))
	assert.False(t, IsNotebook("x.ipynb.bak", DefaultExtensions))
	assert.True(t, IsNotebook("x.py", []string{".ipynb", ".py"}))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Meeting Notes", "meeting-notes"},
		{"  Crème brûlée / recipes  ", "creme-brulee-recipes"},
		{"Q3: revenue & costs!", "q3-revenue-costs"},
		{"already-slugged", "already-slugged"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestCreate(t *testing.T) {
	root := t.TempDir()

	item, err := Create(root, "team/research", "Data Exploration")
	require.NoError(t, err)
	assert.Equal(t, "team/research/data-exploration.ipynb", item)

	data, err := os.ReadFile(Abs(root, item))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nbformat": 4`)

	again, err := Create(root, "team/research", "data exploration")
	require.NoError(t, err)
	assert.Equal(t, "team/research/data-exploration-1.ipynb", again)

	_, err = Create(root, "", "!!!")
	assert.Error(t, err)
}

func TestImportNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.ipynb", "original")

	item, err := Import(root, "a.ipynb", "dropped")
	require.NoError(t, err)
	assert.Equal(t, "a-1.ipynb", item)

	original, _ := os.ReadFile(Abs(root, "a.ipynb"))
	assert.Equal(t, "original", string(original))
	dropped, _ := os.ReadFile(Abs(root, item))
	assert.Equal(t, "dropped", string(dropped))

	item, err = Import(root, "../../etc/b.ipynb", "x")
	require.NoError(t, err)
	assert.Equal(t, "b.ipynb", item, "only the base name is used")

	_, err = Import(root, "", "x")
	assert.Error(t, err)
}

func waitForItem(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case item := <-w.Added():
		return item
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher")
	}
	return ""
}

func TestWatcherReportsNewNotebooks(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root, DefaultExtensions, quietLogger())
	require.NoError(t, err)
	defer w.Close()

	touch(t, root, "fresh.ipynb", "{}")
	assert.Equal(t, "fresh.ipynb", waitForItem(t, w))

	touch(t, root, "ignored.txt", "")
	touch(t, root, "sub/inner.ipynb", "{}")
	assert.Equal(t, "sub/inner.ipynb", waitForItem(t, w))
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), DefaultExtensions, quietLogger())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, open := <-w.Added()
	assert.False(t, open)
}
