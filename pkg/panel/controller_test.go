package panel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	"github.com/mattsolo1/grove-notebook-list/pkg/prefs"
)

func newTestController(t *testing.T) (*Controller, *prefs.MemoryStore, *events.Recorder) {
	t.Helper()
	store := prefs.NewMemoryStore()
	c := New(store)
	rec := &events.Recorder{}
	c.Subscribe(rec)
	return c, store, rec
}

func TestInitWithoutPrefsDoesNothing(t *testing.T) {
	c, _, rec := newTestController(t)

	require.NoError(t, c.Init())

	assert.Empty(t, rec.Events)
	assert.False(t, c.Collapsed())
}

func TestInitAppliesCollapsedPreference(t *testing.T) {
	c, store, rec := newTestController(t)
	require.NoError(t, store.Set(prefs.PanelKey, prefs.Prefs{Collapsed: true}))

	require.NoError(t, c.Init())

	require.Len(t, rec.Events, 1)
	assert.Equal(t, events.ToggleNotebookListUI{Force: true}, rec.Events[0])
	assert.True(t, c.Collapsed())

	stored, _, _ := store.Get(prefs.PanelKey)
	assert.True(t, stored.Collapsed, "forced collapse leaves prefs alone")
}

func TestCollapseFlipsPreference(t *testing.T) {
	c, store, rec := newTestController(t)

	require.NoError(t, c.Collapse(false))
	stored, ok, _ := store.Get(prefs.PanelKey)
	require.True(t, ok)
	assert.True(t, stored.Collapsed)
	assert.True(t, c.Collapsed())

	require.NoError(t, c.Collapse(false))
	stored, _, _ = store.Get(prefs.PanelKey)
	assert.False(t, stored.Collapsed)
	assert.False(t, c.Collapsed())

	assert.Equal(t, []events.Event{
		events.ToggleNotebookListUI{},
		events.ToggleNotebookListUI{},
	}, rec.Events)
}

func TestCollapseKeepsOtherPrefs(t *testing.T) {
	c, store, _ := newTestController(t)
	require.NoError(t, store.Set(prefs.PanelKey, prefs.Prefs{Expanded: []string{"a"}}))

	require.NoError(t, c.Collapse(false))

	stored, _, _ := store.Get(prefs.PanelKey)
	assert.Equal(t, prefs.Prefs{Collapsed: true, Expanded: []string{"a"}}, stored)
}

func TestControlsRespectDisabled(t *testing.T) {
	c, _, rec := newTestController(t)

	assert.True(t, c.RequestImport())
	assert.True(t, c.RequestNew())

	c.SetDisabled(true)
	assert.True(t, c.Disabled())
	assert.False(t, c.RequestImport())
	assert.False(t, c.RequestNew())

	c.SetDisabled(false)
	assert.True(t, c.RequestNew())

	assert.Equal(t, []events.Event{
		events.ImportNotebook{},
		events.NewNotebook{},
		events.NewNotebook{},
	}, rec.Events)
}

func TestActivateEmitsTriggerItem(t *testing.T) {
	c, _, rec := newTestController(t)
	c.SetItems([]string{"foo/bar", "foo/baz", "qux"})

	assert.True(t, c.Activate("foo/bar"))
	assert.False(t, c.Activate("foo/missing"))

	assert.Equal(t, []events.Event{events.TriggerItem{Item: "foo/bar"}}, rec.Events)
}

func TestToggleRemembersExpandedBranches(t *testing.T) {
	c, store, _ := newTestController(t)
	c.SetItems([]string{"a/b/c", "d/e"})

	require.NoError(t, c.Toggle("a"))
	require.NoError(t, c.Toggle("a/b"))
	require.NoError(t, c.Toggle("missing"))

	stored, _, _ := store.Get(prefs.PanelKey)
	assert.Equal(t, []string{"a", "a/b"}, stored.Expanded)

	// A fresh controller over the same store restores them after SetItems.
	next := New(store)
	require.NoError(t, next.Init())
	next.SetItems([]string{"a/b/c", "d/e"})

	a, _ := next.Renderer().Branch("a")
	ab, _ := next.Renderer().Branch("a/b")
	d, _ := next.Renderer().Branch("d")
	assert.True(t, a.Expanded)
	assert.True(t, ab.Expanded)
	assert.False(t, d.Expanded)
}

func TestAddItemKeepsExpandState(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetItems([]string{"a/b/c"})
	require.NoError(t, c.Toggle("a"))

	c.AddItem("a/b/d")
	c.AddItem("z.ipynb")

	a, _ := c.Renderer().Branch("a")
	ab, _ := c.Renderer().Branch("a/b")
	assert.True(t, a.Expanded)
	assert.False(t, ab.Expanded)
	assert.Equal(t, []string{"a/b/c", "a/b/d", "z.ipynb"}, c.Renderer().Leaves())
}

func TestExpandAndCollapseAll(t *testing.T) {
	c, store, _ := newTestController(t)
	c.SetItems([]string{"a/b/c", "d/e"})

	require.NoError(t, c.ExpandAll())
	stored, _, _ := store.Get(prefs.PanelKey)
	assert.Equal(t, []string{"a", "a/b", "d"}, stored.Expanded)

	require.NoError(t, c.CollapseAll())
	stored, _, _ = store.Get(prefs.PanelKey)
	assert.Empty(t, stored.Expanded)
}

func TestDropEmitsOneImportPerFile(t *testing.T) {
	c, _, rec := newTestController(t)
	dir := t.TempDir()

	a := filepath.Join(dir, "a.ipynb")
	b := filepath.Join(dir, "b.ipynb")
	require.NoError(t, os.WriteFile(a, []byte(`{"cells":[1]}`), 0644))
	require.NoError(t, os.WriteFile(b, []byte(`{"cells":[2]}`), 0644))

	c.DragEnter()
	assert.True(t, c.Highlighted())

	require.NoError(t, c.Drop(context.Background(), FileSource(a), FileSource(b)))

	assert.False(t, c.Highlighted())
	assert.Equal(t, []events.Event{
		events.ImportNotebook{Name: "a.ipynb", Content: `{"cells":[1]}`, Dropped: true},
		events.ImportNotebook{Name: "b.ipynb", Content: `{"cells":[2]}`, Dropped: true},
	}, rec.Events)
}

func TestDropSkipsUnreadableFiles(t *testing.T) {
	c, _, rec := newTestController(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.ipynb")
	require.NoError(t, os.WriteFile(good, []byte("{}"), 0644))

	err := c.Drop(context.Background(),
		FileSource(filepath.Join(dir, "missing.ipynb")),
		FileSource(good),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ipynb")
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "good.ipynb", rec.Events[0].(events.ImportNotebook).Name)
}

func TestReadDroppedDoesNotEmit(t *testing.T) {
	c, _, rec := newTestController(t)

	results := c.ReadDropped(context.Background(),
		BytesSource{FileName: "x.ipynb", Data: []byte("x")},
		BytesSource{FileName: "y.ipynb", Data: []byte("y")},
	)

	assert.Empty(t, rec.Events)
	require.Len(t, results, 2)
	assert.Equal(t, DropResult{Name: "x.ipynb", Content: "x"}, results[0])
	assert.Equal(t, DropResult{Name: "y.ipynb", Content: "y"}, results[1])

	require.NoError(t, c.DeliverDropped(results))
	assert.Len(t, rec.OfKind(events.KindImportNotebook), 2)
}

func TestReadDroppedHonoursCancelledContext(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := c.ReadDropped(ctx, FileSource("/does/not/matter.ipynb"))

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestReadDroppedKeepsReadingAfterAFailure(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c := New(prefs.NewMemoryStore(), WithLogger(logrus.NewEntry(logger)))

	results := c.ReadDropped(context.Background(),
		FileSource(filepath.Join(t.TempDir(), "missing.ipynb")),
		BytesSource{FileName: "ok.ipynb", Data: []byte("ok")},
	)

	require.Len(t, results, 2)
	assert.Equal(t, "missing.ipynb", results[0].Name)
	assert.ErrorIs(t, results[0].Err, os.ErrNotExist)
	assert.Equal(t, DropResult{Name: "ok.ipynb", Content: "ok"}, results[1])

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Data[logrus.ErrorKey].(error).Error(), "missing.ipynb")
}
