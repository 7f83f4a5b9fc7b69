package panel

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	"github.com/mattsolo1/grove-notebook-list/pkg/notebooks"
	panelctl "github.com/mattsolo1/grove-notebook-list/pkg/panel"
	"github.com/mattsolo1/grove-notebook-list/pkg/render"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeFilter
	modeNewTitle
	modeImportPath
)

// line is a single displayed row. Filtered lines show the full path.
type line struct {
	row  render.Row
	full bool
}

// eventQueue buffers panel notifications emitted while Update runs. They are
// handled before Update returns.
type eventQueue struct {
	pending []events.Event
}

func (q *eventQueue) HandleEvent(e events.Event) {
	q.pending = append(q.pending, e)
}

func (q *eventQueue) take() []events.Event {
	out := q.pending
	q.pending = nil
	return out
}

// Option configures the panel model.
type Option func(*Model)

// WithWatcher feeds notebooks reported by w into the listing.
func WithWatcher(w *notebooks.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

// Model is the bubbletea model of the notebook list panel
type Model struct {
	service *service.Service
	ctrl    *panelctl.Controller
	queue   *eventQueue
	watcher *notebooks.Watcher

	keys   KeyMap
	help   help.Model
	width  int
	height int

	lines        []line
	cursor       int
	scrollOffset int
	loaded       bool
	collapsed    bool // mirrors ToggleNotebookListUI notifications

	mode        inputMode
	filterInput textinput.Model
	titleInput  textinput.Model
	importInput textinput.Model
	newDir      string // directory the notebook being named goes into

	statusMessage string
	copyText      func(string) error
}

// New creates the panel model and applies the stored preferences.
func New(svc *service.Service, opts ...Option) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Notebooks - Help").
		Build()

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter notebooks..."
	filterInput.CharLimit = 100

	titleInput := textinput.New()
	titleInput.Placeholder = "Notebook title..."
	titleInput.CharLimit = 200
	titleInput.Width = 60

	importInput := textinput.New()
	importInput.Placeholder = "Paths of notebooks to import..."
	importInput.CharLimit = 1024
	importInput.Width = 60

	m := Model{
		service:     svc,
		ctrl:        svc.NewController(),
		queue:       &eventQueue{},
		keys:        keys,
		help:        helpModel,
		filterInput: filterInput,
		titleInput:  titleInput,
		importInput: importInput,
		copyText:    clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.ctrl.Subscribe(m.queue)
	if err := m.ctrl.Init(); err != nil {
		svc.Logger.WithError(err).Warn("could not read panel prefs")
	}
	m, _ = m.handleEvents()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadNotebooksCmd(m.service)}
	if m.watcher != nil {
		cmds = append(cmds, waitForNotebookCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Controller exposes the panel controller.
func (m Model) Controller() *panelctl.Controller {
	return m.ctrl
}

// Collapsed reports whether the panel is collapsed.
func (m Model) Collapsed() bool {
	return m.collapsed
}

// selected returns the row under the cursor.
func (m Model) selected() (render.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return render.Row{}, false
	}
	return m.lines[m.cursor].row, true
}

func (m Model) getViewportHeight() int {
	if m.height == 0 {
		return len(m.lines) + 1
	}
	// header, blank, blank, input/status, footer
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
