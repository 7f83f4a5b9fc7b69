package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	panelctl "github.com/mattsolo1/grove-notebook-list/pkg/panel"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	next, eventCmd := m.handleEvents()
	return next, tea.Batch(cmd, eventCmd)
}

// handleEvents reacts to the notifications the controller emitted during the
// current update.
func (m Model) handleEvents() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for pending := m.queue.take(); len(pending) > 0; pending = m.queue.take() {
		for _, e := range pending {
			var cmd tea.Cmd
			m, cmd = m.handleEvent(e)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleEvent(e events.Event) (Model, tea.Cmd) {
	switch ev := e.(type) {
	case events.TriggerItem:
		m.statusMessage = fmt.Sprintf("Opening %s", ev.Item)
		return m, openEditorCmd(m.service, ev.Item)

	case events.NewNotebook:
		m.mode = modeNewTitle
		m.newDir = m.targetDir()
		m.ctrl.SetDisabled(true)
		m.titleInput.SetValue("")
		cmd := m.titleInput.Focus()
		return m, cmd

	case events.ImportNotebook:
		if ev.Dropped {
			return m, importNotebookCmd(m.service, ev.Name, ev.Content)
		}
		m.mode = modeImportPath
		m.ctrl.SetDisabled(true)
		m.importInput.SetValue("")
		cmd := m.importInput.Focus()
		return m, cmd

	case events.ToggleNotebookListUI:
		if ev.Force {
			m.collapsed = true
		} else {
			m.collapsed = !m.collapsed
		}
		m.rebuildLines()
	}
	return m, nil
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.adjustScroll()
		return m, nil

	case notebooksLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error loading notebooks: %v", msg.err)
			return m, nil
		}
		m.ctrl.SetItems(msg.items)
		m.rebuildLines()
		return m, nil

	case notebookAddedMsg:
		m.ctrl.AddItem(msg.item)
		m.rebuildLines()
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForNotebookCmd(m.watcher)

	case watcherClosedMsg:
		return m, nil

	case droppedReadMsg:
		if err := m.ctrl.DeliverDropped(msg.results); err != nil {
			m.statusMessage = fmt.Sprintf("Error importing: %v", err)
		}
		return m, nil

	case notebookImportedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error importing %s: %v", msg.name, msg.err)
			return m, nil
		}
		m.ctrl.AddItem(msg.item)
		m.reveal(msg.item)
		m.statusMessage = fmt.Sprintf("Imported: %s", msg.item)
		return m, nil

	case notebookCreatedMsg:
		m.ctrl.SetDisabled(false)
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error creating notebook: %v", msg.err)
			return m, nil
		}
		m.ctrl.AddItem(msg.item)
		m.reveal(msg.item)
		m.statusMessage = fmt.Sprintf("Created: %s", msg.item)
		return m, openEditorCmd(m.service, msg.item)

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Editor exited with error: %v", msg.err)
		} else {
			m.statusMessage = ""
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error copying to clipboard: %v", msg.err)
		} else {
			m.statusMessage = fmt.Sprintf("Copied: %s", msg.text)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		if msg.Paste {
			return m.handlePaste(string(msg.Runes))
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// handlePaste treats a paste of existing file paths as a drop onto the panel.
func (m Model) handlePaste(text string) (Model, tea.Cmd) {
	sources := droppedSources(text)
	if len(sources) == 0 {
		m.statusMessage = "Paste file paths or drop files to import them"
		return m, nil
	}
	m.ctrl.DragEnter()
	m.statusMessage = fmt.Sprintf("Reading %d dropped file(s)...", len(sources))
	return m, readDroppedCmd(m.ctrl, sources)
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Back): // Esc
		if m.mode == modeFilter {
			m.filterInput.SetValue("")
		}
		m.leaveInput()
		m.ctrl.SetDisabled(false)
		m.rebuildLines()
		return m, nil

	case key.Matches(msg, m.keys.Confirm): // Enter
		mode := m.mode
		m.leaveInput()
		switch mode {
		case modeFilter:
			m.rebuildLines()
			return m, nil

		case modeNewTitle:
			title := strings.TrimSpace(m.titleInput.Value())
			if title == "" {
				m.ctrl.SetDisabled(false)
				return m, nil
			}
			// Controls stay disabled until the notebook is written.
			return m, createNotebookCmd(m.service, m.newDir, title)

		case modeImportPath:
			m.ctrl.SetDisabled(false)
			paths := splitPastedPaths(m.importInput.Value())
			if len(paths) == 0 {
				return m, nil
			}
			sources := make([]panelctl.Source, len(paths))
			for i, p := range paths {
				sources[i] = panelctl.FileSource(p)
			}
			m.statusMessage = fmt.Sprintf("Reading %d file(s)...", len(sources))
			return m, readDroppedCmd(m.ctrl, sources)
		}
		return m, nil
	}

	switch m.mode {
	case modeFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.rebuildLines()
	case modeNewTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case modeImportPath:
		m.importInput, cmd = m.importInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.filterInput.Blur()
	m.titleInput.Blur()
	m.importInput.Blur()
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.lines)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.adjustScroll()
	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.lines) > 0 {
			m.cursor = len(m.lines) - 1
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Open):
		row, ok := m.selected()
		if !ok {
			break
		}
		if row.Branch != nil {
			m.toggleBranch(row.Branch.Key())
			break
		}
		m.ctrl.Activate(row.Leaf.Path())
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selected(); ok && row.Branch != nil {
			m.toggleBranch(row.Branch.Key())
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.persistErr(m.ctrl.ExpandAll())
		m.rebuildLines()
	case key.Matches(msg, m.keys.CollapseAll):
		m.persistErr(m.ctrl.CollapseAll())
		m.rebuildLines()
	case key.Matches(msg, m.keys.Search):
		m.mode = modeFilter
		cmd := m.filterInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back): // Esc clears an applied filter
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.rebuildLines()
		}
	case key.Matches(msg, m.keys.Import):
		if !m.ctrl.RequestImport() {
			m.statusMessage = "Import is disabled"
		}
	case key.Matches(msg, m.keys.New):
		if !m.ctrl.RequestNew() {
			m.statusMessage = "New notebook is disabled"
		}
	case key.Matches(msg, m.keys.CollapsePanel):
		m.persistErr(m.ctrl.Collapse(false))
	case key.Matches(msg, m.keys.Copy):
		if row, ok := m.selected(); ok && row.Leaf != nil {
			return m, copyTextCmd(m.copyText, m.service.NotebookPath(row.Leaf.Path()))
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, loadNotebooksCmd(m.service)
	}
	return m, nil
}

func (m *Model) toggleBranch(branchKey string) {
	m.persistErr(m.ctrl.Toggle(branchKey))
	m.rebuildLines()
}

func (m *Model) persistErr(err error) {
	if err != nil {
		m.service.Logger.WithError(err).Warn("could not save panel prefs")
		m.statusMessage = fmt.Sprintf("Error saving preferences: %v", err)
	}
}
