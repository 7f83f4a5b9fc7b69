package panel

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-notebook-list/pkg/notebooks"
	panelctl "github.com/mattsolo1/grove-notebook-list/pkg/panel"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

const dropReadTimeout = 30 * time.Second

type notebooksLoadedMsg struct {
	items []string
	err   error
}

type notebookAddedMsg struct {
	item string
}

type watcherClosedMsg struct{}

type droppedReadMsg struct {
	results []panelctl.DropResult
}

type notebookImportedMsg struct {
	name string
	item string
	err  error
}

type notebookCreatedMsg struct {
	item string
	err  error
}

type editorFinishedMsg struct {
	item string
	err  error
}

type clipboardMsg struct {
	text string
	err  error
}

func loadNotebooksCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.ListNotebooks()
		return notebooksLoadedMsg{items: items, err: err}
	}
}

func waitForNotebookCmd(w *notebooks.Watcher) tea.Cmd {
	return func() tea.Msg {
		item, ok := <-w.Added()
		if !ok {
			return watcherClosedMsg{}
		}
		return notebookAddedMsg{item: item}
	}
}

// readDroppedCmd reads dropped files off the update loop. Delivery happens
// when the results come back as a message.
func readDroppedCmd(ctrl *panelctl.Controller, sources []panelctl.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dropReadTimeout)
		defer cancel()
		return droppedReadMsg{results: ctrl.ReadDropped(ctx, sources...)}
	}
}

func importNotebookCmd(svc *service.Service, name, content string) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.ImportNotebook(name, content)
		return notebookImportedMsg{name: name, item: item, err: err}
	}
}

func createNotebookCmd(svc *service.Service, dir, title string) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.CreateNotebook(dir, title)
		return notebookCreatedMsg{item: item, err: err}
	}
}

func openEditorCmd(svc *service.Service, item string) tea.Cmd {
	return tea.ExecProcess(svc.EditorCommand(item), func(err error) tea.Msg {
		return editorFinishedMsg{item: item, err: err}
	})
}

func copyTextCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}
