package panel

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the notebook list panel
type KeyMap struct {
	keymap.Base
	Open          key.Binding
	Toggle        key.Binding
	ExpandAll     key.Binding
	CollapseAll   key.Binding
	GoToTop       key.Binding
	GoToBottom    key.Binding
	Search        key.Binding
	Import        key.Binding
	New           key.Binding
	CollapsePanel key.Binding
	Copy          key.Binding
	Refresh       key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.Open,
		k.Toggle,
		k.ExpandAll,
		k.CollapseAll,
		k.GoToTop,
		k.GoToBottom,
	}, []key.Binding{
		k.Search,
		k.Import,
		k.New,
		k.CollapsePanel,
		k.Copy,
		k.Refresh,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter", "open notebook / toggle folder"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "tab"),
		key.WithHelp("space", "toggle folder"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "expand all"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import notebook"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new notebook"),
	),
	CollapsePanel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "collapse panel"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "refresh"),
	),
}
