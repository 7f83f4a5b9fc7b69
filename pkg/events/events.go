// Package events defines the notifications the notebook list panel sends to
// its owner.
package events

// Kind identifies a panel notification.
type Kind int

const (
	KindImportNotebook Kind = iota
	KindNewNotebook
	KindTriggerItem
	KindToggleNotebookListUI
)

func (k Kind) String() string {
	switch k {
	case KindImportNotebook:
		return "ImportNotebook"
	case KindNewNotebook:
		return "NewNotebook"
	case KindTriggerItem:
		return "TriggerItem"
	case KindToggleNotebookListUI:
		return "ToggleNotebookListUI"
	}
	return "Unknown"
}

// Event is one of ImportNotebook, NewNotebook, TriggerItem or
// ToggleNotebookListUI.
type Event interface {
	Kind() Kind
}

// ImportNotebook asks the owner to import a notebook. From the import control
// it carries nothing; from a drop it carries the file name and text content.
type ImportNotebook struct {
	Name    string
	Content string
	Dropped bool
}

// NewNotebook asks the owner to create a notebook.
type NewNotebook struct{}

// TriggerItem reports that a leaf was activated. Item is the full path.
type TriggerItem struct {
	Item string
}

// ToggleNotebookListUI reports that the panel was collapsed or expanded.
// Force requests the collapsed state instead of a flip.
type ToggleNotebookListUI struct {
	Force bool
}

func (ImportNotebook) Kind() Kind       { return KindImportNotebook }
func (NewNotebook) Kind() Kind          { return KindNewNotebook }
func (TriggerItem) Kind() Kind          { return KindTriggerItem }
func (ToggleNotebookListUI) Kind() Kind { return KindToggleNotebookListUI }
