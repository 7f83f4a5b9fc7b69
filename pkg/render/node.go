package render

import (
	"github.com/mattsolo1/grove-notebook-list/pkg/events"
)

// Element is a render node: either a *Leaf or a *Branch.
type Element interface {
	Name() string
	isElement()
}

// List is an ordered container of render nodes.
type List struct {
	children []Element
}

// Children returns the elements in display order.
func (l *List) Children() []Element {
	out := make([]Element, len(l.children))
	copy(out, l.children)
	return out
}

// Len returns the number of direct children.
func (l *List) Len() int {
	return len(l.children)
}

func (l *List) append(e Element) {
	l.children = append(l.children, e)
}

// Leaf stands for one concrete item. Its path never changes.
type Leaf struct {
	name   string
	path   string
	parent *List
	emit   func(events.Event)
}

// Name returns the display name (last path segment).
func (l *Leaf) Name() string { return l.name }

// Path returns the full path the leaf represents.
func (l *Leaf) Path() string { return l.path }

// Activate emits a TriggerItem notification for the leaf's path.
func (l *Leaf) Activate() {
	if l.emit != nil {
		l.emit(events.TriggerItem{Item: l.path})
	}
}

func (*Leaf) isElement() {}

// Branch groups elements under a shared prefix. It is identified by Key.
type Branch struct {
	name      string
	ancestors []string
	key       string
	Expanded  bool
	list      *List
	parent    *List
}

// Name returns the display name (last segment of the key).
func (b *Branch) Name() string { return b.name }

// Key returns the identity key: the joined ancestor chain including Name.
func (b *Branch) Key() string { return b.key }

// Path returns the segment chain from the root to this branch.
func (b *Branch) Path() []string {
	out := make([]string, len(b.ancestors)+1)
	copy(out, b.ancestors)
	out[len(b.ancestors)] = b.name
	return out
}

// List returns the branch's child container.
func (b *Branch) List() *List { return b.list }

func (*Branch) isElement() {}

// Tree is the result of a merge: segment name to *Leaf or nested *Tree, in
// merge order.
type Tree struct {
	keys    []string
	entries map[string]TreeEntry
}

// TreeEntry holds either Leaf or Sub.
type TreeEntry struct {
	Leaf *Leaf
	Sub  *Tree
}

func newTree() *Tree {
	return &Tree{entries: make(map[string]TreeEntry)}
}

func (t *Tree) set(name string, e TreeEntry) {
	if _, ok := t.entries[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.entries[name] = e
}

// Keys returns the names in merge order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the entry stored under name.
func (t *Tree) Get(name string) (TreeEntry, bool) {
	if t == nil {
		return TreeEntry{}, false
	}
	e, ok := t.entries[name]
	return e, ok
}

// Leaves returns the leaf paths depth-first in merge order.
func (t *Tree) Leaves() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, k := range t.keys {
		e := t.entries[k]
		if e.Leaf != nil {
			out = append(out, e.Leaf.Path())
			continue
		}
		out = append(out, e.Sub.Leaves()...)
	}
	return out
}
