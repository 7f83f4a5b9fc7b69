// Package render turns path trees into render nodes and merges new paths
// into an already rendered tree without losing expand state.
package render

import (
	"github.com/mattsolo1/grove-notebook-list/pkg/events"
	"github.com/mattsolo1/grove-notebook-list/pkg/pathtree"
)

// Renderer owns every render node it creates. Branches are indexed by
// identity key and leaves by path, but only for nodes under the root list;
// merges into any other list leave the indexes alone. A Renderer is not safe
// for concurrent use and merges must not be started from inside another
// merge.
type Renderer struct {
	root     *List
	tree     *Tree
	owned    map[*List]bool
	branches map[string]*Branch
	leaves   map[string]*Leaf
	emit     func(events.Event)
}

// New creates a renderer with an empty root list. emit receives the
// TriggerItem notifications of activated leaves and may be nil.
func New(emit func(events.Event)) *Renderer {
	root := &List{}
	return &Renderer{
		root:     root,
		tree:     newTree(),
		owned:    map[*List]bool{root: true},
		branches: make(map[string]*Branch),
		leaves:   make(map[string]*Leaf),
		emit:     emit,
	}
}

// Root returns the top-level list.
func (r *Renderer) Root() *List { return r.root }

// Tree returns the result of the last SetItems.
func (r *Renderer) Tree() *Tree { return r.tree }

// SetItems discards the rendered tree and rebuilds it from items.
func (r *Renderer) SetItems(items []string) *Tree {
	r.root = &List{}
	r.owned = map[*List]bool{r.root: true}
	r.branches = make(map[string]*Branch)
	r.leaves = make(map[string]*Leaf)
	r.tree, _ = r.Merge(pathtree.Build(items), nil, r.root)
	return r.tree
}

// AddItem merges a single path into the existing root list. Branches already
// on the path are reused with their expand state and children intact.
func (r *Renderer) AddItem(path string) *Tree {
	tree, _ := r.Merge(pathtree.Build([]string{path}), nil, r.root)
	return tree
}

// Merge walks subtree against target, reusing branches of target that have
// the same identity key and creating nodes for everything else. ancestors is
// the segment chain leading to target. It returns the merged mapping and
// target.
func (r *Renderer) Merge(subtree *pathtree.Tree, ancestors []string, target *List) (*Tree, *List) {
	result := newTree()
	for _, name := range subtree.Keys() {
		node, _ := subtree.Get(name)
		switch n := node.(type) {
		case pathtree.Leaf:
			result.set(name, TreeEntry{Leaf: r.leafFor(name, n.Path, target)})
		case pathtree.Branch:
			chain := append(append([]string(nil), ancestors...), name)
			branch := r.branchFor(name, chain, target)
			sub, _ := r.Merge(n.Children, chain, branch.list)
			result.set(name, TreeEntry{Sub: sub})
		}
	}
	return result, target
}

func (r *Renderer) leafFor(name, path string, target *List) *Leaf {
	for _, c := range target.children {
		if l, ok := c.(*Leaf); ok && l.path == path {
			return l
		}
	}
	l := &Leaf{name: name, path: path, parent: target, emit: r.emit}
	target.append(l)
	if r.owned[target] {
		r.leaves[path] = l
	}
	return l
}

func (r *Renderer) branchFor(name string, chain []string, target *List) *Branch {
	key := pathtree.Join(chain)
	for _, c := range target.children {
		if b, ok := c.(*Branch); ok && b.key == key {
			return b
		}
	}
	b := &Branch{
		name:      name,
		ancestors: chain[:len(chain)-1],
		key:       key,
		list:      &List{},
		parent:    target,
	}
	target.append(b)
	if r.owned[target] {
		r.owned[b.list] = true
		r.branches[key] = b
	}
	return b
}

// Branch looks up a rendered branch by identity key.
func (r *Renderer) Branch(key string) (*Branch, bool) {
	b, ok := r.branches[key]
	return b, ok
}

// Leaf looks up a rendered leaf by path.
func (r *Renderer) Leaf(path string) (*Leaf, bool) {
	l, ok := r.leaves[path]
	return l, ok
}

// Toggle flips the expand flag of the branch with the given key. It reports
// whether such a branch exists.
func (r *Renderer) Toggle(key string) bool {
	b, ok := r.branches[key]
	if !ok {
		return false
	}
	ToggleBranch(b)
	return true
}

// ToggleBranch flips b's expand flag. A nil branch is ignored.
func ToggleBranch(b *Branch) {
	if b == nil {
		return
	}
	b.Expanded = !b.Expanded
}

// SetExpanded sets the expand flag of the branch with the given key.
func (r *Renderer) SetExpanded(key string, expanded bool) bool {
	b, ok := r.branches[key]
	if !ok {
		return false
	}
	b.Expanded = expanded
	return true
}

// ExpandAll expands every branch.
func (r *Renderer) ExpandAll() {
	for _, b := range r.branches {
		b.Expanded = true
	}
}

// CollapseAll collapses every branch.
func (r *Renderer) CollapseAll() {
	for _, b := range r.branches {
		b.Expanded = false
	}
}

// ExpandedKeys returns the keys of expanded branches in display order.
func (r *Renderer) ExpandedKeys() []string {
	var keys []string
	walk(r.root, 0, true, func(row Row) {
		if row.Branch != nil && row.Branch.Expanded {
			keys = append(keys, row.Branch.key)
		}
	})
	return keys
}

// Leaves returns every rendered leaf path in display order, including those
// under collapsed branches.
func (r *Renderer) Leaves() []string {
	var paths []string
	walk(r.root, 0, true, func(row Row) {
		if row.Leaf != nil {
			paths = append(paths, row.Leaf.path)
		}
	})
	return paths
}
