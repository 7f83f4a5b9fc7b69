// Package pathtree turns flat slash-delimited paths into a nested tree of
// branches and leaves.
package pathtree

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Separator splits a path into segments.
const Separator = "/"

// Node is either a Leaf or a Branch.
type Node interface {
	isNode()
}

// Leaf is a terminal entry holding the original full path.
type Leaf struct {
	Path string
}

// Branch groups entries sharing a path prefix.
type Branch struct {
	Children *Tree
}

func (Leaf) isNode()   {}
func (Branch) isNode() {}

// Tree is an ordered mapping from segment name to Node. Iteration follows the
// order in which each name was first written.
type Tree struct {
	keys  []string
	nodes map[string]Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{nodes: make(map[string]Node)}
}

// Split breaks a path into its segments.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join builds a path (or identity key) from segments.
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// Build converts paths into a tree. The caller's iteration order determines
// the order of names within each level. When two paths disagree about whether
// a prefix is a leaf or a branch, the later one wins.
func Build(paths []string) *Tree {
	root := New()
	for _, p := range paths {
		segments := Split(p)
		current := root
		for _, segment := range segments[:len(segments)-1] {
			branch, ok := current.nodes[segment].(Branch)
			if !ok {
				branch = Branch{Children: New()}
				current.Set(segment, branch)
			}
			current = branch.Children
		}
		current.Set(segments[len(segments)-1], Leaf{Path: p})
	}
	return root
}

// Set assigns node to name, keeping the position of an existing name.
func (t *Tree) Set(name string, node Node) {
	if _, exists := t.nodes[name]; !exists {
		t.keys = append(t.keys, name)
	}
	t.nodes[name] = node
}

// Get returns the node stored under name.
func (t *Tree) Get(name string) (Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Keys returns the names at this level in iteration order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of names at this level.
func (t *Tree) Len() int {
	return len(t.keys)
}

// WalkFunc is called for every node during Walk. ancestors holds the names of
// the enclosing branches, outermost first.
type WalkFunc func(ancestors []string, name string, node Node) error

// Walk visits the tree depth-first in iteration order. Branches are visited
// before their children. Walking stops at the first error.
func (t *Tree) Walk(fn WalkFunc) error {
	return t.walk(nil, fn)
}

func (t *Tree) walk(ancestors []string, fn WalkFunc) error {
	for _, name := range t.keys {
		node := t.nodes[name]
		if err := fn(ancestors, name, node); err != nil {
			return err
		}
		if b, ok := node.(Branch); ok {
			chain := append(append([]string(nil), ancestors...), name)
			if err := b.Children.walk(chain, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Leaves collects every leaf path depth-first in iteration order.
func (t *Tree) Leaves() []string {
	var out []string
	_ = t.Walk(func(_ []string, _ string, node Node) error {
		if l, ok := node.(Leaf); ok {
			out = append(out, l.Path)
		}
		return nil
	})
	return out
}

// MarshalJSON encodes the tree as nested objects in iteration order. Leaves
// become their full path string.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value []byte
		switch n := t.nodes[name].(type) {
		case Leaf:
			value, err = json.Marshal(n.Path)
		case Branch:
			value, err = n.Children.MarshalJSON()
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
