package render

// Row is one line of the flattened tree. Exactly one of Leaf and Branch is
// set.
type Row struct {
	Depth  int
	Leaf   *Leaf
	Branch *Branch
}

// Element returns the row's render node.
func (r Row) Element() Element {
	if r.Leaf != nil {
		return r.Leaf
	}
	return r.Branch
}

// Rows flattens the visible part of the tree: children of collapsed branches
// are left out.
func (r *Renderer) Rows() []Row {
	var rows []Row
	walk(r.root, 0, false, func(row Row) {
		rows = append(rows, row)
	})
	return rows
}

// AllRows flattens the whole tree regardless of expand state.
func (r *Renderer) AllRows() []Row {
	var rows []Row
	walk(r.root, 0, true, func(row Row) {
		rows = append(rows, row)
	})
	return rows
}

func walk(l *List, depth int, all bool, fn func(Row)) {
	for _, child := range l.children {
		switch c := child.(type) {
		case *Leaf:
			fn(Row{Depth: depth, Leaf: c})
		case *Branch:
			fn(Row{Depth: depth, Branch: c})
			if all || c.Expanded {
				walk(c.list, depth+1, all, fn)
			}
		}
	}
}
