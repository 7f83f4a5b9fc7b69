package panel

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mattsolo1/grove-notebook-list/pkg/pathtree"
	"github.com/mattsolo1/grove-notebook-list/pkg/render"
)

// rebuildLines recomputes the displayed rows from the render tree and keeps
// the cursor on the same element when it is still shown.
func (m *Model) rebuildLines() {
	var current render.Element
	if row, ok := m.selected(); ok {
		current = row.Element()
	}

	m.lines = buildLines(m.ctrl.Renderer(), m.filterInput.Value(), m.collapsed)

	m.cursor = m.indexOf(current)
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func buildLines(r *render.Renderer, query string, collapsed bool) []line {
	if collapsed {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		rows := r.Rows()
		lines := make([]line, len(rows))
		for i, row := range rows {
			lines[i] = line{row: row}
		}
		return lines
	}

	// Filtering looks at every leaf, including those in collapsed branches.
	var leaves []*render.Leaf
	for _, row := range r.AllRows() {
		if row.Leaf != nil {
			leaves = append(leaves, row.Leaf)
		}
	}
	labels := make([]string, len(leaves))
	for i, l := range leaves {
		labels[i] = l.Path()
	}

	matches := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	var lines []line
	for i, l := range leaves {
		if _, ok := matches[i]; ok {
			lines = append(lines, line{row: render.Row{Leaf: l}, full: true})
		}
	}
	return lines
}

func (m Model) indexOf(e render.Element) int {
	if e == nil {
		return -1
	}
	for i, l := range m.lines {
		if l.row.Element() == e {
			return i
		}
	}
	return -1
}

// reveal expands the branches above item and moves the cursor onto it.
func (m *Model) reveal(item string) {
	segments := pathtree.Split(item)
	for i := 1; i < len(segments); i++ {
		m.ctrl.Renderer().SetExpanded(pathtree.Join(segments[:i]), true)
	}
	leaf, ok := m.ctrl.Renderer().Leaf(item)
	m.rebuildLines()
	if !ok {
		return
	}
	if idx := m.indexOf(leaf); idx >= 0 {
		m.cursor = idx
		m.adjustScroll()
	}
}

// targetDir is the directory a new notebook goes into: the selected folder,
// or the folder of the selected notebook.
func (m Model) targetDir() string {
	row, ok := m.selected()
	if !ok {
		return ""
	}
	if row.Branch != nil {
		return row.Branch.Key()
	}
	segments := pathtree.Split(row.Leaf.Path())
	return pathtree.Join(segments[:len(segments)-1])
}
