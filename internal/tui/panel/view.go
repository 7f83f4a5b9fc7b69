package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
)

func (m Model) View() string {
	if !m.loaded {
		return "Loading..."
	}

	if m.help.ShowAll {
		return m.help.View()
	}

	header := m.renderHeader()
	footer := m.help.View()

	var body string
	if m.collapsed {
		body = theme.DefaultTheme.Muted.Render("Notebook list collapsed. Press c to show it.")
	} else {
		body = m.renderTree()
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		m.renderInputOrStatus(),
		footer,
	)
	return "\n" + fullView
}

func (m Model) renderHeader() string {
	fold := "▾"
	if m.collapsed {
		fold = "▸"
	}
	title := theme.DefaultTheme.Header.Render(fmt.Sprintf("%s Notebooks", fold))

	count := theme.DefaultTheme.Muted.Render(fmt.Sprintf("(%d)", len(m.ctrl.Renderer().Leaves())))

	buttons := "[i] import  [n] new"
	if m.ctrl.Disabled() {
		buttons = theme.DefaultTheme.Muted.Render(buttons)
	} else {
		buttons = theme.DefaultTheme.Info.Render(buttons)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", count, "   ", buttons)
	if m.ctrl.Highlighted() {
		drop := lipgloss.NewStyle().
			Foreground(theme.DefaultTheme.Colors.Orange).
			Render("│ drop files here to import")
		header = lipgloss.JoinVertical(lipgloss.Left, header, drop)
	}
	return header
}

func (m Model) renderTree() string {
	if len(m.lines) == 0 {
		if m.filterInput.Value() != "" {
			return theme.DefaultTheme.Muted.Render("No matching notebooks.")
		}
		return theme.DefaultTheme.Muted.Render("No notebooks yet. Press n to create one or drop a file here.")
	}

	var b strings.Builder

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.lines) {
		end = len(m.lines)
	}

	for i := start; i < end; i++ {
		l := m.lines[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		indent := strings.Repeat("  ", l.row.Depth)

		var text string
		if br := l.row.Branch; br != nil {
			fold := "▸ "
			if br.Expanded {
				fold = "▾ "
			}
			text = fmt.Sprintf("%s%s%s%s %s", cursor, indent, fold, theme.IconFolder, br.Name())
			if i == m.cursor {
				text = lipgloss.NewStyle().Bold(true).Render(text)
			}
		} else {
			name := l.row.Leaf.Name()
			if l.full {
				name = l.row.Leaf.Path()
			}
			text = fmt.Sprintf("%s%s  %s %s", cursor, indent, theme.IconNote, name)
			if i == m.cursor {
				text = theme.DefaultTheme.Selected.Render(text)
			}
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	if len(m.lines) > viewportHeight {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.lines))))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderInputOrStatus() string {
	switch m.mode {
	case modeFilter:
		return m.filterInput.View()
	case modeNewTitle:
		dir := m.newDir
		if dir == "" {
			dir = "."
		}
		return theme.DefaultTheme.Info.Render(fmt.Sprintf("New notebook in %s: ", dir)) + m.titleInput.View()
	case modeImportPath:
		return theme.DefaultTheme.Info.Render("Import: ") + m.importInput.View()
	}

	if q := m.filterInput.Value(); q != "" {
		return theme.DefaultTheme.Muted.Render(fmt.Sprintf("filter: %s (esc to clear)", q))
	}
	if m.statusMessage != "" {
		return lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Render(m.statusMessage)
	}
	return ""
}
