package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model[T]) View() string {
	s := m.tbl.View()

	var header strings.Builder
	header.WriteString(titleStyle.Render(m.title))
	header.WriteString("\n")
	header.WriteString(divider(m.width))

	var input string
	switch m.mode {
	case modeSearch:
		input = "Search: " + m.searchInput.View()
	case modeFilter:
		name := ""
		for _, c := range s.Columns {
			if c.Index == m.filterCol {
				name = c.Header
			}
		}
		input = "Filter " + name + ": " + m.filterInput.View()
	}

	row := -1
	if len(s.Rows) > 0 {
		row = min(m.cursorRow, len(s.Rows)-1)
	}
	body := Render(s, RenderOptions{
		Width:     m.width,
		CursorRow: row,
		CursorCol: min(m.cursorCol, len(s.Columns)-1),
	})
	if s.Loading {
		body = m.spinner.View() + " " + body
	}

	status := m.statusMsg
	if strings.HasPrefix(status, "Filter: ") {
		status = errorStyle.Render(status)
	}
	footer := renderFooter(status, m.help.View(m.keys))

	parts := []string{header.String()}
	if input != "" {
		parts = append(parts, input)
	}
	parts = append(parts, body, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
