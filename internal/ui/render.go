package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cast"

	"datatable/internal/core/column"
	"datatable/internal/core/filter"
	"datatable/internal/core/paging"
	"datatable/internal/core/table"
)

// pxPerCell converts CSS-ish pixel widths to terminal cells.
const pxPerCell = 8

// RenderOptions controls Render. Cursor positions of -1 disable the cursor.
type RenderOptions struct {
	Width     int
	CursorRow int
	CursorCol int
}

// Render draws a snapshot as text: header with sort markers, active
// filters, the rows of the page, paging bar and counts.
func Render[T any](s table.Snapshot[T], o RenderOptions) string {
	var b strings.Builder

	if line := filterLine(s); line != "" {
		b.WriteString(filterRowStyle.Render(line) + "\n")
	}

	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Header + sortMarker(c.Sort)
	}
	rows := make([][]string, 0, len(s.Cells)+s.Filler)
	rows = append(rows, s.Cells...)
	for i := 0; i < s.Filler; i++ {
		rows = append(rows, make([]string, len(s.Columns)))
	}

	t := ltable.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dividerStyle).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := cellStyle
			if row == ltable.HeaderRow {
				st = headerStyle
				if col < len(s.Columns) && s.Columns[col].Pinned {
					st = pinnedStyle
				}
			} else {
				switch {
				case row == o.CursorRow && col == o.CursorCol:
					st = cursorStyle.Bold(true)
				case row < len(s.Selected) && s.Selected[row]:
					st = selectedStyle
				case row == o.CursorRow:
					st = cursorStyle
				}
			}
			if col < len(s.Columns) && s.Columns[col].Width > 0 {
				st = st.Width(max(s.Columns[col].Width/pxPerCell, 4))
			}
			return st
		})
	if o.Width > 0 {
		t = t.Width(o.Width)
	}
	b.WriteString(t.Render())

	switch {
	case s.Loading:
		b.WriteString("\n" + subtleStyle.Render("Loading…"))
	case s.Empty != "":
		b.WriteString("\n" + warnStyle.Render(s.Empty))
	}
	if s.Paging && len(s.Buttons) > 0 {
		b.WriteString("\n" + pageBar(s.Buttons))
	}
	var counts []string
	if s.PageText != "" {
		counts = append(counts, s.PageText)
	}
	if s.ResultText != "" {
		counts = append(counts, s.ResultText)
	}
	if len(counts) > 0 {
		b.WriteString("\n" + subtleStyle.Render(strings.Join(counts, " · ")))
	}
	return b.String()
}

func sortMarker(d column.Direction) string {
	switch d {
	case column.Ascending:
		return " ▲"
	case column.Descending:
		return " ▼"
	}
	return ""
}

func pageBar(buttons []paging.Button) string {
	parts := make([]string, len(buttons))
	for i, btn := range buttons {
		switch {
		case btn.Active:
			parts[i] = activePage.Render(btn.Label())
		case btn.Disabled:
			parts[i] = disabledPage.Render(btn.Label())
		default:
			parts[i] = pageStyle.Render(btn.Label())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func filterLine[T any](s table.Snapshot[T]) string {
	if !s.FiltersActive && s.SearchTerm == "" {
		return ""
	}
	var parts []string
	if s.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.SearchTerm))
	}
	for _, c := range s.Columns {
		if c.Filter != nil {
			parts = append(parts, c.Header+": "+describeFilter(c.Filter))
		}
	}
	return strings.Join(parts, "  ")
}

func describeFilter(v any) string {
	switch x := v.(type) {
	case filter.NumberRange:
		return cast.ToString(x.Min) + ".." + cast.ToString(x.Max)
	case filter.DateRange:
		return dateBound(x.From) + ".." + dateBound(x.To)
	case time.Time:
		return x.Format(time.DateOnly)
	case []string:
		return strings.Join(x, ", ")
	case []any:
		return strings.Join(cast.ToStringSlice(x), ", ")
	}
	return cast.ToString(v)
}

func dateBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
