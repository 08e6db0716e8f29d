package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datatable/internal/core/debounce"
	"datatable/internal/core/table"
	"datatable/internal/infra/logx"
)

// ---------- Update ----------
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			m, cmd = m.handleSearchInput(msg)
		case modeFilter:
			m, cmd = m.handleFilterInput(msg)
		default:
			m, cmd = m.handleBrowseKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case debounce.FireMsg:
		if m.sched != nil {
			m.sched.Fire(msg)
		}

	case spinner.TickMsg:
		if m.tbl.View().Loading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}
	return m, m.batch(cmd)
}

// batch appends the debounce ticks armed while handling a message.
func (m Model[T]) batch(cmd tea.Cmd) tea.Cmd {
	if m.sched == nil {
		return cmd
	}
	drained := m.sched.Drain()
	switch {
	case cmd == nil:
		return drained
	case drained == nil:
		return cmd
	}
	return tea.Batch(cmd, drained)
}

func (m Model[T]) handleBrowseKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	s := m.tbl.View()
	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursorRow = max(m.cursorRow-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursorRow = min(m.cursorRow+1, max(len(s.Rows)-1, 0))
	case key.Matches(msg, m.keys.Left):
		m.cursorCol = max(m.cursorCol-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursorCol = min(m.cursorCol+1, max(len(s.Columns)-1, 0))

	case key.Matches(msg, m.keys.Search):
		if !s.Searchable {
			m.statusMsg = "Searching is not enabled for this table."
			return m, nil
		}
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		return m.startFilter(s)
	case key.Matches(msg, m.keys.Clear):
		if err := m.tbl.ClearFilters(); err != nil {
			m.statusMsg = err.Error()
		}

	case key.Matches(msg, m.keys.Sort):
		if c, ok := m.column(s); ok && !m.tbl.ToggleSort(c.Index) {
			m.statusMsg = fmt.Sprintf("%s is not sortable.", c.Header)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.tbl.SetPage(s.Page - 1) {
			m.cursorRow = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.tbl.SetPage(s.Page + 1) {
			m.cursorRow = 0
		}
	case key.Matches(msg, m.keys.PageSize):
		if len(s.PageSizes) > 0 {
			next := s.PageSizes[0]
			if i := slices.Index(s.PageSizes, s.PageSize); i >= 0 {
				next = s.PageSizes[(i+1)%len(s.PageSizes)]
			}
			if m.tbl.SetPageSize(next) {
				m.cursorRow = 0
				m.statusMsg = fmt.Sprintf("%d rows per page", next)
			}
		}

	case key.Matches(msg, m.keys.MoveLeft):
		if m.tbl.MoveColumn(m.cursorCol, m.cursorCol-1) {
			m.cursorCol--
		}
	case key.Matches(msg, m.keys.MoveRight):
		if m.tbl.MoveColumn(m.cursorCol, m.cursorCol+1) {
			m.cursorCol++
		}
	case key.Matches(msg, m.keys.Wider):
		m.resize(s, resizeStep)
	case key.Matches(msg, m.keys.Narrower):
		m.resize(s, -resizeStep)

	case key.Matches(msg, m.keys.RowUp):
		if m.tbl.MoveRow(m.cursorRow, m.cursorRow-1) {
			m.cursorRow--
		}
	case key.Matches(msg, m.keys.RowDown):
		if m.tbl.MoveRow(m.cursorRow, m.cursorRow+1) {
			m.cursorRow++
		}
	case key.Matches(msg, m.keys.Select):
		if m.tbl.SelectRow(m.cursorRow) {
			m.statusMsg = fmt.Sprintf("%d selected", len(m.tbl.Selected()))
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model[T]) column(s table.Snapshot[T]) (table.ColumnView[T], bool) {
	if m.cursorCol < 0 || m.cursorCol >= len(s.Columns) {
		return table.ColumnView[T]{}, false
	}
	return s.Columns[m.cursorCol], true
}

func (m *Model[T]) resize(s table.Snapshot[T], delta int) {
	c, ok := m.column(s)
	if !ok {
		return
	}
	start := c.Width
	if start == 0 {
		start = defaultStartWidth
	}
	if _, resized := m.drag[c.Index]; resized {
		// the table keeps the width the first drag started from
		start = 0
	}
	m.drag[c.Index] += delta
	if !m.tbl.ResizeColumn(m.cursorCol, start, m.drag[c.Index]) {
		delete(m.drag, c.Index)
		m.statusMsg = fmt.Sprintf("%s is not resizable.", c.Header)
	}
}

func (m Model[T]) startFilter(s table.Snapshot[T]) (Model[T], tea.Cmd) {
	c, ok := m.column(s)
	if !ok {
		return m, nil
	}
	if !s.Filterable {
		m.statusMsg = "Filtering is not enabled for this table."
		return m, nil
	}
	m.mode = modeFilter
	m.filterCol = c.Index
	m.filterInput.Placeholder = c.Placeholder
	m.filterInput.SetValue(filterText(c.Filter))
	m.filterInput.Focus()
	return m, textinput.Blink
}

// filterText renders an active filter back into the input syntax.
func filterText(v any) string {
	if v == nil {
		return ""
	}
	return describeFilter(v)
}

func (m Model[T]) handleSearchInput(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = modeBrowse
		m.tbl.SetSearchTerm("")
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.mode = modeBrowse
		m.cursorRow = 0
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != before {
		m.tbl.SetSearchTerm(v)
	}
	return m, cmd
}

func (m Model[T]) handleFilterInput(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case "enter":
		m.filterInput.Blur()
		m.mode = modeBrowse
		m.cursorRow = 0
		s := m.tbl.View()
		idx := slices.IndexFunc(s.Columns, func(c table.ColumnView[T]) bool { return c.Index == m.filterCol })
		if idx < 0 {
			return m, nil
		}
		input := strings.TrimSpace(m.filterInput.Value())
		if err := ApplyFilterInput(m.tbl, m.filterCol, s.Columns[idx].Column, input); err != nil {
			logx.Warnw("filter input rejected", logx.Fields{"column": s.Columns[idx].Header, "input": input, "err": err})
			m.statusMsg = "Filter: " + err.Error()
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}
