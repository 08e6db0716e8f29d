package table

import (
	"slices"

	"datatable/internal/core/column"
	"datatable/internal/core/filter"
	"datatable/internal/core/format"
	"datatable/internal/core/layout"
	"datatable/internal/core/paging"
	"datatable/internal/core/sorting"
)

// ColumnView is one column as displayed.
type ColumnView[T any] struct {
	Index       int // position in the original column list
	Column      column.Column[T]
	Header      string
	Sortable    bool
	Sort        column.Direction
	Resizable   bool
	Pinned      bool
	Offset      int // left offset of a pinned column
	Width       int // pixels; 0 when the column is flexible
	Filter      any // active filter value, nil when none
	Placeholder string
}

// Snapshot is everything a front-end needs to draw one frame.
type Snapshot[T any] struct {
	Name     string
	Columns  []ColumnView[T]
	Template string

	Rows     []T
	Cells    [][]string
	Selected []bool
	Filler   int // blank rows to pad up to MinRows

	Searchable    bool
	Filterable    bool
	Rules         sorting.Rules[T]
	Filters       *filter.State[T]
	FiltersActive bool
	SearchTerm    string

	Paging    bool
	Page      int
	PageSize  int
	PageCount int
	PageSizes []int
	Buttons   []paging.Button

	ResultText string
	PageText   string
	Empty      string
	Loading    bool
}

// View renders the current state. Cells hold plain display text.
func (t *Table[T]) View() Snapshot[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot[T]{
		Name:          t.opts.Name,
		Searchable:    t.opts.Searchable,
		Filterable:    t.opts.Filterable,
		Rules:         slices.Clone(t.rules),
		Filters:       t.filters.Clone(),
		FiltersActive: t.opts.Filterable && t.filters.Len() > 0,
		SearchTerm:    t.term,
		Paging:        t.opts.Paging,
		Page:          t.pager.Index(),
		PageSize:      t.pager.Size(),
		PageCount:     t.pageCountLocked(),
		PageSizes:     slices.Clone(t.opts.PageSizeOptions),
		Loading:       t.loading,
	}

	var pinnedWidths []int
	for i := 0; i < t.opts.PinnedColumns && i < len(t.cols); i++ {
		px, _ := layout.PixelWidth(t.cols[i].Head().DefaultWidth)
		pinnedWidths = append(pinnedWidths, px)
	}
	offsets := layout.PinnedOffsets(pinnedWidths)

	order := t.order.Indices()
	display := make([]column.Column[T], 0, len(t.cols))
	for pos, i := range order {
		c := t.cols[i]
		h := c.Head()
		cv := ColumnView[T]{
			Index:       i,
			Column:      c,
			Header:      h.Text,
			Sortable:    h.Sortable,
			Resizable:   h.Resizable,
			Pinned:      pos < t.opts.PinnedColumns,
			Placeholder: filter.Placeholder(c, "", t.opts.Messages.Placeholders),
		}
		if h.Sortable {
			cv.Sort = t.rules.Direction(c)
		}
		if w, ok := t.widths.Width(i); ok && h.Resizable {
			cv.Width = w
		} else if px, err := layout.PixelWidth(h.DefaultWidth); err == nil {
			cv.Width = px
		}
		if cv.Pinned && pos < len(offsets) {
			cv.Offset = offsets[pos]
		}
		if e, ok := t.filters.Get(i); ok {
			cv.Filter = e.Value
		}
		s.Columns = append(s.Columns, cv)
		display = append(display, c)
	}
	s.Template = layout.Template(t.cols, order, t.widths)

	s.Rows = t.pageRowsLocked()
	s.Cells = make([][]string, len(s.Rows))
	s.Selected = make([]bool, len(s.Rows))
	for r, row := range s.Rows {
		line := make([]string, len(display))
		for c, col := range display {
			line[c] = format.PlainCell(col, row, t.cache, t.opts.Format)
		}
		s.Cells[r] = line
		s.Selected[r] = t.isSelectedLocked(row)
	}
	if t.opts.MinRows > 0 {
		s.Filler = max(min(t.opts.MinRows, s.PageSize)-len(s.Rows), 0)
	}
	if t.opts.Paging {
		s.Buttons = paging.Buttons(s.Page, s.PageCount)
	}

	s.Empty = t.emptyMessageLocked(len(s.Rows))
	if t.opts.ShowResultCount {
		s.ResultText = t.resultTextLocked()
	}
	if t.opts.Paging && len(s.Rows) > 0 {
		s.PageText = t.opts.Messages.showingXOfY(len(s.Rows), t.matchingCountLocked(), t.opts.PluralEntityName)
	}
	return s
}

func (t *Table[T]) emptyMessageLocked(visible int) string {
	switch {
	case visible == 0 && len(t.data) > 0:
		if t.opts.Filterable && t.filters.Len() > 0 {
			return t.opts.Messages.noFilterResults()
		}
		return t.opts.Messages.noSearchResults()
	case len(t.data) == 0 && !t.loading:
		return t.opts.Messages.noData(t.opts.PluralEntityName)
	}
	return ""
}

func (t *Table[T]) delegatedCountLocked() bool {
	return t.opts.ServerSideSearch || (t.opts.Filterable && t.opts.ServerSideFilter)
}

// matchingCountLocked is the number of rows matching the current search
// and filters.
func (t *Table[T]) matchingCountLocked() int {
	if t.delegatedCountLocked() {
		if t.totalResults != nil {
			return *t.totalResults
		}
		return 0
	}
	return len(t.filtered)
}

func (t *Table[T]) resultTextLocked() string {
	total := len(t.data)
	if t.totalResults != nil && *t.totalResults != 0 {
		total = *t.totalResults
	}
	var n int
	switch {
	case t.delegatedCountLocked():
		n = t.matchingCountLocked()
	case (t.opts.ShowFilteredResultCount && t.opts.Filterable && t.filters.Len() > 0) || t.term != "":
		n = len(t.filtered)
	default:
		n = len(t.data)
	}
	text := t.opts.Messages.xResults(n, t.opts.PluralEntityName)
	if n != total {
		text += " " + t.opts.Messages.filteredFrom(total, t.opts.PluralEntityName)
	}
	return text
}
