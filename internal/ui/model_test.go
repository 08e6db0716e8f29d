package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"datatable/internal/core/column"
	"datatable/internal/core/debounce"
	"datatable/internal/core/dropdown"
	"datatable/internal/core/filter"
	"datatable/internal/core/table"
)

type row = map[string]any

func rows() []row {
	return []row{
		{"name": "carol", "age": 41, "status": 1},
		{"name": "alice", "age": 30, "status": 2},
		{"name": "bob", "age": 25, "status": 1},
		{"name": "dave", "age": 19, "status": 2},
		{"name": "erin", "age": 35, "status": 1},
	}
}

func names(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r["name"].(string)
	}
	return out
}

func columns() []column.Column[row] {
	return []column.Column[row]{
		&column.TextColumn[row]{Header: column.Header[row]{Text: "Name", Sortable: true, Resizable: true}, Path: "name"},
		&column.NumericColumn[row]{Header: column.Header[row]{Text: "Age", Sortable: true}, Path: "age", Filter: column.Ranged},
	}
}

func newTable(t *testing.T, mutate func(o *table.Options[row])) *table.Table[row] {
	t.Helper()
	o := table.Options[row]{
		Columns:    columns(),
		Data:       rows(),
		Searchable: true,
		Filterable: true,
		Scheduler:  debounce.ImmediateScheduler{},
	}
	if mutate != nil {
		mutate(&o)
	}
	tb, err := table.New(o)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	t.Cleanup(tb.Close)
	return tb
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m Model[row], keys ...tea.KeyMsg) (Model[row], tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var tm tea.Model
		tm, cmd = m.Update(k)
		m = tm.(Model[row])
	}
	return m, cmd
}

func TestQuit(t *testing.T) {
	m := New(newTable(t, nil), nil, "people")
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSortAndPagingKeys(t *testing.T) {
	tb := newTable(t, func(o *table.Options[row]) {
		o.Paging = true
		o.DefaultPageSize = 2
		o.PageSizeOptions = []int{2, 5}
	})
	m := New(tb, nil, "people")

	m, _ = press(m, runes("s"))
	if diff := cmp.Diff([]string{"alice", "bob"}, names(tb.View().Rows)); diff != "" {
		t.Fatalf("sorted page (-want +got):\n%s", diff)
	}
	m, _ = press(m, runes("]"))
	if diff := cmp.Diff([]string{"carol", "dave"}, names(tb.View().Rows)); diff != "" {
		t.Fatalf("second page (-want +got):\n%s", diff)
	}
	m, _ = press(m, runes("p"))
	v := tb.View()
	if v.PageSize != 5 || v.Page != 0 {
		t.Fatalf("want page 0 of size 5 got %d/%d", v.Page, v.PageSize)
	}
	if m.statusMsg != "5 rows per page" {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}
	_, _ = press(m, runes("["))
	if tb.View().Page != 0 {
		t.Fatal("no page before the first")
	}
}

func TestFilterKeys(t *testing.T) {
	tb := newTable(t, nil)
	m := New(tb, nil, "people")

	m, _ = press(m, runes("l"), runes("f"))
	if m.mode != modeFilter || m.filterCol != 1 {
		t.Fatalf("expected filter mode on Age, got mode %v col %d", m.mode, m.filterCol)
	}
	m, _ = press(m, runes("30..40"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeBrowse {
		t.Fatal("enter should leave filter mode")
	}
	if diff := cmp.Diff([]string{"alice", "erin"}, names(tb.View().Rows)); diff != "" {
		t.Fatalf("filtered rows (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "Age: 30..40") {
		t.Fatalf("active filter not shown:\n%s", m.View())
	}

	// editing starts from the active filter
	m, _ = press(m, runes("f"))
	if got := m.filterInput.Value(); got != "30..40" {
		t.Fatalf("want 30..40 got %q", got)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("c"))
	if len(tb.View().Rows) != 5 {
		t.Fatal("c should clear filters")
	}
}

func TestSearchRunsOnTeaScheduler(t *testing.T) {
	sched := debounce.NewTeaScheduler()
	tb := newTable(t, func(o *table.Options[row]) { o.Scheduler = sched })
	m := New(tb, sched, "people")

	m, _ = press(m, runes("/"))
	if m.mode != modeSearch {
		t.Fatal("expected search mode")
	}
	m, cmd := press(m, runes("bo"))
	if cmd == nil {
		t.Fatal("expected the debounce tick to be returned")
	}
	if tb.SearchTerm() != "bo" || len(tb.View().Rows) != 5 {
		t.Fatalf("search should be pending, rows %v", names(tb.View().Rows))
	}
	tb.Flush()
	if diff := cmp.Diff([]string{"bob"}, names(tb.View().Rows)); diff != "" {
		t.Fatalf("searched rows (-want +got):\n%s", diff)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse || tb.SearchTerm() != "" {
		t.Fatal("esc should clear the search")
	}
}

func TestSelectionAndLayoutKeys(t *testing.T) {
	var picked []string
	tb := newTable(t, func(o *table.Options[row]) {
		o.KeepSelections = true
		o.ReorderColumns = true
		o.ReorderRows = true
		o.RowKey = func(r row) string { return r["name"].(string) }
		o.OnRowSelected = func(r row, _ []row, _ bool) { picked = append(picked, r["name"].(string)) }
	})
	m := New(tb, nil, "people")

	m, _ = press(m, runes("j"), tea.KeyMsg{Type: tea.KeySpace})
	if diff := cmp.Diff([]string{"alice"}, picked); diff != "" {
		t.Fatalf("picked (-want +got):\n%s", diff)
	}
	if m.statusMsg != "1 selected" {
		t.Fatalf("unexpected status %q", m.statusMsg)
	}

	m, _ = press(m, runes("J"))
	if diff := cmp.Diff([]string{"carol", "bob", "alice"}, names(tb.View().Rows)[:3]); diff != "" {
		t.Fatalf("rows after move (-want +got):\n%s", diff)
	}
	if m.cursorRow != 2 {
		t.Fatalf("cursor should follow the row, got %d", m.cursorRow)
	}

	m, _ = press(m, runes("+"), runes("+"))
	if w := tb.View().Columns[0].Width; w != defaultStartWidth+2*resizeStep {
		t.Fatalf("want width %d got %d", defaultStartWidth+2*resizeStep, w)
	}
	m, _ = press(m, runes(">"))
	v := tb.View()
	if v.Columns[0].Header != "Age" || m.cursorCol != 1 {
		t.Fatalf("column should move right, got %s cursor %d", v.Columns[0].Header, m.cursorCol)
	}
	if w := v.Columns[1].Width; w != defaultStartWidth+2*resizeStep {
		t.Fatalf("width should move with Name, got %d", w)
	}
	m, _ = press(m, runes("+"))
	if w := tb.View().Columns[1].Width; w != defaultStartWidth+3*resizeStep {
		t.Fatalf("want width %d got %d", defaultStartWidth+3*resizeStep, w)
	}
}

func TestApplyFilterInput(t *testing.T) {
	status := &column.CustomColumn[row]{
		Header: column.Header[row]{Text: "Status"},
		Render: func(r row) string { return "" },
		Filter: &column.CustomFilter[row]{
			Kind:     column.FilterDropdown,
			Multiple: true,
			Options:  []dropdown.Option{{Text: "Open", Value: 1}, {Text: "Shipped", Value: 2}},
			Match: func(value any, r row, _ any) bool {
				for _, v := range value.([]any) {
					if v == r["status"] {
						return true
					}
				}
				return false
			},
		},
	}
	placed := &column.DateColumn[row]{Header: column.Header[row]{Text: "Placed"}, Path: "placed", Filter: column.Ranged}
	tb := newTable(t, func(o *table.Options[row]) {
		o.Columns = append(o.Columns, status, placed)
	})

	if err := ApplyFilterInput(tb, 2, status, "ship, op"); err != nil {
		t.Fatalf("ApplyFilterInput: %v", err)
	}
	e, _ := tb.Filters().Get(2)
	if diff := cmp.Diff([]any{2, 1}, e.Value); diff != "" {
		t.Fatalf("dropdown values (-want +got):\n%s", diff)
	}

	if err := ApplyFilterInput(tb, 3, placed, "2021-01-01..2021-02-01"); err != nil {
		t.Fatalf("ApplyFilterInput: %v", err)
	}
	e, _ = tb.Filters().Get(3)
	r, ok := e.Value.(filter.DateRange)
	if !ok || r.From == nil || r.To == nil || r.From.Month() != 1 || r.To.Month() != 2 {
		t.Fatalf("unexpected date range %+v", e.Value)
	}
	if err := ApplyFilterInput(tb, 3, placed, "soon.."); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if err := ApplyFilterInput(tb, 3, placed, "  "); err != nil || tb.Filters().Len() != 1 {
		t.Fatalf("blank input should remove the filter: %v", err)
	}
}

func TestRangedInputDelegatesOnce(t *testing.T) {
	total := 5
	var got []any
	tb := newTable(t, func(o *table.Options[row]) {
		o.ServerSideFilter = true
		o.TotalResults = &total
		o.OnFilter = func(s *filter.State[row]) {
			e, _ := s.Get(1)
			got = append(got, e.Value)
		}
	})
	age := columns()[1]

	if err := ApplyFilterInput(tb, 1, age, "20..30"); err != nil {
		t.Fatalf("ApplyFilterInput: %v", err)
	}
	want := []any{filter.NumberRange{Min: "20", Max: "30"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("OnFilter calls (-want +got):\n%s", diff)
	}

	if err := ApplyFilterInput(tb, 1, age, ".."); err != nil {
		t.Fatalf("ApplyFilterInput: %v", err)
	}
	if len(got) != 2 || got[1] != nil || tb.Filters().Len() != 0 {
		t.Fatalf("an open range should clear the filter in one call, got %v", got)
	}
}

func TestRender(t *testing.T) {
	tb := newTable(t, func(o *table.Options[row]) {
		o.Paging = true
		o.DefaultPageSize = 2
		o.ShowResultCount = true
	})
	tb.ToggleSort(0)
	out := Render(tb.View(), RenderOptions{CursorRow: -1, CursorCol: -1})
	for _, want := range []string{"Name ▲", "alice", "bob", "Showing 2 out of 5 results", "5 results"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "carol") {
		t.Fatalf("render shows rows of another page:\n%s", out)
	}

	tb.SetData(nil)
	out = Render(tb.View(), RenderOptions{CursorRow: -1, CursorCol: -1})
	if !strings.Contains(out, "No items to display") {
		t.Fatalf("render misses the empty message:\n%s", out)
	}
}
