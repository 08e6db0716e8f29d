package table

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"

	"datatable/internal/core/column"
	"datatable/internal/core/debounce"
	"datatable/internal/core/filter"
	"datatable/internal/core/layout"
	"datatable/internal/core/paging"
	"datatable/internal/core/related"
	"datatable/internal/core/search"
	"datatable/internal/core/sorting"
	"datatable/internal/infra/logx"
)

// Table owns the state of one table instance and runs the row pipeline:
// sort, search, filter, page. Each stage runs locally or is delegated to a
// callback. Methods are safe for concurrent use; callbacks are invoked
// without holding the table's lock.
type Table[T any] struct {
	mu   sync.Mutex
	opts Options[T]
	cols []column.Column[T]
	data []T

	cache *related.Cache

	rules       sorting.Rules[T]
	filters     *filter.State[T] // as edited
	applied     *filter.State[T] // as last applied locally
	term        string
	appliedTerm string

	pager        *paging.Pager
	totalPages   int
	totalResults *int
	loading      bool

	order    *layout.Order
	widths   layout.Widths
	rowOrder []int
	selected []T

	sorted   []T
	searched []T
	filtered []T

	searchDeb *debounce.Debouncer
	filterDeb *debounce.Debouncer
	metrics   *Metrics
}

// New validates opts and builds a table. Validation failures are returned
// as *ValidationError.
func New[T any](opts Options[T]) (*Table[T], error) {
	if err := Validate(opts); err != nil {
		return nil, err
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = debounce.DefaultDelay
	}
	if opts.Format.Locale == language.Und {
		opts.Format.Locale = language.AmericanEnglish
	}
	t := &Table[T]{
		opts:         opts,
		data:         opts.Data,
		cache:        related.NewCache(),
		pager:        paging.NewPager(opts.DefaultPageSize),
		totalPages:   opts.TotalPages,
		totalResults: opts.TotalResults,
		searchDeb:    debounce.New(delay, opts.Scheduler),
		filterDeb:    debounce.New(delay, opts.Scheduler),
		metrics:      NewMetrics(),
	}
	t.resetColumnsLocked(opts.Columns)
	t.recomputeLocked()
	return t, nil
}

func (t *Table[T]) searchLocal() bool { return t.opts.Searchable && !t.opts.ServerSideSearch }
func (t *Table[T]) filterLocal() bool { return t.opts.Filterable && !t.opts.ServerSideFilter }
func (t *Table[T]) pageLocal() bool   { return t.opts.Paging && !t.opts.ServerSidePaging }

func (t *Table[T]) resetColumnsLocked(cols []column.Column[T]) {
	t.cols = cols
	t.rules = sorting.Defaults(cols)
	t.filters = filter.NewState[T]()
	t.applied = filter.NewState[T]()
	t.term, t.appliedTerm = "", ""
	t.order = layout.NewOrder(len(cols), t.opts.PinnedColumns)
	t.widths = layout.Widths{}
	t.rowOrder = nil
	t.selected = nil
	t.cache.Reset()
}

// recomputeLocked rebuilds the local stage outputs from the applied state.
func (t *Table[T]) recomputeLocked() {
	t.metrics.Recomputes.Add(1)

	t.sorted = t.data
	if !t.opts.ServerSideSort && len(t.rules) > 0 {
		start := time.Now()
		t.sorted = sorting.Apply(t.rules, t.data, sorting.Options{Locale: t.opts.Format.Locale})
		t.metrics.IncRun(StageSort, time.Since(start))
	}

	t.searched = t.sorted
	if t.searchLocal() && search.Clean(t.appliedTerm) != "" {
		start := time.Now()
		t.searched = search.Apply(t.appliedTerm, t.sorted, t.cols, t.cache, search.Options{
			FormatDate: t.opts.Format.DateFormatter(),
		})
		t.metrics.IncRun(StageSearch, time.Since(start))
	}

	t.filtered = t.searched
	if t.filterLocal() && t.applied.Len() > 0 {
		start := time.Now()
		t.filtered = filter.Apply(t.applied, t.searched, t.cache, filter.Options{Location: t.opts.Format.Location})
		t.metrics.IncRun(StageFilter, time.Since(start))
	}

	if t.pageLocal() {
		t.pager.Reset()
	}
	t.rowOrder = nil

	logx.Debugw("table pipeline", logx.Fields{
		"table":    t.opts.Name,
		"rows":     len(t.data),
		"sorted":   len(t.sorted),
		"searched": len(t.searched),
		"filtered": len(t.filtered),
		"rules":    len(t.rules),
		"filters":  t.applied.Len(),
	})
}

func run(calls []func()) {
	for _, f := range calls {
		f()
	}
}

// SetData replaces the row set and reruns the local stages.
func (t *Table[T]) SetData(data []T) {
	t.mu.Lock()
	t.data = data
	t.recomputeLocked()
	t.mu.Unlock()
}

// SetColumns replaces the column set. Sort, filter, search, layout and
// selection state return to their defaults.
func (t *Table[T]) SetColumns(cols []column.Column[T]) error {
	t.mu.Lock()
	next := t.opts
	next.Columns = cols
	next.TotalResults = t.totalResults
	if err := Validate(next); err != nil {
		t.mu.Unlock()
		return err
	}
	t.opts.Columns = cols
	hadRules, hadFilters, hadTerm := len(t.rules) > 0, t.filters.Len() > 0, t.term != ""
	t.resetColumnsLocked(cols)
	t.recomputeLocked()

	var calls []func()
	if t.opts.ServerSideSort && (hadRules || len(t.rules) > 0) {
		calls = append(calls, t.sortCallbackLocked())
	}
	if t.opts.Filterable && t.opts.ServerSideFilter && hadFilters {
		calls = append(calls, t.filterCallbackLocked())
	}
	if t.opts.Searchable && t.opts.ServerSideSearch && hadTerm {
		cb := t.opts.OnSearch
		calls = append(calls, func() { t.metrics.IncCallback(StageSearch); cb("") })
	}
	t.mu.Unlock()

	t.searchDeb.Cancel()
	t.filterDeb.Cancel()
	run(calls)
	return nil
}

// SetSearchTerm records term and arms the debounced search (or OnSearch
// when searching is delegated). It is a no-op when searching is disabled.
func (t *Table[T]) SetSearchTerm(term string) {
	t.mu.Lock()
	if !t.opts.Searchable {
		t.mu.Unlock()
		return
	}
	t.term = term
	t.mu.Unlock()

	t.metrics.Debounced.Add(1)
	t.searchDeb.Trigger(func() { t.applySearch(term) })
}

func (t *Table[T]) applySearch(term string) {
	t.mu.Lock()
	if t.opts.ServerSideSearch {
		cb := t.opts.OnSearch
		t.mu.Unlock()
		logx.Debugw("delegating search", logx.Fields{"table": t.opts.Name, "term": term})
		t.metrics.IncCallback(StageSearch)
		cb(term)
		return
	}
	t.appliedTerm = term
	t.recomputeLocked()
	t.mu.Unlock()
}

// SearchTerm returns the term as typed, which may not be applied yet.
func (t *Table[T]) SearchTerm() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term
}

func (t *Table[T]) filterCallbackLocked() func() {
	cb := t.opts.OnFilter
	state := t.filters.Clone()
	return func() {
		logx.Debugw("delegating filter", logx.Fields{"table": t.opts.Name, "filters": state.Len()})
		t.metrics.IncCallback(StageFilter)
		cb(state)
	}
}

// filterChangedLocked returns the follow-up of a filter edit: OnFilter right
// away when delegated, otherwise arming the debounced local pass.
func (t *Table[T]) filterChangedLocked() func() {
	if t.opts.ServerSideFilter {
		return t.filterCallbackLocked()
	}
	return func() {
		t.metrics.Debounced.Add(1)
		t.filterDeb.Trigger(t.applyFilters)
	}
}

func (t *Table[T]) applyFilters() {
	t.mu.Lock()
	t.applied = t.filters.Clone()
	t.recomputeLocked()
	t.mu.Unlock()
}

func (t *Table[T]) editFilter(index int, edit func(c column.Column[T]) error) error {
	t.mu.Lock()
	if !t.opts.Filterable {
		t.mu.Unlock()
		return ErrNotFilterable
	}
	if index < 0 || index >= len(t.cols) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrColumnIndex, index)
	}
	if err := edit(t.cols[index]); err != nil {
		t.mu.Unlock()
		return err
	}
	next := t.filterChangedLocked()
	t.mu.Unlock()
	next()
	return nil
}

// SetFilter sets the filter of the column at original index. Empty values
// remove the filter.
func (t *Table[T]) SetFilter(index int, value any) error {
	return t.editFilter(index, func(c column.Column[T]) error {
		t.filters.Set(index, c, value)
		return nil
	})
}

// SetFilterBound sets one side of a ranged filter; see filter.State.SetBound.
func (t *Table[T]) SetFilterBound(index int, bound string, value any) error {
	return t.editFilter(index, func(c column.Column[T]) error {
		return t.filters.SetBound(index, c, bound, value)
	})
}

// ClearFilters removes every filter.
func (t *Table[T]) ClearFilters() error {
	t.mu.Lock()
	if !t.opts.Filterable {
		t.mu.Unlock()
		return ErrNotFilterable
	}
	t.filters.Clear()
	next := t.filterChangedLocked()
	t.mu.Unlock()
	next()
	return nil
}

// Filters returns a copy of the edited filter state.
func (t *Table[T]) Filters() *filter.State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filters.Clone()
}

func (t *Table[T]) sortCallbackLocked() func() {
	cb := t.opts.OnSort
	rules := slices.Clone(t.rules)
	return func() {
		logx.Debugw("delegating sort", logx.Fields{"table": t.opts.Name, "rules": len(rules)})
		t.metrics.IncCallback(StageSort)
		cb(rules)
	}
}

// ToggleSort advances the sort direction of the column at original index.
// It reports false for columns that are not sortable.
func (t *Table[T]) ToggleSort(index int) bool {
	t.mu.Lock()
	if index < 0 || index >= len(t.cols) || !t.cols[index].Head().Sortable {
		t.mu.Unlock()
		return false
	}
	t.rules = t.rules.Toggle(t.cols[index], t.opts.MultiSort)
	var calls []func()
	if t.opts.ServerSideSort {
		calls = append(calls, t.sortCallbackLocked())
	} else {
		t.recomputeLocked()
	}
	t.mu.Unlock()
	run(calls)
	return true
}

// Rules returns a copy of the active sort rules.
func (t *Table[T]) Rules() sorting.Rules[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.rules)
}

func (t *Table[T]) pageCountLocked() int {
	if t.opts.ServerSidePaging {
		return t.totalPages
	}
	return paging.PageCount(len(t.filtered), t.pager.Size())
}

func (t *Table[T]) pageCallbackLocked() func() {
	cb := t.opts.OnPage
	index, size := t.pager.Index(), t.pager.Size()
	return func() {
		logx.Debugw("delegating page", logx.Fields{"table": t.opts.Name, "index": index, "size": size})
		t.metrics.IncCallback(StagePage)
		cb(index, size)
	}
}

// SetPage moves to a zero-based page and reports whether it changed.
func (t *Table[T]) SetPage(index int) bool {
	t.mu.Lock()
	if !t.opts.Paging {
		t.mu.Unlock()
		return false
	}
	n := t.pageCountLocked()
	if (n > 0 && index >= n) || (n == 0 && t.pageLocal() && index > 0) {
		t.mu.Unlock()
		return false
	}
	if !t.pager.SetPage(index) {
		t.mu.Unlock()
		return false
	}
	t.rowOrder = nil
	var calls []func()
	if t.opts.ServerSidePaging {
		calls = append(calls, t.pageCallbackLocked())
	}
	t.mu.Unlock()
	run(calls)
	return true
}

// SetPageSize changes the page size and returns to the first page.
func (t *Table[T]) SetPageSize(size int) bool {
	t.mu.Lock()
	if !t.opts.Paging || !t.pager.SetPageSize(size) {
		t.mu.Unlock()
		return false
	}
	t.rowOrder = nil
	var calls []func()
	if t.opts.ServerSidePaging {
		calls = append(calls, t.pageCallbackLocked())
	}
	t.mu.Unlock()
	run(calls)
	return true
}

// SetTotalPages records the page count reported by a server. Zero keeps
// the previous count.
func (t *Table[T]) SetTotalPages(n int) {
	t.mu.Lock()
	if n > 0 {
		t.totalPages = n
	}
	t.mu.Unlock()
}

// SetTotalResults records the result count reported by a server.
func (t *Table[T]) SetTotalResults(n int) {
	t.mu.Lock()
	t.totalResults = &n
	t.mu.Unlock()
}

// SetLoading marks the table as waiting for data.
func (t *Table[T]) SetLoading(loading bool) {
	t.mu.Lock()
	t.loading = loading
	t.mu.Unlock()
}

func (t *Table[T]) pageRowsLocked() []T {
	rows := t.filtered
	if t.pageLocal() {
		rows = paging.Window(rows, t.pager.Index(), t.pager.Size())
	}
	if len(t.rowOrder) == len(rows) && len(rows) > 0 {
		ordered := make([]T, len(rows))
		for i, j := range t.rowOrder {
			ordered[i] = rows[j]
		}
		rows = ordered
	}
	return rows
}

func (t *Table[T]) key(row T) string {
	if t.opts.RowKey != nil {
		return t.opts.RowKey(row)
	}
	return fmt.Sprint(row)
}

func (t *Table[T]) isSelectedLocked(row T) bool {
	k := t.key(row)
	return slices.ContainsFunc(t.selected, func(s T) bool { return t.key(s) == k })
}

// SelectRow selects the row at a position of the visible page. With
// KeepSelections a second selection deselects it; otherwise OnRowSelected
// receives an empty selection list.
func (t *Table[T]) SelectRow(pos int) bool {
	t.mu.Lock()
	rows := t.pageRowsLocked()
	cb := t.opts.OnRowSelected
	if cb == nil || pos < 0 || pos >= len(rows) {
		t.mu.Unlock()
		return false
	}
	row := rows[pos]
	all := []T{}
	deselected := false
	if t.opts.KeepSelections {
		k := t.key(row)
		if i := slices.IndexFunc(t.selected, func(s T) bool { return t.key(s) == k }); i >= 0 {
			t.selected = slices.Delete(t.selected, i, i+1)
			deselected = true
		} else {
			t.selected = append(t.selected, row)
		}
		all = slices.Clone(t.selected)
	}
	t.mu.Unlock()
	cb(row, all, deselected)
	return true
}

// Selected returns the kept selections.
func (t *Table[T]) Selected() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.selected)
}

// MoveColumn moves a column between display positions. Pinned columns stay.
func (t *Table[T]) MoveColumn(from, to int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opts.ReorderColumns {
		return false
	}
	return t.order.Move(from, to)
}

// ResizeColumn drags the column at display position pos by delta pixels
// from start, its rendered width when the drag began. The width stays with
// the column when it is moved later.
func (t *Table[T]) ResizeColumn(pos, start, delta int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.order.Indices()
	if pos < 0 || pos >= len(idx) || !t.cols[idx[pos]].Head().Resizable {
		return false
	}
	t.widths.Begin(idx[pos], start)
	t.widths.Drag(idx[pos], delta)
	return true
}

// MoveRow moves a row between positions of the visible page and reports
// the move to OnRowReorder.
func (t *Table[T]) MoveRow(from, to int) bool {
	t.mu.Lock()
	if !t.opts.ReorderRows {
		t.mu.Unlock()
		return false
	}
	rows := t.pageRowsLocked()
	if from == to || from < 0 || to < 0 || from >= len(rows) || to >= len(rows) {
		t.mu.Unlock()
		return false
	}
	if len(t.rowOrder) != len(rows) {
		t.rowOrder = make([]int, len(rows))
		for i := range t.rowOrder {
			t.rowOrder[i] = i
		}
	}
	moved := rows[from]
	v := t.rowOrder[from]
	t.rowOrder = slices.Insert(slices.Delete(t.rowOrder, from, from+1), to, v)
	cb := t.opts.OnRowReorder
	t.mu.Unlock()
	if cb != nil {
		cb(moved, from, to)
	}
	return true
}

// Flush runs pending debounced search and filter work immediately.
func (t *Table[T]) Flush() {
	t.searchDeb.Flush()
	t.filterDeb.Flush()
}

// Close drops pending debounced work.
func (t *Table[T]) Close() {
	t.searchDeb.Cancel()
	t.filterDeb.Cancel()
}

func (t *Table[T]) Metrics() *Metrics { return t.metrics }

// Cache exposes the related-entity cache, e.g. for diagnostics.
func (t *Table[T]) Cache() *related.Cache { return t.cache }
