package table

import (
	"errors"
	"fmt"
	"time"

	"datatable/internal/core/column"
	"datatable/internal/core/debounce"
	"datatable/internal/core/filter"
	"datatable/internal/core/format"
	"datatable/internal/core/layout"
	"datatable/internal/core/sorting"
)

// Options configures a table instance. Columns are referenced by their
// position in Columns everywhere (filter keys, callbacks), regardless of
// display order.
type Options[T any] struct {
	Columns []column.Column[T]
	Data    []T

	Searchable       bool
	ServerSideSearch bool
	OnSearch         func(term string)

	Filterable       bool
	ServerSideFilter bool
	OnFilter         func(filters *filter.State[T])

	ServerSideSort bool
	OnSort         func(rules sorting.Rules[T])
	MultiSort      bool

	Paging           bool
	ServerSidePaging bool
	OnPage           func(index, size int)
	TotalPages       int
	DefaultPageSize  int
	PageSizeOptions  []int

	// TotalResults is the authoritative result count from a server. It is
	// required as soon as any capability is delegated.
	TotalResults *int

	Debounce  time.Duration
	Scheduler debounce.Scheduler

	PinnedColumns  int
	ReorderColumns bool
	ReorderRows    bool
	OnRowReorder   func(row T, from, to int)

	KeepSelections bool
	OnRowSelected  func(row T, all []T, deselected bool)
	// RowKey identifies rows for selection; rows are compared by their
	// printed value when nil.
	RowKey func(row T) string

	ShowResultCount         bool
	ShowFilteredResultCount bool
	MinRows                 int
	PluralEntityName        string
	Name                    string

	Messages Messages
	Format   format.Options
}

// Messages overrides user-facing text. Nil or empty fields use the defaults.
type Messages struct {
	NoData          func(plural string) string
	NoFilterResults string
	NoSearchResults string
	XResults        func(x int, plural string) string
	ShowingXOfY     func(x, y int, plural string) string
	FilteredFrom    func(from int, plural string) string
	Placeholders    filter.Placeholders
}

var (
	ErrMissingTotalResults  = errors.New("total results required for server side capabilities")
	ErrSortableWithoutKey   = errors.New("sortable column has no path or sort accessor")
	ErrNumericFilterMode    = errors.New("filterable numeric column has no filter mode")
	ErrPinnedWidthMissing   = errors.New("pinned column has no default width")
	ErrPinnedWidthNotPixels = errors.New("pinned column width is not in pixels")
	ErrMissingCallback      = errors.New("a delegated capability needs its callback")
	ErrNotFilterable        = errors.New("filtering is not enabled")
	ErrColumnIndex          = errors.New("column index out of range")
)

// validationText is the text shown to table authors for each sentinel.
var validationText = map[error]string{
	ErrMissingTotalResults:  "totalNumResults must be given when using server side searching, filtering, sorting or paging.",
	ErrSortableWithoutKey:   "A propertyPath or sortAccessor is required for sortable columns.",
	ErrNumericFilterMode:    "A filter type must be defined for numeric columns when isFilterable is true. Ensure that the column definition contains a filterType property.",
	ErrPinnedWidthMissing:   "A default width, in px, must be defined for pinned columns.",
	ErrPinnedWidthNotPixels: "The default width for pinned columns must be defined in pixels.",
}

// ValidationError is a construction-time failure tied to one column.
type ValidationError struct {
	Column string
	Err    error
}

func (e *ValidationError) Error() string {
	msg, ok := validationText[e.Err]
	if !ok {
		msg = e.Err.Error()
	}
	if e.Column == "" {
		return msg
	}
	return msg + " Problem column: " + e.Column
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks opts the way New does and returns the first problem.
func Validate[T any](opts Options[T]) error {
	delegated := opts.ServerSideSearch || (opts.Filterable && opts.ServerSideFilter) || opts.ServerSideSort || opts.ServerSidePaging
	if opts.TotalResults == nil && delegated {
		return &ValidationError{Err: ErrMissingTotalResults}
	}
	switch {
	case opts.Searchable && opts.ServerSideSearch && opts.OnSearch == nil:
		return &ValidationError{Err: fmt.Errorf("%w: server side searching without OnSearch", ErrMissingCallback)}
	case opts.Filterable && opts.ServerSideFilter && opts.OnFilter == nil:
		return &ValidationError{Err: fmt.Errorf("%w: server side filtering without OnFilter", ErrMissingCallback)}
	case opts.ServerSideSort && opts.OnSort == nil:
		return &ValidationError{Err: fmt.Errorf("%w: server side sorting without OnSort", ErrMissingCallback)}
	case opts.Paging && opts.ServerSidePaging && opts.OnPage == nil:
		return &ValidationError{Err: fmt.Errorf("%w: server side paging without OnPage", ErrMissingCallback)}
	}
	for i, c := range opts.Columns {
		h := c.Head()
		if _, hasPath := column.PathOf(c); h.Sortable && h.SortAccessor == nil && !hasPath {
			return &ValidationError{Column: h.Text, Err: ErrSortableWithoutKey}
		}
		if opts.Filterable && column.IsNumeric(c) && column.FilterModeOf(c) == column.FilterUnset {
			return &ValidationError{Column: h.Text, Err: ErrNumericFilterMode}
		}
		if i < opts.PinnedColumns {
			if h.DefaultWidth == "" {
				return &ValidationError{Column: h.Text, Err: ErrPinnedWidthMissing}
			}
			if !layout.ValidPinnedWidth(h.DefaultWidth) {
				return &ValidationError{Column: h.Text, Err: ErrPinnedWidthNotPixels}
			}
		}
	}
	return nil
}
