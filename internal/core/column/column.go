package column

import (
	"datatable/internal/core/dropdown"
	"datatable/internal/core/related"
)

// Kind identifies a column's data type and its filter/search/sort semantics.
type Kind int

const (
	PlainText Kind = iota
	RichText
	Relation
	Date
	Custom
	Number
	Color
	Money
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "text"
	case RichText:
		return "richtext"
	case Relation:
		return "relation"
	case Date:
		return "date"
	case Custom:
		return "custom"
	case Number:
		return "number"
	case Color:
		return "color"
	case Money:
		return "money"
	default:
		return "unknown"
	}
}

// FilterMode selects how a filter value is compared to a cell value.
type FilterMode int

const (
	FilterUnset FilterMode = iota
	Exact
	Partial
	Ranged
	Minimum
	Maximum
)

func (m FilterMode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	case Ranged:
		return "ranged"
	case Minimum:
		return "min"
	case Maximum:
		return "max"
	default:
		return ""
	}
}

// Direction is a sort direction.
type Direction string

const (
	None       Direction = "none"
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SearchMatcher decides whether row matches a cleaned (trimmed, lower-cased)
// search term. related is the resolved entity for relational columns, nil otherwise.
type SearchMatcher[T any] func(row T, term string, related any) bool

// Header carries the fields every column kind shares.
type Header[T any] struct {
	Text          string
	Sortable      bool
	SortAccessor  func(row T) any
	DefaultSort   Direction
	Resizable     bool
	DefaultWidth  string
	SearchMatcher SearchMatcher[T]
}

func (h *Header[T]) Head() *Header[T] { return h }

// Column is the closed set of column kinds. Only the types in this package
// implement it; engines dispatch on the concrete type.
type Column[T any] interface {
	Head() *Header[T]
	Kind() Kind
	sealed()
}

// TextColumn holds plain text compared case-insensitively.
type TextColumn[T any] struct {
	Header[T]
	Path   string
	Filter FilterMode // Exact or Partial (default)
}

// RichTextColumn holds HTML; filter and search use its plain-text projection.
type RichTextColumn[T any] struct {
	Header[T]
	Path string
}

// ColorColumn holds an opaque color string.
type ColorColumn[T any] struct {
	Header[T]
	Path     string
	Multiple bool
}

// DateColumn holds a millisecond timestamp or a time.Time.
type DateColumn[T any] struct {
	Header[T]
	Path        string
	ShowTime    bool
	ShowSeconds bool
	Filter      FilterMode // Exact, Minimum, Maximum or Ranged
}

// NumericColumn holds a number; Money switches display to currency.
type NumericColumn[T any] struct {
	Header[T]
	Path   string
	Money  bool
	Filter FilterMode // Exact, Minimum, Maximum or Ranged
}

// RelationalColumn holds a foreign id resolved against Related.
type RelationalColumn[T any] struct {
	Header[T]
	Path    string
	Related related.Source
	Render  func(entity any) string
	Filter  *CustomFilter[T]
}

// CustomColumn renders and filters through caller-supplied functions.
type CustomColumn[T any] struct {
	Header[T]
	Render func(row T) string
	Filter *CustomFilter[T]
}

func (*TextColumn[T]) Kind() Kind       { return PlainText }
func (*RichTextColumn[T]) Kind() Kind   { return RichText }
func (*ColorColumn[T]) Kind() Kind      { return Color }
func (*DateColumn[T]) Kind() Kind       { return Date }
func (*RelationalColumn[T]) Kind() Kind { return Relation }
func (*CustomColumn[T]) Kind() Kind     { return Custom }

func (c *NumericColumn[T]) Kind() Kind {
	if c.Money {
		return Money
	}
	return Number
}

func (*TextColumn[T]) sealed()       {}
func (*RichTextColumn[T]) sealed()   {}
func (*ColorColumn[T]) sealed()      {}
func (*DateColumn[T]) sealed()       {}
func (*NumericColumn[T]) sealed()    {}
func (*RelationalColumn[T]) sealed() {}
func (*CustomColumn[T]) sealed()     {}

// CustomFilterKind selects the input a custom filter is edited with.
type CustomFilterKind int

const (
	FilterText CustomFilterKind = iota
	FilterDropdown
	FilterNumber
)

// CustomFilter is the filter of a relational or custom column. Match receives
// the cleaned filter value; MatchRange is used instead when Ranged is set on
// a number filter.
type CustomFilter[T any] struct {
	Kind        CustomFilterKind
	Placeholder string
	Ranged      bool
	Options     []dropdown.Option
	Multiple    bool
	Match       func(value any, row T, related any) bool
	MatchRange  func(min, max any, row T, related any) bool
}

// PathOf returns the property path of c; custom columns have none.
func PathOf[T any](c Column[T]) (string, bool) {
	switch c := c.(type) {
	case *TextColumn[T]:
		return c.Path, true
	case *RichTextColumn[T]:
		return c.Path, true
	case *ColorColumn[T]:
		return c.Path, true
	case *DateColumn[T]:
		return c.Path, true
	case *NumericColumn[T]:
		return c.Path, true
	case *RelationalColumn[T]:
		return c.Path, true
	}
	return "", false
}

// FilterModeOf returns the configured filter mode of kinds that have one.
func FilterModeOf[T any](c Column[T]) FilterMode {
	switch c := c.(type) {
	case *TextColumn[T]:
		return c.Filter
	case *DateColumn[T]:
		return c.Filter
	case *NumericColumn[T]:
		return c.Filter
	}
	return FilterUnset
}

// CustomFilterOf returns the custom filter of relational and custom columns.
func CustomFilterOf[T any](c Column[T]) *CustomFilter[T] {
	switch c := c.(type) {
	case *RelationalColumn[T]:
		return c.Filter
	case *CustomColumn[T]:
		return c.Filter
	}
	return nil
}

// IsNumeric reports whether c is a Number or Money column.
func IsNumeric[T any](c Column[T]) bool {
	k := c.Kind()
	return k == Number || k == Money
}

// SameColumn compares columns by header text, the identity sort rules use.
func SameColumn[T any](a, b Column[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Head().Text == b.Head().Text
}

// KindOf returns the kind of c.
func KindOf[T any](c Column[T]) Kind { return c.Kind() }

// HeaderOf returns the shared header fields of c.
func HeaderOf[T any](c Column[T]) *Header[T] { return c.Head() }
