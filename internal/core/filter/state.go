package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"datatable/internal/core/column"
)

// NumberRange is the value of a ranged numeric filter. A bound that is nil
// or "" is open.
type NumberRange struct {
	Min any
	Max any
}

// DateRange is the value of a ranged date filter. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Entry is one active filter.
type Entry[T any] struct {
	Column column.Column[T]
	Value  any
}

// State maps original column indices to active filters. It never holds an
// entry whose value is empty, so Len is the active filter count.
type State[T any] struct {
	entries map[int]Entry[T]
}

func NewState[T any]() *State[T] { return &State[T]{entries: make(map[int]Entry[T])} }

func (s *State[T]) init() {
	if s.entries == nil {
		s.entries = make(map[int]Entry[T])
	}
}

func (s *State[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Get returns the entry for a column index.
func (s *State[T]) Get(index int) (Entry[T], bool) {
	if s == nil {
		return Entry[T]{}, false
	}
	e, ok := s.entries[index]
	return e, ok
}

// Set stores value for the column at index, or removes the entry when value
// is empty for its kind.
func (s *State[T]) Set(index int, col column.Column[T], value any) {
	s.init()
	if Vacuous(value) {
		delete(s.entries, index)
		return
	}
	s.entries[index] = Entry[T]{Column: col, Value: value}
}

// SetBound updates one side of a ranged filter ("min"/"max" for numbers,
// "from"/"to" for dates). The entry starts from the empty range of the
// column's kind and is removed once both sides are empty again.
func (s *State[T]) SetBound(index int, col column.Column[T], bound string, value any) error {
	s.init()
	cur, ok := s.entries[index]
	switch strings.ToLower(bound) {
	case "min", "max":
		r, isRange := cur.Value.(NumberRange)
		if !ok || !isRange {
			r = NumberRange{Min: "", Max: ""}
		}
		if value == nil {
			value = ""
		}
		if strings.EqualFold(bound, "min") {
			r.Min = value
		} else {
			r.Max = value
		}
		s.Set(index, col, r)
	case "from", "to":
		r, isRange := cur.Value.(DateRange)
		if !ok || !isRange {
			r = DateRange{}
		}
		t, err := timePtr(value)
		if err != nil {
			return err
		}
		if strings.EqualFold(bound, "from") {
			r.From = t
		} else {
			r.To = t
		}
		s.Set(index, col, r)
	default:
		return fmt.Errorf("unknown range bound %q", bound)
	}
	return nil
}

func timePtr(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *time.Time:
		return x, nil
	case time.Time:
		if x.IsZero() {
			return nil, nil
		}
		return &x, nil
	}
	return nil, fmt.Errorf("date bound must be a time, got %T", v)
}

func (s *State[T]) Remove(index int) {
	if s != nil {
		delete(s.entries, index)
	}
}

func (s *State[T]) Clear() {
	if s != nil {
		s.entries = make(map[int]Entry[T])
	}
}

// Indices returns the active column indices in ascending order, the order
// filters are applied in.
func (s *State[T]) Indices() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.entries))
	for i := range s.entries {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy; callback receivers get clones.
func (s *State[T]) Clone() *State[T] {
	c := NewState[T]()
	if s == nil {
		return c
	}
	for i, e := range s.entries {
		c.entries[i] = e
	}
	return c
}

// Vacuous reports whether v is the empty representation of a filter value.
func Vacuous(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case *time.Time:
		return x == nil
	case time.Time:
		return x.IsZero()
	case NumberRange:
		return openBound(x.Min) && openBound(x.Max)
	case DateRange:
		return x.From == nil && x.To == nil
	}
	return false
}

func openBound(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
