package sorting

import (
	"slices"
	"sort"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"datatable/internal/core/column"
	"datatable/internal/core/format"
	"datatable/internal/core/path"
)

// Rule sorts by one column in one direction.
type Rule[T any] struct {
	Column    column.Column[T]
	Direction column.Direction
}

// Rules is ordered; earlier rules are applied first.
type Rules[T any] []Rule[T]

// Options tunes the engine. The zero Locale compares text as en-US.
type Options struct {
	Locale language.Tag
}

// Apply returns a sorted copy of rows. Each rule fully re-sorts the result
// of the previous rules with a stable sort, then reverses it when
// descending.
func Apply[T any](rules Rules[T], rows []T, o Options) []T {
	out := slices.Clone(rows)
	if len(rules) == 0 {
		return out
	}
	tag := o.Locale
	if tag == language.Und {
		tag = language.AmericanEnglish
	}
	coll := collate.New(tag)
	for _, r := range rules {
		col := r.Column
		keys := make([]any, len(out))
		for i, row := range out {
			keys[i] = key(col, row)
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		text := col.Kind() == column.PlainText
		sort.SliceStable(idx, func(a, b int) bool {
			return compare(coll, text, keys[idx[a]], keys[idx[b]]) < 0
		})
		next := make([]T, len(out))
		for i, j := range idx {
			next[i] = out[j]
		}
		if r.Direction == column.Descending {
			slices.Reverse(next)
		}
		out = next
	}
	return out
}

func key[T any](c column.Column[T], row T) any {
	if acc := c.Head().SortAccessor; acc != nil {
		return acc(row)
	}
	p, ok := column.PathOf(c)
	if !ok {
		return nil
	}
	v := path.Get(row, p)
	if c.Kind() == column.Date {
		if t, ok := format.TimeOf(v); ok {
			return t
		}
	}
	return v
}

// compare orders two sort keys. Text columns holding strings use the
// collator; everything else is compared numerically and values that are
// not numbers compare equal.
func compare(coll *collate.Collator, text bool, a, b any) int {
	if text {
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return coll.CompareString(as, bs)
		}
	}
	af, aok := numeric(a)
	bf, bok := numeric(b)
	if !aok || !bok {
		return 0
	}
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case time.Time:
		return float64(x.UnixMilli()), true
	case *time.Time:
		if x == nil {
			return 0, false
		}
		return float64(x.UnixMilli()), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

// Find returns the index of the rule for c, or -1.
func (rs Rules[T]) Find(c column.Column[T]) int {
	return slices.IndexFunc(rs, func(r Rule[T]) bool { return column.SameColumn(r.Column, c) })
}

// Direction returns the active direction for c, None when unsorted.
func (rs Rules[T]) Direction(c column.Column[T]) column.Direction {
	if i := rs.Find(c); i >= 0 {
		return rs[i].Direction
	}
	return column.None
}

// Next returns the direction after d in the None, Asc, Desc cycle.
func Next(d column.Direction) column.Direction {
	switch d {
	case column.Ascending:
		return column.Descending
	case column.Descending:
		return column.None
	}
	return column.Ascending
}

// Toggle advances the direction of c and returns the new rule list. In
// single mode any other rule is discarded. rs is not modified.
func (rs Rules[T]) Toggle(c column.Column[T], multiple bool) Rules[T] {
	i := rs.Find(c)
	dir := column.None
	if i >= 0 {
		dir = rs[i].Direction
	}
	next := Next(dir)
	if next == column.None {
		if !multiple {
			return Rules[T]{}
		}
		return slices.Delete(slices.Clone(rs), i, i+1)
	}
	if !multiple {
		return Rules[T]{{Column: c, Direction: next}}
	}
	out := slices.Clone(rs)
	if i >= 0 {
		out[i].Direction = next
		return out
	}
	return append(out, Rule[T]{Column: c, Direction: next})
}

// Defaults returns the rules of sortable columns that declare a default
// direction, in column order.
func Defaults[T any](cols []column.Column[T]) Rules[T] {
	var out Rules[T]
	for _, c := range cols {
		h := c.Head()
		if h.Sortable && h.DefaultSort != "" && h.DefaultSort != column.None {
			out = append(out, Rule[T]{Column: c, Direction: h.DefaultSort})
		}
	}
	return out
}
