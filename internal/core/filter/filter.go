package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/net/html"

	"datatable/internal/core/column"
	"datatable/internal/core/format"
	"datatable/internal/core/path"
	"datatable/internal/core/related"
	"datatable/internal/core/sanitize"
)

// Options tunes the engine. The zero value uses sanitize.String and the
// local time zone.
type Options struct {
	Sanitize sanitize.Func
	Location *time.Location
}

func (o Options) sanitize() sanitize.Func {
	if o.Sanitize == nil {
		return sanitize.String
	}
	return o.Sanitize
}

// Apply returns the rows matching every active filter, applied in column
// index order. An empty state returns rows itself; otherwise the result is
// a new slice and rows is left untouched.
func Apply[T any](s *State[T], rows []T, cache *related.Cache, o Options) []T {
	if s.Len() == 0 {
		return rows
	}
	out := slices.Clone(rows)
	for _, i := range s.Indices() {
		e := s.entries[i]
		v := clean(e.Value)
		out = slices.DeleteFunc(out, func(r T) bool { return !Match(e.Column, v, r, cache, o) })
	}
	return out
}

// clean trims and lower-cases string filter values; other shapes pass through.
func clean(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return v
}

// Match reports whether row satisfies a cleaned filter value for c.
func Match[T any](c column.Column[T], value any, row T, cache *related.Cache, o Options) bool {
	switch c := c.(type) {
	case *column.TextColumn[T]:
		data := strings.ToLower(strings.TrimSpace(cast.ToString(path.Get(row, c.Path))))
		want := cast.ToString(value)
		if c.Filter == column.Exact {
			return data == want
		}
		return strings.Contains(data, want)
	case *column.ColorColumn[T]:
		data := cast.ToString(path.Get(row, c.Path))
		if c.Multiple {
			return slices.Contains(cast.ToStringSlice(value), data)
		}
		return data == cast.ToString(value)
	case *column.RichTextColumn[T]:
		data := cast.ToString(path.Get(row, c.Path))
		text := html.UnescapeString(o.sanitize()(data, sanitize.Plain))
		return strings.Contains(strings.ToLower(text), cast.ToString(value))
	case *column.NumericColumn[T]:
		return matchNumber(c.Filter, value, path.Get(row, c.Path))
	case *column.DateColumn[T]:
		return matchDate(c, value, path.Get(row, c.Path), o.Location)
	case *column.RelationalColumn[T]:
		ent := related.Resolve(path.Get(row, c.Path), c.Related, cache)
		return matchCustom(c.Filter, value, row, ent)
	case *column.CustomColumn[T]:
		return matchCustom(c.Filter, value, row, nil)
	}
	return false
}

func matchNumber(mode column.FilterMode, value, raw any) bool {
	if raw == nil {
		return false
	}
	data, err := cast.ToFloat64E(raw)
	if err != nil {
		return false
	}
	if mode == column.Ranged {
		r, ok := value.(NumberRange)
		if !ok {
			return false
		}
		if lo, ok := bound(r.Min); ok && data < lo {
			return false
		}
		if hi, ok := bound(r.Max); ok && data > hi {
			return false
		}
		return true
	}
	want, err := cast.ToFloat64E(value)
	if err != nil {
		return false
	}
	switch mode {
	case column.Exact:
		return data == want
	case column.Minimum:
		return data >= want
	case column.Maximum:
		return data <= want
	}
	return false
}

// bound parses one side of a NumberRange; open or unparseable sides report false.
func bound(v any) (float64, bool) {
	if openBound(v) {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

func matchDate[T any](c *column.DateColumn[T], value, raw any, loc *time.Location) bool {
	data, ok := format.TimeOf(raw)
	if !ok {
		return false
	}
	if c.Filter == column.Ranged {
		r, ok := value.(DateRange)
		if !ok {
			return false
		}
		return (r.From == nil || !data.Before(*r.From)) && (r.To == nil || !data.After(*r.To))
	}
	want, ok := format.TimeOf(value)
	if !ok {
		return false
	}
	switch c.Filter {
	case column.Minimum:
		return !data.Before(want)
	case column.Maximum:
		return !data.After(want)
	case column.Exact:
		if c.ShowTime {
			unit := time.Minute
			if c.ShowSeconds {
				unit = time.Second
			}
			return data.Truncate(unit).Equal(want.Truncate(unit))
		}
		if loc == nil {
			loc = time.Local
		}
		data, want = data.In(loc), want.In(loc)
		// Weekday, not day of month.
		return data.Weekday() == want.Weekday() && data.Month() == want.Month() && data.Year() == want.Year()
	}
	return false
}

func matchCustom[T any](f *column.CustomFilter[T], value any, row T, ent any) bool {
	if f == nil {
		return false
	}
	switch f.Kind {
	case column.FilterText, column.FilterDropdown:
		return f.Match != nil && f.Match(value, row, ent)
	case column.FilterNumber:
		if f.Ranged {
			r, ok := value.(NumberRange)
			if !ok || f.MatchRange == nil {
				return false
			}
			return f.MatchRange(r.Min, r.Max, row, ent)
		}
		return f.Match != nil && f.Match(value, row, ent)
	}
	return false
}

// ColorOptions lists the distinct color values of rows in first-seen order,
// the choices offered by a color filter.
func ColorOptions[T any](c *column.ColorColumn[T], rows []T) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := cast.ToString(path.Get(r, c.Path))
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
