package ui

import (
	"fmt"
	"strings"
	"time"

	"datatable/internal/core/column"
	"datatable/internal/core/dropdown"
	"datatable/internal/core/filter"
	"datatable/internal/core/format"
	"datatable/internal/core/table"
)

// rangeSep splits the two sides of a ranged filter input, e.g. "10..20".
const rangeSep = ".."

// ApplyFilterInput turns the text typed for the column at original index
// into a filter edit. Blank input removes the filter.
func ApplyFilterInput[T any](tb *table.Table[T], index int, c column.Column[T], input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return tb.SetFilter(index, "")
	}
	switch c := c.(type) {
	case *column.NumericColumn[T]:
		if c.Filter == column.Ranged {
			lo, hi := splitRange(input)
			return tb.SetFilter(index, filter.NumberRange{Min: lo, Max: hi})
		}
	case *column.DateColumn[T]:
		if c.Filter == column.Ranged {
			lo, hi := splitRange(input)
			from, err := parseDate(lo)
			if err != nil {
				return err
			}
			to, err := parseDate(hi)
			if err != nil {
				return err
			}
			return tb.SetFilter(index, filter.DateRange{From: from, To: to})
		}
		at, err := parseDate(input)
		if err != nil {
			return err
		}
		if at == nil {
			return tb.SetFilter(index, "")
		}
		return tb.SetFilter(index, *at)
	case *column.ColorColumn[T]:
		if c.Multiple {
			return tb.SetFilter(index, splitList(input))
		}
	case *column.RelationalColumn[T]:
		return applyCustom(tb, index, c.Filter, input)
	case *column.CustomColumn[T]:
		return applyCustom(tb, index, c.Filter, input)
	}
	return tb.SetFilter(index, input)
}

func applyCustom[T any](tb *table.Table[T], index int, f *column.CustomFilter[T], input string) error {
	if f == nil {
		return fmt.Errorf("column %d has no filter", index)
	}
	switch f.Kind {
	case column.FilterNumber:
		if f.Ranged {
			lo, hi := splitRange(input)
			return tb.SetFilter(index, filter.NumberRange{Min: lo, Max: hi})
		}
	case column.FilterDropdown:
		m := dropdown.New(f.Options, f.Multiple)
		m.AllowFiltering = true
		for _, part := range splitList(input) {
			if opts := m.Filter(part); len(opts) > 0 {
				m.Select(&opts[0])
			}
		}
		values := m.Values()
		if len(values) == 0 {
			return tb.SetFilter(index, "")
		}
		if !f.Multiple {
			return tb.SetFilter(index, values[0])
		}
		return tb.SetFilter(index, values)
	}
	return tb.SetFilter(index, input)
}

func splitRange(s string) (string, string) {
	lo, hi, ok := strings.Cut(s, rangeSep)
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(lo), strings.TrimSpace(hi)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := format.TimeOf(s)
	if !ok {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}
