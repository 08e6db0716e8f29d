package filter

import (
	"datatable/internal/core/column"
)

// Placeholders overrides the hint text of filter inputs. Empty fields fall
// back to the defaults.
type Placeholders struct {
	GenericFilter    string `yaml:"genericFilter"`
	ExactMatch       string `yaml:"exactMatch"`
	PartialMatch     string `yaml:"partialMatch"`
	DateRangeFrom    string `yaml:"dateRangeFrom"`
	DateRangeTo      string `yaml:"dateRangeTo"`
	DateExact        string `yaml:"dateExact"`
	DateMin          string `yaml:"dateMin"`
	DateMax          string `yaml:"dateMax"`
	NumericExact     string `yaml:"numericExact"`
	NumericMin       string `yaml:"numericMin"`
	NumericMax       string `yaml:"numericMax"`
	NumericRangeFrom string `yaml:"numericRangeFrom"`
	NumericRangeTo   string `yaml:"numericRangeTo"`
	DropdownSingle   string `yaml:"dropdownSingle"`
	DropdownMultiple string `yaml:"dropdownMultiple"`
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// Placeholder returns the hint for the filter input of c. part selects the
// side of a ranged input ("min"/"max" or "from"/"to") and is ignored for
// single inputs.
func Placeholder[T any](c column.Column[T], part string, p Placeholders) string {
	switch c := c.(type) {
	case *column.TextColumn[T]:
		if c.Filter == column.Exact {
			return or(p.ExactMatch, "Exact")
		}
		return or(p.PartialMatch, "Contains")
	case *column.RichTextColumn[T]:
		return or(p.PartialMatch, "Contains")
	case *column.ColorColumn[T]:
		if c.Multiple {
			return or(p.DropdownMultiple, "Multiple")
		}
		return or(p.DropdownSingle, "Filter")
	case *column.NumericColumn[T]:
		switch c.Filter {
		case column.Ranged:
			return rangePart(part, p)
		case column.Exact:
			return or(p.NumericExact, "Exactly")
		case column.Minimum:
			return or(p.NumericMin, "At least")
		case column.Maximum:
			return or(p.NumericMax, "At most")
		}
	case *column.DateColumn[T]:
		switch c.Filter {
		case column.Ranged:
			if part == "to" {
				return or(p.DateRangeTo, "To")
			}
			return or(p.DateRangeFrom, "From")
		case column.Exact:
			return or(p.DateExact, "Exactly")
		case column.Minimum:
			return or(p.DateMin, "From")
		case column.Maximum:
			return or(p.DateMax, "Until")
		}
	case *column.RelationalColumn[T]:
		return customPlaceholder(c.Filter, part, p)
	case *column.CustomColumn[T]:
		return customPlaceholder(c.Filter, part, p)
	}
	return or(p.GenericFilter, "Filter")
}

func rangePart(part string, p Placeholders) string {
	if part == "max" {
		return or(p.NumericRangeTo, "Max")
	}
	return or(p.NumericRangeFrom, "Min")
}

func customPlaceholder[T any](f *column.CustomFilter[T], part string, p Placeholders) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case column.FilterNumber:
		if f.Ranged {
			return rangePart(part, p)
		}
		return or(p.GenericFilter, "Filter")
	case column.FilterDropdown:
		if f.Multiple {
			return or(p.DropdownMultiple, "Multiple")
		}
		return or(p.DropdownSingle, "Filter")
	}
	return f.Placeholder
}
