package format

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/net/html"

	"datatable/internal/core/column"
	"datatable/internal/core/path"
	"datatable/internal/core/related"
	"datatable/internal/core/sanitize"
)

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Cell renders the display text of one cell. Rich text comes back as
// sanitized HTML (rich mode); color cells return the raw color value.
// Missing values become the empty-cell placeholder, or zero for plain numbers.
func Cell[T any](c column.Column[T], row T, cache *related.Cache, o Options) string {
	switch c := c.(type) {
	case *column.TextColumn[T]:
		v := path.Get(row, c.Path)
		if isEmpty(v) {
			return o.empty()
		}
		return cast.ToString(v)
	case *column.RichTextColumn[T]:
		v := path.Get(row, c.Path)
		if isEmpty(v) {
			return o.empty()
		}
		return sanitize.String(cast.ToString(v), sanitize.Rich)
	case *column.ColorColumn[T]:
		v := path.Get(row, c.Path)
		if isEmpty(v) {
			return o.empty()
		}
		return cast.ToString(v)
	case *column.DateColumn[T]:
		v := path.Get(row, c.Path)
		s := o.DateFormatter()(v, c.ShowTime, c.ShowSeconds)
		if isEmpty(v) || s == "" {
			return o.empty()
		}
		return s
	case *column.NumericColumn[T]:
		v := path.Get(row, c.Path)
		if c.Money {
			if isEmpty(v) {
				return o.empty()
			}
			return o.MoneyFormatter()(cast.ToFloat64(v))
		}
		if s, ok := Number(v); ok {
			return s
		}
		return "0"
	case *column.RelationalColumn[T]:
		id := path.Get(row, c.Path)
		if isEmpty(id) {
			return o.empty()
		}
		ent := related.Resolve(id, c.Related, cache)
		if ent == nil || c.Render == nil {
			return o.empty()
		}
		return c.Render(ent)
	case *column.CustomColumn[T]:
		if c.Render == nil {
			return o.empty()
		}
		return c.Render(row)
	}
	return o.empty()
}

// PlainCell is Cell with any markup stripped, for text-only surfaces.
func PlainCell[T any](c column.Column[T], row T, cache *related.Cache, o Options) string {
	s := Cell(c, row, cache, o)
	if c.Kind() == column.RichText {
		return html2text(s)
	}
	return s
}

func html2text(s string) string {
	s = strings.ReplaceAll(s, "<br />", " ")
	s = strings.ReplaceAll(s, "</p><p>", " ")
	return html.UnescapeString(sanitize.String(s, sanitize.Plain))
}
