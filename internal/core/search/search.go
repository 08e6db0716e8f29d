package search

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/net/html"

	"datatable/internal/core/column"
	"datatable/internal/core/format"
	"datatable/internal/core/path"
	"datatable/internal/core/related"
	"datatable/internal/core/sanitize"
)

// Options tunes the engine. Zero values use format.Date and sanitize.String.
type Options struct {
	FormatDate format.DateFunc
	Sanitize   sanitize.Func
}

// Clean trims and lower-cases a search term.
func Clean(term string) string { return strings.ToLower(strings.TrimSpace(term)) }

// Apply keeps the rows where any column matches term. A blank term returns
// rows itself.
func Apply[T any](term string, rows []T, cols []column.Column[T], cache *related.Cache, o Options) []T {
	t := Clean(term)
	if t == "" {
		return rows
	}
	if o.FormatDate == nil {
		o.FormatDate = format.Date
	}
	if o.Sanitize == nil {
		o.Sanitize = sanitize.String
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, c := range cols {
			if Match(c, t, r, cache, o) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Match reports whether column c of row contains the cleaned term.
func Match[T any](c column.Column[T], term string, row T, cache *related.Cache, o Options) bool {
	if m := c.Head().SearchMatcher; m != nil {
		if rc, ok := c.(*column.RelationalColumn[T]); ok {
			return m(row, term, related.Resolve(path.Get(row, rc.Path), rc.Related, cache))
		}
		return m(row, term, nil)
	}
	p, ok := column.PathOf(c)
	if !ok {
		return false
	}
	data := path.Get(row, p)
	if data == nil {
		return false
	}
	switch c := c.(type) {
	case *column.NumericColumn[T]:
		s, ok := format.Number(data)
		return ok && strings.Contains(s, term)
	case *column.DateColumn[T]:
		return contains(o.FormatDate(data, c.ShowTime, c.ShowSeconds), term)
	case *column.RichTextColumn[T]:
		return contains(html.UnescapeString(o.Sanitize(cast.ToString(data), sanitize.Plain)), term)
	}
	return contains(cast.ToString(data), term)
}

func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}
