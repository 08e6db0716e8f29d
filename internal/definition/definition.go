// Package definition reads table definitions (columns, rows and table
// options) from YAML or JSON files.
package definition

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"datatable/internal/core/column"
	"datatable/internal/core/dropdown"
	"datatable/internal/core/path"
	"datatable/internal/core/related"
	"datatable/internal/core/search"
	"datatable/internal/core/table"
)

// Row is the record type of file-backed tables.
type Row = map[string]any

var (
	ErrUnknownKind   = errors.New("unknown column kind")
	ErrUnknownFilter = errors.New("unknown filter mode")
	ErrNoColumns     = errors.New("definition has no columns")
)

// Definition is one table document.
type Definition struct {
	Name       string      `yaml:"name"`
	Plural     string      `yaml:"plural"`
	Columns    []ColumnDef `yaml:"columns"`
	Rows       []Row       `yaml:"rows"`
	Searchable bool        `yaml:"searchable"`
	Filterable bool        `yaml:"filterable"`
	MultiSort  bool        `yaml:"multiSort"`
	Paging     bool        `yaml:"paging"`
	PageSize   int         `yaml:"pageSize"`
	PageSizes  []int       `yaml:"pageSizes"`
	Pinned     int         `yaml:"pinned"`
	MinRows    int         `yaml:"minRows"`
	ShowCount  bool        `yaml:"showResultCount"`
}

// ColumnDef describes one column. Kind is one of text, richtext, color,
// date, number, money or relation.
type ColumnDef struct {
	Header       string `yaml:"header"`
	Kind         string `yaml:"kind"`
	Path         string `yaml:"path"`
	Filter       string `yaml:"filter"`
	Sortable     bool   `yaml:"sortable"`
	Sort         string `yaml:"sort"`
	Width        string `yaml:"width"`
	Resizable    bool   `yaml:"resizable"`
	ShowTime     bool   `yaml:"showTime"`
	ShowSeconds  bool   `yaml:"showSeconds"`
	Multiple     bool   `yaml:"multiple"`
	Fuzzy        bool   `yaml:"fuzzy"`
	Related      []Row  `yaml:"related"`
	RelatedLabel string `yaml:"relatedLabel"`
	Placeholder  string `yaml:"placeholder"`
}

// Load reads and parses the definition at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a YAML (or JSON) document and checks its column kinds.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if len(d.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if _, err := d.Build(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Build turns the column definitions into table columns.
func (d *Definition) Build() ([]column.Column[Row], error) {
	out := make([]column.Column[Row], 0, len(d.Columns))
	for _, cd := range d.Columns {
		c, err := cd.build()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cd.Header, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// TableColumns is Build for definitions already checked by Parse.
func (d *Definition) TableColumns() []column.Column[Row] {
	cols, _ := d.Build()
	return cols
}

// Options returns table options carrying the definition's columns, rows and
// flags. Callbacks and formatting are left to the caller.
func (d *Definition) Options() table.Options[Row] {
	return table.Options[Row]{
		Name:             d.Name,
		Columns:          d.TableColumns(),
		Data:             slices.Clone(d.Rows),
		Searchable:       d.Searchable,
		Filterable:       d.Filterable,
		MultiSort:        d.MultiSort,
		Paging:           d.Paging,
		DefaultPageSize:  d.PageSize,
		PageSizeOptions:  d.PageSizes,
		PinnedColumns:    d.Pinned,
		MinRows:          d.MinRows,
		ShowResultCount:  d.ShowCount,
		PluralEntityName: d.Plural,
	}
}

func parseMode(s string) (column.FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return column.FilterUnset, nil
	case "exact":
		return column.Exact, nil
	case "partial":
		return column.Partial, nil
	case "ranged", "range":
		return column.Ranged, nil
	case "min", "minimum":
		return column.Minimum, nil
	case "max", "maximum":
		return column.Maximum, nil
	}
	return column.FilterUnset, fmt.Errorf("%w %q", ErrUnknownFilter, s)
}

func parseDirection(s string) column.Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return column.Ascending
	case "desc", "descending":
		return column.Descending
	}
	return column.None
}

func (cd ColumnDef) header() column.Header[Row] {
	h := column.Header[Row]{
		Text:         cd.Header,
		Sortable:     cd.Sortable,
		DefaultSort:  parseDirection(cd.Sort),
		Resizable:    cd.Resizable,
		DefaultWidth: cd.Width,
	}
	if cd.Fuzzy && cd.Path != "" {
		h.SearchMatcher = search.FuzzyMatcher[Row](cd.Path, search.DefaultFuzzy)
	}
	return h
}

func (cd ColumnDef) build() (column.Column[Row], error) {
	kind := strings.ToLower(strings.TrimSpace(cd.Kind))
	var mode column.FilterMode
	if kind != "relation" {
		m, err := parseMode(cd.Filter)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	h := cd.header()
	switch kind {
	case "", "text":
		return &column.TextColumn[Row]{Header: h, Path: cd.Path, Filter: mode}, nil
	case "richtext", "html":
		return &column.RichTextColumn[Row]{Header: h, Path: cd.Path}, nil
	case "color":
		return &column.ColorColumn[Row]{Header: h, Path: cd.Path, Multiple: cd.Multiple}, nil
	case "date":
		return &column.DateColumn[Row]{Header: h, Path: cd.Path, ShowTime: cd.ShowTime, ShowSeconds: cd.ShowSeconds, Filter: mode}, nil
	case "number":
		return &column.NumericColumn[Row]{Header: h, Path: cd.Path, Filter: mode}, nil
	case "money":
		return &column.NumericColumn[Row]{Header: h, Path: cd.Path, Money: true, Filter: mode}, nil
	case "relation":
		return cd.relation(h)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, cd.Kind)
}

// relation builds a relational column over the inline related list. The
// entity's RelatedLabel is what is displayed, searched and filtered.
func (cd ColumnDef) relation(h column.Header[Row]) (column.Column[Row], error) {
	src := related.Source{List: make([]any, len(cd.Related))}
	for i, r := range cd.Related {
		src.List[i] = r
	}
	label := func(ent any) string {
		if ent == nil {
			return ""
		}
		if cd.RelatedLabel == "" {
			return cast.ToString(path.Get(ent, related.IDField))
		}
		return cast.ToString(path.Get(ent, cd.RelatedLabel))
	}
	if h.SearchMatcher == nil {
		h.SearchMatcher = func(_ Row, term string, ent any) bool {
			return strings.Contains(strings.ToLower(label(ent)), term)
		}
	}
	c := &column.RelationalColumn[Row]{
		Header:  h,
		Path:    cd.Path,
		Related: src,
		Render:  label,
	}
	switch strings.ToLower(strings.TrimSpace(cd.Filter)) {
	case "":
	case "dropdown":
		opts := make([]dropdown.Option, 0, len(cd.Related))
		for _, r := range cd.Related {
			opts = append(opts, dropdown.Option{Text: label(r), Value: r[related.IDField]})
		}
		c.Filter = &column.CustomFilter[Row]{
			Kind:        column.FilterDropdown,
			Placeholder: cd.Placeholder,
			Options:     opts,
			Multiple:    cd.Multiple,
			Match: func(value any, _ Row, ent any) bool {
				if ent == nil {
					return false
				}
				id := strings.ToLower(related.Key(path.Get(ent, related.IDField)))
				switch v := value.(type) {
				case []string, []any:
					return slices.ContainsFunc(cast.ToStringSlice(v), func(s string) bool {
						return strings.ToLower(s) == id
					})
				}
				return strings.ToLower(related.Key(value)) == id
			},
		}
	case "text", "partial":
		c.Filter = &column.CustomFilter[Row]{
			Kind:        column.FilterText,
			Placeholder: cd.Placeholder,
			Match: func(value any, _ Row, ent any) bool {
				return ent != nil && strings.Contains(strings.ToLower(label(ent)), cast.ToString(value))
			},
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFilter, cd.Filter)
	}
	return c, nil
}
