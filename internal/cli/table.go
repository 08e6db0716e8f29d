package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"datatable/internal/config"
	"datatable/internal/core/debounce"
	"datatable/internal/core/format"
	"datatable/internal/core/table"
	"datatable/internal/definition"
)

// openTable loads the definition at path and builds a table using cfg for
// everything the file leaves unset.
func openTable(path string, cfg config.Config, sched debounce.Scheduler) (*table.Table[definition.Row], *definition.Definition, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts, err := tableOptions(def, cfg)
	if err != nil {
		return nil, nil, err
	}
	opts.Scheduler = sched
	tb, err := table.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return tb, def, nil
}

func tableOptions(def *definition.Definition, cfg config.Config) (table.Options[definition.Row], error) {
	opts := def.Options()
	if opts.DefaultPageSize == 0 {
		opts.DefaultPageSize = cfg.PageSize
	}
	if len(opts.PageSizeOptions) == 0 {
		opts.PageSizeOptions = cfg.PageSizes
	}
	opts.Debounce = cfg.Debounce

	f := format.DefaultOptions()
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return opts, fmt.Errorf("locale %q: %w", cfg.Locale, err)
		}
		f.Locale = tag
	}
	if cfg.DateLayout != "" {
		f.Layout = cfg.DateLayout
	}
	if cfg.MoneySymbol != "" {
		f.Currency = cfg.MoneySymbol
	}
	opts.Format = f
	return opts, nil
}

// columnNamed finds a displayed column by header, ignoring case.
func columnNamed(s table.Snapshot[definition.Row], header string) (table.ColumnView[definition.Row], error) {
	header = strings.TrimSpace(header)
	for _, c := range s.Columns {
		if strings.EqualFold(c.Header, header) {
			return c, nil
		}
	}
	return table.ColumnView[definition.Row]{}, fmt.Errorf("no column named %q", header)
}
