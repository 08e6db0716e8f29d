package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"datatable/internal/core/column"
	"datatable/internal/core/debounce"
	"datatable/internal/core/table"
	"datatable/internal/definition"
	"datatable/internal/ui"
)

type renderParams struct {
	search  string
	sorts   []string
	filters []string
	page    int
	width   int
}

func newRenderCommand(e *env) *cobra.Command {
	var p renderParams
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print one page of a table file",
		Long: `Print one page of a table file.

Sorts are given as "Header" or "Header:desc" and applied in order. Filters
are given as "Header=value" using the same syntax as the interactive filter
input, e.g. "Total=10..50" or "Status=open, shipped".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.render(args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&p.search, "search", "s", "", "search term")
	cmd.Flags().StringArrayVar(&p.sorts, "sort", nil, "sort by column, repeatable")
	cmd.Flags().StringArrayVarP(&p.filters, "filter", "f", nil, "filter a column, repeatable")
	cmd.Flags().IntVar(&p.page, "page", 1, "page to print, starting at 1")
	cmd.Flags().IntVar(&p.width, "width", 0, "maximum width in cells, 0 for natural width")
	return cmd
}

func (e *env) render(path string, p renderParams) (string, error) {
	tb, _, err := openTable(path, e.cfg, debounce.ImmediateScheduler{})
	if err != nil {
		return "", err
	}
	defer tb.Close()

	if p.search != "" {
		tb.SetSearchTerm(p.search)
	}
	for _, f := range p.filters {
		header, input, ok := strings.Cut(f, "=")
		if !ok {
			return "", fmt.Errorf("filter %q: want Header=value", f)
		}
		c, err := columnNamed(tb.View(), header)
		if err != nil {
			return "", err
		}
		if err := ui.ApplyFilterInput(tb, c.Index, c.Column, input); err != nil {
			return "", fmt.Errorf("filter %q: %w", f, err)
		}
	}
	for _, s := range p.sorts {
		if err := applySort(tb, s); err != nil {
			return "", err
		}
	}
	if p.page > 1 && !tb.SetPage(p.page-1) {
		return "", fmt.Errorf("page %d does not exist", p.page)
	}
	return ui.Render(tb.View(), ui.RenderOptions{Width: p.width, CursorRow: -1, CursorCol: -1}), nil
}

// applySort toggles the column until it sorts in the requested direction.
func applySort(tb *table.Table[definition.Row], spec string) error {
	header, dir, _ := strings.Cut(spec, ":")
	want := column.Ascending
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		want = column.Descending
	default:
		return fmt.Errorf("sort %q: direction must be asc or desc", spec)
	}
	c, err := columnNamed(tb.View(), header)
	if err != nil {
		return err
	}
	// the toggle cycle has three states
	for i := 0; i < 3; i++ {
		if c.Sort == want {
			return nil
		}
		if !tb.ToggleSort(c.Index) {
			return fmt.Errorf("column %q is not sortable", c.Header)
		}
		if c, err = columnNamed(tb.View(), header); err != nil {
			return err
		}
	}
	return fmt.Errorf("sort %q: direction not reachable", spec)
}
