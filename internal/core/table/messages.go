package table

import "fmt"

func (m Messages) noData(plural string) string {
	if m.NoData != nil {
		return m.NoData(plural)
	}
	if plural == "" {
		plural = "items"
	}
	return fmt.Sprintf("No %s to display", plural)
}

func (m Messages) noFilterResults() string {
	if m.NoFilterResults != "" {
		return m.NoFilterResults
	}
	return "No results are available for the selected filters."
}

func (m Messages) noSearchResults() string {
	if m.NoSearchResults != "" {
		return m.NoSearchResults
	}
	return "No results are available for the given search term."
}

func (m Messages) xResults(x int, plural string) string {
	if m.XResults != nil {
		return m.XResults(x, plural)
	}
	if plural == "" {
		plural = "results"
	}
	return fmt.Sprintf("%d %s", x, plural)
}

func (m Messages) filteredFrom(from int, plural string) string {
	if m.FilteredFrom != nil {
		return m.FilteredFrom(from, plural)
	}
	return fmt.Sprintf("(Filtered from %d)", from)
}

func (m Messages) showingXOfY(x, y int, plural string) string {
	if m.ShowingXOfY != nil {
		return m.ShowingXOfY(x, y, plural)
	}
	if plural == "" {
		plural = "results"
	}
	return fmt.Sprintf("Showing %d out of %d %s", x, y, plural)
}
