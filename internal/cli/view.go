package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"datatable/internal/core/debounce"
	"datatable/internal/infra/logx"
	"datatable/internal/ui"
)

func newViewCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Open a table file interactively",
		Long: `Open a table file interactively.

Set DEBUG to any value to write bubbletea's own log to debug.log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.view(args[0])
		},
	}
}

func (e *env) view(path string) error {
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return err
		}
		e.closers = append(e.closers, f)
	}

	sched := debounce.NewTeaScheduler()
	tb, def, err := openTable(path, e.cfg, sched)
	if err != nil {
		return err
	}
	defer tb.Close()

	title := def.Name
	if title == "" {
		title = path
	}
	logx.Infow("opening table", logx.Fields{"file": path, "rows": len(def.Rows), "columns": len(def.Columns)})
	if _, err := tea.NewProgram(ui.New(tb, sched, title), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
