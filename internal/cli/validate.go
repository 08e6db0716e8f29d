package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"datatable/internal/core/debounce"
)

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "Check table files without opening them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				tb, def, err := openTable(path, e.cfg, debounce.ImmediateScheduler{})
				if err != nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					continue
				}
				tb.Close()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d columns, %d rows)\n", path, len(def.Columns), len(def.Rows))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}
