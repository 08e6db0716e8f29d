package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"datatable/internal/config"
	"datatable/internal/infra/logx"
)

type rootParams struct {
	configPath string
	logFile    string
	logLevel   string
	debounce   time.Duration
	pageSize   int
	locale     string
	verbose    bool
}

// env is the state shared by the subcommands once the root has resolved
// configuration and logging.
type env struct {
	params  rootParams
	cfg     config.Config
	closers []io.Closer
}

func (e *env) close() {
	if len(e.closers) > 0 {
		logx.SetOutput(io.Discard)
		log.SetOutput(os.Stderr)
	}
	for _, c := range e.closers {
		_ = c.Close()
	}
	e.closers = nil
}

// NewRootCommand builds the datatable command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "datatable",
		Short: "Browse tabular data files in the terminal",
		Long: `Browse tabular data files in the terminal.

A table file is a YAML (or JSON) document that lists the columns of the
table and its rows. Defaults such as the page size and debounce delay come
from ~/.datatablerc and DATATABLE_* environment variables; flags win over both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			e.close()
		},
	}

	addRootFlags(root.PersistentFlags(), &e.params)
	root.AddCommand(newViewCommand(e), newRenderCommand(e), newValidateCommand(e))
	return root
}

func addRootFlags(fs *pflag.FlagSet, p *rootParams) {
	fs.StringVar(&p.configPath, "config", config.DefaultPath(), "path of the defaults file")
	fs.StringVar(&p.logFile, "log-file", "", "append JSON log lines to this file")
	fs.StringVar(&p.logLevel, "log-level", "", "minimum log level (debug, info, warn, error)")
	fs.DurationVar(&p.debounce, "debounce", 0, "delay before search and filter input is applied")
	fs.IntVar(&p.pageSize, "page-size", 0, "rows per page for paged tables")
	fs.StringVar(&p.locale, "locale", "", "locale for number and money cells, e.g. de-DE")
	fs.BoolVarP(&p.verbose, "verbose", "v", false, "log full field values")
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.params.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = e.params.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = e.params.logLevel
	}
	if flags.Changed("debounce") {
		cfg.Debounce = e.params.debounce
	}
	if flags.Changed("page-size") {
		if e.params.pageSize <= 0 {
			return fmt.Errorf("--page-size must be positive, got %d", e.params.pageSize)
		}
		cfg.PageSize = e.params.pageSize
	}
	if flags.Changed("locale") {
		cfg.Locale = e.params.locale
	}

	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logx.SetMinLevel(level)
	logx.SetVerbose(e.params.verbose)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logx.SetOutput(f)
		log.SetFlags(0)
		log.SetOutput(logx.StdlogWriter(logx.LevelInfo, f))
		e.closers = append(e.closers, f)
	}
	e.cfg = cfg
	logx.Debugw("configuration loaded", logx.Fields{"path": e.params.configPath, "page_size": cfg.PageSize, "debounce": cfg.Debounce})
	return nil
}
