package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/xref-functions/internal/config"
	"github.com/mvp-joe/xref-functions/internal/indexer"
	"github.com/mvp-joe/xref-functions/internal/report"
	"github.com/mvp-joe/xref-functions/internal/storage"
)

// usageText is printed to stdout when no file arguments are given.
const usageText = "Usage: xref_functions <file1.cpp> [file2.cpp ...]"

// ErrUsage is returned when the command is invoked without file arguments.
// The usage text has already been printed when it is returned.
var ErrUsage = errors.New("no input files")

// options holds the flag values of one command invocation.
type options struct {
	cfgFile  string
	verbose  bool
	format   string
	exclude  []string
	encoding string
	database string
	watch    bool
	progress bool
}

// NewRootCmd builds the xref_functions command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "xref_functions <file1> [file2 ...]",
		Short: "Cross-reference function definitions in C/C++ sources",
		Long: `xref_functions scans C/C++ source and header files line by line, picks out
lines that look like function definition headers, and prints a table of
function name, file and line number sorted by name.

The matcher is a heuristic: multi-line signatures are not detected, lines
ending in ");" are treated as declarations, and control statements with the
same shape as a definition are reported too.

Examples:
  # Cross-reference a set of files
  xref_functions src/*.cpp include/*.h

  # Markdown output, skipping generated code
  xref_functions --format markdown --exclude "**/gen_*" src/*.cc

  # Keep the table up to date while editing
  xref_functions --watch src/*.cpp

  # Also store the records in SQLite
  xref_functions --db xref.db src/*.cpp
`,
		Version:       versionString(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXref(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is .xref/config.yml in the working directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output on stderr")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: table, markdown or json")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "glob pattern of arguments to skip (repeatable)")
	flags.StringVar(&opts.encoding, "encoding", "", "text encoding of the input files (default utf-8)")
	flags.StringVar(&opts.database, "db", "", "also write the records to this SQLite database")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "reprint the report whenever an input file changes")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrUsage) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func runXref(cmd *cobra.Command, opts *options, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, usageText)
		return ErrUsage
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	progress := NewCLIProgressReporter(out, cmd.ErrOrStderr(), opts.progress, opts.verbose)
	idx, err := indexer.NewWithProgress(cfg.ToIndexerConfig(opts.watch), progress)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer idx.Close()

	result, err := idx.Index(ctx, args)
	if err != nil {
		return err
	}

	render := newRenderer(out, cfg, opts.verbose)
	if err := render(result); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}
	return runWatch(ctx, watchParams{
		indexer:  idx,
		args:     args,
		files:    result.Accepted,
		debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		out:      out,
		render:   render,
		verbose:  opts.verbose,
	})
}

// loadConfig reads the config file and environment, then applies flags that
// were set explicitly on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var loader config.Loader
	if opts.cfgFile != "" {
		loader = config.NewFileLoader(opts.cfgFile)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		loader = config.NewLoader(wd)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.verbose && loader.ConfigFileUsed() != "" {
		log.Println("Using config file:", loader.ConfigFileUsed())
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("exclude") {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, opts.exclude...)
	}
	if flags.Changed("encoding") {
		cfg.Scan.Encoding = opts.encoding
	}
	if flags.Changed("db") {
		cfg.Export.Database = opts.database
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newRenderer returns a function printing a result in the configured format
// and exporting it when a database is configured.
func newRenderer(out io.Writer, cfg *config.Config, verbose bool) func(*indexer.Result) error {
	return func(result *indexer.Result) error {
		w, err := report.NewWriter(cfg.Report.Format, out, cfg.Layout())
		if err != nil {
			return err
		}
		if err := w.Write(result.Matches); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if cfg.Export.Database == "" {
			return nil
		}
		runID, err := exportResult(cfg.Export.Database, result)
		if err != nil {
			return err
		}
		if verbose {
			log.Printf("Exported %d records to %s (run %s)", len(result.Matches), cfg.Export.Database, runID)
		}
		return nil
	}
}

func exportResult(path string, result *indexer.Result) (string, error) {
	db, err := storage.OpenExportDB(path)
	if err != nil {
		return "", fmt.Errorf("failed to open export database: %w", err)
	}
	defer db.Close()

	runID, err := storage.NewFunctionWriter(db).WriteRun(result)
	if err != nil {
		return "", fmt.Errorf("failed to export records: %w", err)
	}
	return runID, nil
}
