// Package cli implements the command-line interface for xcross.
//
// The root command runs the full computation and prints the distribution on
// stdout. Logs, progress and the summary go to stderr so that stdout can be
// piped. The history and show subcommands read runs recorded with --db.
package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/xcross/internal/pipeline"
	"github.com/SeamusWaldron/xcross/internal/storage"
)

const version = "0.1.0"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	workers     int
	verbose     bool
	quiet       bool
	tui         bool
	dbPath      string
	metricsFile string
}

// Execute runs the xcross CLI with ctx and returns an error if the command
// fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "xcross",
		Short: "Exact distance distribution of cross + one F2L pair",
		Long: `xcross counts, for every configuration of the cross edges and the four
first-two-layers pairs of a 3x3x3 cube, the optimal half-turn-metric distance
to a solved cross with at least one solved pair, and prints the histogram.

The distribution goes to stdout as "distance<TAB>count" lines followed by
"total<TAB>N". Logs and progress go to stderr.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if o.verbose {
				level = charmlog.DebugLevel
			}
			if o.quiet {
				level = charmlog.ErrorLevel
			}
			var w io.Writer = cmd.ErrOrStderr()
			if o.tui {
				w = io.Discard
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, o)
		},
	}

	f := root.Flags()
	f.IntVarP(&o.workers, "workers", "w", runtime.GOMAXPROCS(0), "number of worker goroutines")
	f.BoolVar(&o.tui, "tui", false, "show a progress view on stderr")
	f.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	pf := root.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "only log errors")
	pf.StringVar(&o.dbPath, "db", "", "run history database (history and show default to ~/.xcross/runs.db)")

	root.AddCommand(newHistoryCmd(o))
	root.AddCommand(newShowCmd(o))

	return root
}

func runCompute(cmd *cobra.Command, o *rootOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var hooks pipeline.MultiHooks
	var metrics *metricsHooks
	if o.metricsFile != "" {
		metrics = newMetricsHooks()
		hooks = append(hooks, metrics)
	}

	runner := pipeline.NewRunner(logger, hooks, o.workers)
	logger.Info("starting", "workers", runner.Workers, "version", version)

	var res *pipeline.Result
	var err error
	if o.tui {
		res, err = runWithProgress(ctx, runner, cmd.ErrOrStderr())
	} else {
		res, err = runner.Execute(ctx)
	}
	if err != nil {
		return err
	}

	if _, err := res.Distribution.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write distribution: %w", err)
	}

	if metrics != nil {
		metrics.observeResult(res)
		if err := metrics.write(o.metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Debug("wrote metrics", "path", o.metricsFile)
	}

	if o.dbPath != "" {
		id, err := recordRun(o.dbPath, res)
		if err != nil {
			return err
		}
		logger.Info("recorded run", "id", id, "db", o.dbPath)
	}

	if !o.quiet {
		printSummary(cmd.ErrOrStderr(), res)
	}
	return nil
}

// openDB opens the database from --db, or the default path.
func openDB(o *rootOptions) (*storage.DB, error) {
	path := o.dbPath
	if path == "" {
		var err error
		if path, err = storage.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}

func recordRun(path string, res *pipeline.Result) (string, error) {
	db, err := storage.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return storage.NewRunRepository(db).Create(runRecord(res))
}

func runRecord(res *pipeline.Result) storage.Run {
	return storage.Run{
		StartedAt:  res.Started,
		Duration:   res.Stats.TotalTime,
		Workers:    res.Workers,
		DiameterBL: res.Stats.DiameterBL,
		DiameterBR: res.Stats.DiameterBR,
		CrossLo:    res.CrossLo,
		CrossHi:    res.CrossHi,
		Total:      res.Distribution.Total(),
		AppVersion: version,
		Counts:     res.Distribution.Counts(),
	}
}
