package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/xcross/internal/aggregate"
	"github.com/SeamusWaldron/xcross/internal/storage"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long:  `List runs recorded with --db, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(o)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := storage.NewRunRepository(db).List(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("%-36s  %-20s  %10s  %7s  %s", "ID", "STARTED", "DURATION", "WORKERS", "TOTAL")))
			for _, r := range runs {
				fmt.Fprintf(out, "%-36s  %-20s  %10s  %7d  %d\n",
					r.RunID,
					r.StartedAt.Format(time.RFC3339),
					r.Duration.Round(time.Second),
					r.Workers,
					r.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

func newShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a recorded distribution",
		Long:  `Print the distribution of a recorded run in the same format the computation prints it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(o)
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := storage.NewRunRepository(db).Get(args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}

			dist, err := aggregate.FromExact(run.Counts)
			if err != nil {
				return fmt.Errorf("run %s: %w", run.RunID, err)
			}
			_, err = dist.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
