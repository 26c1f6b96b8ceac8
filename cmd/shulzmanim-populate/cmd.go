package main

import (
	"context"
	"fmt"
	"time"

	ptime "shulzmanim/internal/platform/time"
	sdom "shulzmanim/internal/services/shuls/domain"
	wdom "shulzmanim/internal/services/window/domain"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// runner is the slice of the scheduler the one-shot job commands use
type runner interface {
	Run(ctx context.Context, job wdom.Job) (wdom.Report, error)
}

// app is what the commands operate on once the store is open
type app struct {
	jobs  wdom.JobsPort
	dir   sdom.DirectoryPort
	sched runner
	now   func() time.Time
}

func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

type opener func(ctx context.Context, migrate bool) (*app, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "shulzmanim-populate",
		Short:        "Populate and maintain the stored zmanim window",
		SilenceUsage: true,
	}
	root.AddCommand(
		populateCmd(open),
		jobCmd(open, wdom.JobExtend, "Extend every active shul's window forward"),
		jobCmd(open, wdom.JobValidate, "Refill any active shul missing dates in its window"),
		jobCmd(open, wdom.JobCleanup, "Delete rows dated before each shul's local today"),
		recalcCmd(open),
		migrateCmd(open),
	)
	return root
}

func populateCmd(open opener) *cobra.Command {
	var (
		shulID string
		all    bool
		months int
	)
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Pre-calculate zmanim for one shul or all active shuls",
		Long: `Calculate [today, today + months*30] in each shul's timezone.
Existing rows are kept, so rerunning is safe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (shulID == "") == !all {
				return fmt.Errorf("specify exactly one of --shul or --all")
			}
			var id uuid.UUID
			if shulID != "" {
				var err error
				if id, err = uuid.Parse(shulID); err != nil {
					return fmt.Errorf("--shul: %w", err)
				}
			}

			ctx := cmd.Context()
			a, err := open(ctx, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !all {
				shul, err := a.jobs.Shul(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Calculating %d months of zmanim for %s...\n", months, shul.Name)
				res, err := a.jobs.Populate(ctx, shul, months, a.clock())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created %d records for %s (%d dates skipped)\n", res.Inserted, shul.Name, len(res.Failed))
				return nil
			}

			shuls, err := a.dir.ListActive(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Calculating %d months of zmanim for %d shuls...\n", months, len(shuls))
			failed := 0
			for i, shul := range shuls {
				fmt.Fprintf(out, "[%d/%d] %s: ", i+1, len(shuls), shul.Name)
				res, err := a.jobs.Populate(ctx, shul, months, a.clock())
				if err != nil {
					failed++
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "created %d records\n", res.Inserted)
			}
			fmt.Fprintf(out, "Completed %d shuls, %d failed\n", len(shuls), failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d shuls failed", failed, len(shuls))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&shulID, "shul", "", "shul id")
	cmd.Flags().BoolVar(&all, "all", false, "every active shul")
	cmd.Flags().IntVar(&months, "months", wdom.DefaultPopulateMonths, "months to calculate")
	return cmd
}

func jobCmd(open opener, job wdom.Job, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(job),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			rep, err := a.sched.Run(cmd.Context(), job)
			if err != nil {
				return err
			}
			printReport(cmd, rep)
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, rep wdom.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d shuls, %d changed, %d inserted, %d deleted, %d dates skipped\n",
		rep.Job, rep.Shuls, rep.Changed, rep.Inserted, rep.Deleted, rep.DateFailures)
	for _, f := range rep.Failed {
		fmt.Fprintf(out, "  %s (%s): %s\n", f.Name, f.ShulID, f.Error)
	}
}

func recalcCmd(open opener) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "recalc <shul-id>",
		Short: "Delete and recalculate a shul's zmanim from a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("shul id: %w", err)
			}
			ctx := cmd.Context()
			a, err := open(ctx, false)
			if err != nil {
				return err
			}
			shul, err := a.jobs.Shul(ctx, id)
			if err != nil {
				return err
			}

			var d time.Time
			if from != "" {
				if d, err = ptime.Parse(from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			} else {
				tz, err := shul.Location()
				if err != nil {
					return err
				}
				d = ptime.Today(a.clock(), tz)
			}

			res, err := a.jobs.RecalculateFrom(ctx, shul, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recalculated %s from %s: %d records (%d dates skipped)\n",
				shul.Name, ptime.Format(d), res.Inserted, len(res.Failed))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date YYYY-MM-DD (default: the shul's today)")
	return cmd
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := open(cmd.Context(), true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
