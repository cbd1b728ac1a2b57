package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"chapsplit/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process every recording in the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lockPath := filepath.Join(cfg.Paths.LogDir, "chapsplit.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another chapsplit run is already processing these directories")
			}
			defer func() { _ = lock.Unlock() }()

			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			runner := pipeline.NewRunner(cfg, logger, store)
			summary, err := runner.Process(cmd.Context(), pipeline.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				printDryRunPlans(out, summary)
			}
			fmt.Fprintf(out, "Scanned %d recording(s): %d done, %d without chapters, %d skipped, %d failed\n",
				summary.Scanned, summary.Done, summary.NoChapters, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d recording(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan cuts without exporting or archiving")
	return cmd
}
