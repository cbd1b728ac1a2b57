package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent processing outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store == nil {
				return errors.New("history is disabled in the configuration")
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No processing history yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.ErrorText
				if detail == "" && entry.ChapterCount > 0 {
					detail = fmt.Sprintf("%d chapter(s)", entry.ChapterCount)
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(entry.SourcePath),
					entry.Outcome.String(),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Recording", "Outcome", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	return cmd
}
