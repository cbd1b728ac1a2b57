package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chapsplit/internal/pipeline"
	"chapsplit/internal/srt"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters <file>",
		Short: "Detect and print the chapter table for one recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, logger, nil)
			detection, err := runner.DetectChapters(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			display := cases.Title(language.English).String(detection.Recording.Stem)
			fmt.Fprintf(out, "%s (%s, %d chapter(s), source: %s)\n",
				display, srt.FormatTimestamp(detection.Duration), len(detection.Chapters), detection.Source)
			if len(detection.Chapters) == 0 {
				fmt.Fprintln(out, "No chapter markers detected")
				return nil
			}

			rows := make([][]string, 0, len(detection.Chapters))
			for _, chapter := range detection.Chapters {
				rows = append(rows, []string{
					chapter.Label,
					fmt.Sprintf("%d", chapter.Number),
					srt.FormatTimestamp(chapter.Start),
					chapter.Title,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Label", "Number", "Start", "Title"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}
