package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chapsplit/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missingRequired := 0
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						missingRequired++
					}
				}
				required := "required"
				if status.Optional {
					required = "optional"
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, status.Command, required, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Need", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if missingRequired > 0 {
				return fmt.Errorf("%d required tool(s) missing", missingRequired)
			}
			return nil
		},
	}
}
