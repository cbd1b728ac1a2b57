package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"chapsplit/internal/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal(os.Stdout) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printDryRunPlans(out io.Writer, summary pipeline.Summary) {
	paths := make([]string, 0, len(summary.Plans))
	for path := range summary.Plans {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		plan := summary.Plans[path]
		fmt.Fprintf(out, "%s (%d segment(s)):\n", path, len(plan))
		rows := make([][]string, 0, len(plan))
		for _, segment := range plan {
			rows = append(rows, []string{
				segment.Filename,
				fmt.Sprintf("%.3f", float64(segment.StartMS)/1000.0),
				fmt.Sprintf("%.3f", float64(segment.EndMS)/1000.0),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Start (s)", "End (s)"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
	}
}
