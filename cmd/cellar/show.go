package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var showFlags struct {
	sourceFlags
	maxRows int
	maxCols int
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a tabular file in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showFlags.newlineSet = cmd.Flags().Changed("newline")

		c, err := showFlags.converter(args[0])
		if err != nil {
			return err
		}

		table, warnings, err := c.Table()
		if err != nil {
			return err
		}
		reportWarnings(warnings)

		rows := table.Rows()
		truncatedRows := false
		if showFlags.maxRows > 0 && len(rows) > showFlags.maxRows {
			rows = rows[:showFlags.maxRows]
			truncatedRows = true
		}
		truncatedCols := false
		if showFlags.maxCols > 0 {
			for i, row := range rows {
				if len(row) > showFlags.maxCols {
					rows[i] = row[:showFlags.maxCols]
					truncatedCols = true
				}
			}
		}

		tw := tablewriter.NewWriter(cmd.OutOrStdout())
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		if len(rows) > 0 {
			tw.SetHeader(rows[0])
			tw.AppendBulk(rows[1:])
		}
		tw.Render()

		fmt.Fprintf(cmd.OutOrStdout(), "%d rows x %d columns, %d populated cells\n",
			table.RowCount(), table.ColCount(), table.Len())
		if truncatedRows || truncatedCols {
			fmt.Fprintln(cmd.OutOrStdout(), "(output truncated)")
		}
		return nil
	},
}

func init() {
	showFlags.register(showCmd)
	showCmd.Flags().IntVar(&showFlags.maxRows, "max-rows", 50, "maximum rows to render, 0 for all")
	showCmd.Flags().IntVar(&showFlags.maxCols, "max-cols", 0, "maximum columns to render, 0 for all")
}
