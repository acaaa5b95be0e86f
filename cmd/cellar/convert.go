package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/cellar"
)

var convertFlags struct {
	sourceFlags
	output      string
	outEncoding string
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a tabular file to CSV",
	Long: `Convert reads a CSV, TSV, XLSX, or HTML file and writes it out as CSV.
Output goes to stdout unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		convertFlags.newlineSet = cmd.Flags().Changed("newline")

		c, err := convertFlags.converter(args[0])
		if err != nil {
			return err
		}

		if convertFlags.outEncoding != "" && convertFlags.outEncoding != convertFlags.encoding {
			// Different output encoding: load with the input encoding,
			// then re-chain over the table for the write side.
			table, warnings, err := c.Table()
			if err != nil {
				return err
			}
			out := cellar.FromTable(table).Encoding(convertFlags.outEncoding)
			out, err = applyWireFlags(out, cmd)
			if err != nil {
				return err
			}
			if convertFlags.output != "" {
				_, err = out.Save(convertFlags.output)
			} else {
				_, err = out.Write(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}
			reportWarnings(warnings)
			return nil
		}

		var warnings []cellar.Warning
		if convertFlags.output != "" {
			warnings, err = c.Save(convertFlags.output)
		} else {
			warnings, err = c.Write(cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}

		reportWarnings(warnings)
		return nil
	},
}

// applyWireFlags copies the delimiter, escape, newline, and dialect
// flags onto a write-side chain.
func applyWireFlags(c *cellar.Converter, cmd *cobra.Command) (*cellar.Converter, error) {
	f := &convertFlags.sourceFlags
	if f.dialect != "" {
		c = c.Dialect(f.dialect)
	}
	if f.delimiter != "" {
		r, err := singleRune("delimiter", f.delimiter)
		if err != nil {
			return nil, err
		}
		c = c.Delimiter(r)
	}
	if f.escape != "" {
		r, err := singleRune("escape", f.escape)
		if err != nil {
			return nil, err
		}
		c = c.Escape(r)
	}
	if cmd.Flags().Changed("newline") {
		c = c.Newline(unescape(f.newline))
	}
	if f.cellNewline != "" {
		c = c.CellNewline(unescape(f.cellNewline))
	}
	return c, nil
}

func reportWarnings(warnings []cellar.Warning) {
	if len(warnings) > 0 {
		fmt.Fprintln(os.Stderr, "warning:", cellar.FormatWarnings(warnings))
	}
}

func init() {
	convertFlags.register(convertCmd)
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "write to this file instead of stdout")
	convertCmd.Flags().StringVar(&convertFlags.outEncoding, "output-encoding", "", "character encoding for the output (default: same as --encoding)")
}
