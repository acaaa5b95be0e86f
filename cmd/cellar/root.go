package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/cellar"
)

var rootCmd = &cobra.Command{
	Use:           "cellar",
	Short:         "Convert and inspect tabular data",
	Long:          "cellar reads CSV, TSV, XLSX, and HTML tables into a sparse grid and writes them back out as CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addrCmd)
	rootCmd.AddCommand(versionCmd)
}

// sourceFlags is the input configuration shared by convert and show.
type sourceFlags struct {
	delimiter   string
	escape      string
	newline     string
	newlineSet  bool
	cellNewline string
	dialect     string
	encoding    string
	detectBOM   bool
	sheet       int
	sheetName   string
	tableIndex  int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.delimiter, "delimiter", "d", "", "cell delimiter character")
	flags.StringVarP(&f.escape, "escape", "e", "", "escape character")
	flags.StringVar(&f.newline, "newline", "", `row terminator, e.g. '\n' or '\r\n' (default: permissive read, CRLF write)`)
	flags.StringVar(&f.cellNewline, "cell-newline", "", "sequence representing a line break inside a cell")
	flags.StringVar(&f.dialect, "dialect", "", "named dialect: excel, excel-tab, unix")
	flags.StringVar(&f.encoding, "encoding", "", "character encoding of the input, e.g. latin1, windows-1251")
	flags.BoolVar(&f.detectBOM, "bom", false, "let a leading byte-order mark override the encoding")
	flags.IntVar(&f.sheet, "sheet", -1, "XLSX sheet index (0-based)")
	flags.StringVar(&f.sheetName, "sheet-name", "", "XLSX sheet name")
	flags.IntVar(&f.tableIndex, "table", 0, "HTML table index in document order (0-based)")
}

// converter applies the flags to a fresh chain for the given file.
func (f *sourceFlags) converter(path string) (*cellar.Converter, error) {
	c := cellar.Open(path)

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
	if f.newlineSet {
		c = c.Newline(unescape(f.newline))
	}
	if f.cellNewline != "" {
		c = c.CellNewline(unescape(f.cellNewline))
	}
	if f.encoding != "" {
		c = c.Encoding(f.encoding)
	}
	if f.detectBOM {
		c = c.DetectBOM()
	}
	if f.sheetName != "" {
		c = c.SheetName(f.sheetName)
	} else if f.sheet >= 0 {
		c = c.Sheet(f.sheet)
	}
	if f.tableIndex > 0 {
		c = c.TableIndex(f.tableIndex)
	}

	return c, nil
}

// singleRune interprets a flag value as one character, after unescaping
// sequences like \t.
func singleRune(name, value string) (rune, error) {
	runes := []rune(unescape(value))
	if len(runes) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", name, value)
	}
	return runes[0], nil
}

// unescape expands the backslash sequences \t, \r, \n, and \\ so users
// can spell control characters on the command line.
func unescape(s string) string {
	replacer := strings.NewReplacer(
		`\t`, "\t",
		`\r`, "\r",
		`\n`, "\n",
		`\\`, `\`,
	)
	return replacer.Replace(s)
}
