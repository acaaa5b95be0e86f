// Package cellar provides a fluent API for reading tabular data from
// CSV, TSV, XLSX, and HTML sources into a sparse cell grid, and for
// writing grids back out as CSV.
//
// Basic usage:
//
//	table, warnings, err := cellar.Open("data.csv").Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cellar.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := cellar.Open("legacy.csv").
//	    Delimiter(';').
//	    Encoding("windows-1251").
//	    DetectBOM().
//	    Text()
//
// Converting a workbook sheet to CSV:
//
//	_, err := cellar.Open("report.xlsx").SheetName("Q3").Save("q3.csv")
//
// For advanced use cases, the lower-level csvdoc, grid, xlsx, and
// htmltab packages are also available.
package cellar

import (
	"io"

	"github.com/tsawler/cellar/csvdoc"
	"github.com/tsawler/cellar/format"
	"github.com/tsawler/cellar/grid"
	"github.com/tsawler/cellar/textenc"
)

// Open prepares the named file for conversion and returns a Converter
// for fluent configuration. The format is detected from the file
// extension, then from the content when the extension is inconclusive;
// unrecognized content is treated as CSV.
//
// Example:
//
//	table, warnings, err := cellar.Open("data.csv").Table()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
		registry: csvdoc.NewRegistry(),
		resolver: newResolver(),
	}
}

// FromReader creates a Converter reading from r. The format is
// detected from the content; unrecognized content is treated as CSV.
// The source is consumed by the first terminal operation.
//
// Example:
//
//	table, warnings, err := cellar.FromReader(resp.Body).Table()
func FromReader(r io.Reader) *Converter {
	return &Converter{
		source:   r,
		options:  defaultOptions(),
		registry: csvdoc.NewRegistry(),
		resolver: newResolver(),
	}
}

// FromTable creates a Converter over an existing table, for serializing
// it with the output-side configuration.
//
// Example:
//
//	text, _, err := cellar.FromTable(table).Dialect("unix").Text()
func FromTable(table *grid.Table) *Converter {
	return &Converter{
		table:    table,
		options:  defaultOptions(),
		registry: csvdoc.NewRegistry(),
		resolver: newResolver(),
	}
}

// newResolver builds the converter's encoding resolver with the default
// cache size, which cannot fail.
func newResolver() *textenc.Resolver {
	r, _ := textenc.NewResolver(0)
	return r
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	coord := cellar.Must(grid.ParseAddress("B3"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	rows := cellar.MustTable(cellar.Open("data.csv").Rows())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
