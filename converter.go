package cellar

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/cellar/csvdoc"
	"github.com/tsawler/cellar/format"
	"github.com/tsawler/cellar/grid"
	"github.com/tsawler/cellar/htmltab"
	"github.com/tsawler/cellar/textenc"
	"github.com/tsawler/cellar/xlsx"
)

// Converter provides a fluent interface for reading tabular data from
// CSV, TSV, XLSX, and HTML sources and writing it back out as CSV.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source (exactly one is used)
	filename string
	source   io.Reader
	table    *grid.Table

	format format.Format

	options ConvertOptions

	registry *csvdoc.Registry
	resolver *textenc.Resolver

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Converter with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		table:    c.table,
		format:   c.format,
		options:  c.options.clone(),
		registry: c.registry,
		resolver: c.resolver,
		err:      c.err,
		warnings: append([]Warning(nil), c.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Delimiter sets the character that separates cells within a row.
//
// Example:
//
//	table, _, err := cellar.Open("data.csv").Delimiter(';').Table()
func (c *Converter) Delimiter(d rune) *Converter {
	nc := c.clone()
	nc.options.delimiter = d
	return nc
}

// Escape sets the character that opens and closes an escaped region.
//
// Example:
//
//	table, _, err := cellar.Open("data.csv").Escape('\'').Table()
func (c *Converter) Escape(e rune) *Converter {
	nc := c.clone()
	nc.options.escape = e
	return nc
}

// Newline sets the row terminator sequence. The empty string selects
// permissive decoding, where \r, \n, \r\n and \n\r each end a row; on
// encode the terminator then defaults to "\r\n".
//
// Example:
//
//	text, _, err := cellar.Open("data.csv").Newline("\n").Text()
func (c *Converter) Newline(nl string) *Converter {
	nc := c.clone()
	nc.options.newline = nl
	nc.options.newlineSet = true
	return nc
}

// CellNewline sets the sequence that represents a line break inside
// decoded cell values.
func (c *Converter) CellNewline(nl string) *Converter {
	nc := c.clone()
	nc.options.cellNewline = nl
	return nc
}

// Dialect selects a named wire configuration from the converter's
// dialect registry. Explicit Delimiter, Escape, Newline, and
// CellNewline calls override the dialect's fields.
//
// Example:
//
//	text, _, err := cellar.Open("data.tsv").Dialect("excel-tab").Text()
func (c *Converter) Dialect(name string) *Converter {
	nc := c.clone()
	nc.options.dialect = name
	return nc
}

// RegisterDialect adds a dialect to the converter's registry so later
// Dialect calls in the chain can select it.
//
// Example:
//
//	text, _, err := cellar.Open("data.txt").
//	    RegisterDialect(csvdoc.Dialect{Name: "pipes", Delimiter: '|', Escape: '"'}).
//	    Dialect("pipes").
//	    Text()
func (c *Converter) RegisterDialect(d csvdoc.Dialect) *Converter {
	nc := c.clone()
	if err := nc.registry.Register(d); err != nil && nc.err == nil {
		nc.err = err
	}
	return nc
}

// Encoding sets the character encoding used when reading byte-level
// input and writing output. Empty means UTF-8. Names follow the WHATWG
// encoding labels, e.g. "latin1", "windows-1251", "shift_jis".
//
// Example:
//
//	table, _, err := cellar.Open("legacy.csv").Encoding("windows-1251").Table()
func (c *Converter) Encoding(name string) *Converter {
	nc := c.clone()
	nc.options.encoding = name
	return nc
}

// DetectBOM lets a leading byte-order mark in the input override the
// configured encoding.
func (c *Converter) DetectBOM() *Converter {
	nc := c.clone()
	nc.options.detectBOM = true
	return nc
}

// Sheet selects an XLSX worksheet by position (0-indexed). Ignored for
// non-XLSX input.
func (c *Converter) Sheet(index int) *Converter {
	nc := c.clone()
	nc.options.sheetIndex = index
	return nc
}

// SheetName selects an XLSX worksheet by name. Wins over Sheet when
// both are set.
func (c *Converter) SheetName(name string) *Converter {
	nc := c.clone()
	nc.options.sheetName = name
	return nc
}

// TableIndex selects which table of an HTML document to convert, in
// document order (0-indexed). Ignored for non-HTML input.
func (c *Converter) TableIndex(index int) *Converter {
	nc := c.clone()
	nc.options.tableIndex = index
	return nc
}

// ============================================================================
// Terminal Operations (execute conversion and return results)
// ============================================================================

// Table loads the source and returns it as a sparse table.
//
// Returns the table, any warnings encountered during processing, and an
// error if loading failed. Warnings indicate non-fatal issues (e.g. a
// trailing cell dropped) where conversion succeeded but results may be
// imperfect.
//
// Example:
//
//	table, warnings, err := cellar.Open("data.csv").Table()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cellar.FormatWarnings(warnings))
//	}
func (c *Converter) Table() (*grid.Table, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	table, warnings, err := c.load()
	if err != nil {
		return nil, warnings, err
	}
	return table, warnings, nil
}

// Rows loads the source and returns it as dense rows, with absent cells
// filled in as empty strings. Every row has ColCount entries.
//
// Example:
//
//	rows, _, err := cellar.Open("report.xlsx").SheetName("Q3").Rows()
func (c *Converter) Rows() ([][]string, []Warning, error) {
	table, warnings, err := c.Table()
	if err != nil {
		return nil, warnings, err
	}
	return table.Rows(), warnings, nil
}

// Text loads the source and returns it serialized as CSV text using
// the configured wire options.
//
// Example:
//
//	text, _, err := cellar.Open("report.xlsx").Sheet(0).Text()
func (c *Converter) Text() (string, []Warning, error) {
	table, warnings, err := c.Table()
	if err != nil {
		return "", warnings, err
	}
	text, err := csvdoc.EncodeText(table, c.wireOptions())
	if err != nil {
		return "", warnings, err
	}
	return text, warnings, nil
}

// Write loads the source and streams it to w as CSV in the configured
// encoding.
func (c *Converter) Write(w io.Writer) ([]Warning, error) {
	table, warnings, err := c.Table()
	if err != nil {
		return warnings, err
	}
	ew, err := c.resolver.NewWriter(w, c.options.encoding)
	if err != nil {
		return warnings, err
	}
	if err := csvdoc.Encode(table, ew, c.wireOptions()); err != nil {
		return warnings, err
	}
	return warnings, ew.Close()
}

// Save loads the source and writes it to the file at path as CSV,
// creating or truncating the file.
//
// Example:
//
//	_, err := cellar.Open("report.xlsx").SheetName("Q3").Save("q3.csv")
func (c *Converter) Save(path string) ([]Warning, error) {
	if c.err != nil {
		return nil, c.err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	warnings, err := c.Write(f)
	if err != nil {
		f.Close()
		return warnings, err
	}
	return warnings, f.Close()
}

// ============================================================================
// Internal helpers
// ============================================================================

// wireOptions resolves the effective codec options: explicit setters
// win, then the selected dialect, then the codec defaults.
func (c *Converter) wireOptions() csvdoc.Options {
	var opts csvdoc.Options

	if c.options.dialect != "" {
		if d, err := c.registry.Lookup(c.options.dialect); err == nil {
			opts = d.Options()
		}
	}

	if c.options.delimiter != 0 {
		opts.Delimiter = c.options.delimiter
	} else if opts.Delimiter == 0 && c.format == format.TSV {
		opts.Delimiter = '\t'
	}
	if c.options.escape != 0 {
		opts.Escape = c.options.escape
	}
	if c.options.newlineSet {
		opts.Newline = c.options.newline
	}
	if c.options.cellNewline != "" {
		opts.CellNewline = c.options.cellNewline
	}

	return opts
}

// load resolves the source into a table, along with decode warnings.
func (c *Converter) load() (*grid.Table, []Warning, error) {
	warnings := append([]Warning(nil), c.warnings...)

	if c.table != nil {
		return c.table, warnings, nil
	}

	data, err := c.readSource()
	if err != nil {
		return nil, warnings, err
	}

	f := c.format
	if f == format.Unknown {
		f, err = format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, warnings, err
		}
	}
	if f == format.Unknown {
		// No magic and no recognized extension: treat as delimited text.
		f = format.CSV
	}
	c.format = f

	switch f {
	case format.XLSX:
		return c.loadXLSX(data, warnings)
	case format.HTML:
		return c.loadHTML(data, warnings)
	default:
		return c.loadCSV(data, warnings)
	}
}

// readSource pulls the raw bytes of the configured source.
func (c *Converter) readSource() ([]byte, error) {
	if c.source != nil {
		data, err := io.ReadAll(c.source)
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		return data, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no source specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.filename, err)
	}
	return data, nil
}

func (c *Converter) loadCSV(data []byte, warnings []Warning) (*grid.Table, []Warning, error) {
	dr, err := c.resolver.NewReader(bytes.NewReader(data), c.options.encoding, c.options.detectBOM)
	if err != nil {
		return nil, warnings, err
	}

	dec := csvdoc.NewDecoder(dr, c.wireOptions())
	table, err := dec.Decode()
	for _, msg := range dec.Warnings() {
		warnings = append(warnings, Warning{Op: "decode", Message: msg})
	}
	if err != nil {
		return nil, warnings, err
	}
	return table, warnings, nil
}

func (c *Converter) loadXLSX(data []byte, warnings []Warning) (*grid.Table, []Warning, error) {
	r, err := xlsx.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, warnings, err
	}
	defer r.Close()

	var sheet *xlsx.Sheet
	switch {
	case c.options.sheetName != "":
		sheet, err = r.SheetByName(c.options.sheetName)
	case c.options.sheetIndex >= 0:
		sheet, err = r.Sheet(c.options.sheetIndex)
	default:
		sheet, err = r.Sheet(0)
	}
	if err != nil {
		return nil, warnings, err
	}
	return sheet.Table, warnings, nil
}

func (c *Converter) loadHTML(data []byte, warnings []Warning) (*grid.Table, []Warning, error) {
	dr, err := c.resolver.NewReader(bytes.NewReader(data), c.options.encoding, c.options.detectBOM)
	if err != nil {
		return nil, warnings, err
	}

	tables, err := htmltab.Parse(dr)
	if err != nil {
		return nil, warnings, err
	}
	idx := c.options.tableIndex
	if idx < 0 || idx >= len(tables) {
		return nil, warnings, fmt.Errorf("table index %d out of range: document has %d tables", idx, len(tables))
	}
	return tables[idx], warnings, nil
}
