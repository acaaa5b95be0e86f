package csvdoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/cellar/grid"
	"github.com/tsawler/cellar/textenc"
)

// Encoder writes a grid.Table to a stream as CSV.
type Encoder struct {
	w    *bufio.Writer
	opts Options
}

// NewEncoder returns an Encoder writing to w with the given options.
func NewEncoder(w io.Writer, opts Options) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), opts: opts.withDefaults()}
}

// Encode writes the table's full declared rectangle: every row from 0
// to RowCount-1 and every column from 0 to ColCount-1, with absent
// cells emitted as empty fields. Output is streamed through a small
// buffer; the serialized form is never materialized whole. The row
// terminator follows every row, including the last.
func (e *Encoder) Encode(table *grid.Table) error {
	newline := e.opts.Newline
	if newline == "" {
		newline = "\r\n"
	}
	cellNewline := e.opts.CellNewline
	escape := string(e.opts.Escape)
	doubled := escape + escape

	for row := 0; row < table.RowCount(); row++ {
		for col := 0; col < table.ColCount(); col++ {
			if col > 0 {
				if _, err := e.w.WriteRune(e.opts.Delimiter); err != nil {
					return err
				}
			}
			text := table.Get(grid.Coord{Row: row, Col: col})
			if cellNewline != newline {
				text = strings.ReplaceAll(text, cellNewline, newline)
			}
			if strings.ContainsRune(text, e.opts.Escape) ||
				strings.ContainsRune(text, e.opts.Delimiter) ||
				strings.Contains(text, newline) {
				text = escape + strings.ReplaceAll(text, escape, doubled) + escape
			}
			if _, err := e.w.WriteString(text); err != nil {
				return err
			}
		}
		if _, err := e.w.WriteString(newline); err != nil {
			return err
		}
	}

	return e.w.Flush()
}

// Encode writes table to w as CSV using the given options.
func Encode(table *grid.Table, w io.Writer, opts Options) error {
	return NewEncoder(w, opts).Encode(table)
}

// EncodeText encodes table to an in-memory string.
func EncodeText(table *grid.Table, opts Options) (string, error) {
	var b strings.Builder
	if err := Encode(table, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeStream encodes table to a byte stream in the named character
// encoding (empty means UTF-8).
func EncodeStream(table *grid.Table, w io.Writer, encoding string, opts Options) error {
	ew, err := textenc.NewWriter(w, encoding)
	if err != nil {
		return err
	}
	if err := Encode(table, ew, opts); err != nil {
		return err
	}
	return ew.Close()
}

// EncodeFile encodes table to the file at path, creating or truncating
// it. See EncodeStream for the encoding parameter.
func EncodeFile(table *grid.Table, path string, encoding string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	if err := EncodeStream(table, f, encoding, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
