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

// Decoder reads CSV data from a stream into a grid.Table.
type Decoder struct {
	r    io.RuneReader
	opts Options

	// pending is the lookahead/pushback buffer: characters already
	// pulled from the stream but not yet consumed by the state
	// machine. It is checked before fresh input, so returning
	// over-read characters here replays them in order.
	pending []rune

	warnings []string
}

// NewDecoder returns a Decoder reading from r with the given options.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Decoder{r: rr, opts: opts.withDefaults()}
}

// Warnings returns non-fatal notices recorded during Decode, such as
// an escaped region left open at end of input.
func (d *Decoder) Warnings() []string {
	return d.warnings
}

// Decode consumes the stream and returns the populated table.
//
// A cell is committed only when the stream produces the delimiter or a
// row terminator after it; content between the final such boundary and
// end of input is dropped, so input that does not end with a newline
// loses its trailing cell. Malformed escaping is never an error. If
// the underlying stream fails mid-decode, the partially populated
// table is returned alongside the error and should be discarded.
func (d *Decoder) Decode() (*grid.Table, error) {
	table := grid.New()

	logical := d.opts.Newline
	if logical == "" {
		logical = "\n"
	}

	var cell strings.Builder
	row, col := 0, 0
	escaped := false

	commit := func() {
		text := cell.String()
		if d.opts.CellNewline != logical {
			text = strings.ReplaceAll(text, logical, d.opts.CellNewline)
		}
		table.Upsert(grid.Coord{Row: row, Col: col}, text)
		cell.Reset()
	}

	for {
		c, err := d.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table, err
		}

		terminator, err := d.matchNewline(c)
		if err != nil {
			return table, err
		}
		if terminator {
			if escaped {
				cell.WriteString(logical)
				continue
			}
			commit()
			row++
			col = 0
			continue
		}

		if c == d.opts.Escape {
			if !escaped {
				escaped = true
				continue
			}
			// Leaving an escaped region; a second escape character
			// immediately after means a doubled escape instead.
			p, perr := d.next()
			if perr == nil {
				if p == d.opts.Escape {
					cell.WriteRune(d.opts.Escape)
					continue
				}
				d.pushBack(p)
			} else if perr != io.EOF {
				return table, perr
			}
			escaped = false
			continue
		}

		if !escaped && c == d.opts.Delimiter {
			commit()
			col++
			continue
		}

		cell.WriteRune(c)
	}

	if escaped {
		d.warnings = append(d.warnings, "escaped region still open at end of input")
	}
	if cell.Len() > 0 {
		d.warnings = append(d.warnings, "trailing cell without a row terminator was dropped")
	}

	return table, nil
}

// matchNewline reports whether c begins a row terminator, consuming
// the rest of the sequence when it does. On a partial mismatch every
// over-read character is pushed back for normal reprocessing and c is
// not a terminator.
func (d *Decoder) matchNewline(c rune) (bool, error) {
	if d.opts.Newline == "" {
		// Permissive mode: \r, \n, \r\n and \n\r each terminate a
		// row; the trailing half of a pair is consumed and discarded.
		if c != '\r' && c != '\n' {
			return false, nil
		}
		p, err := d.next()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if (c == '\r' && p == '\n') || (c == '\n' && p == '\r') {
			return true, nil
		}
		d.pushBack(p)
		return true, nil
	}

	want := []rune(d.opts.Newline)
	if c != want[0] {
		return false, nil
	}
	read := make([]rune, 0, len(want)-1)
	for _, w := range want[1:] {
		p, err := d.next()
		if err == io.EOF {
			d.pushBackAll(read)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		read = append(read, p)
		if p != w {
			d.pushBackAll(read)
			return false, nil
		}
	}
	return true, nil
}

// next returns the next character, draining the pushback buffer before
// touching the stream.
func (d *Decoder) next() (rune, error) {
	if len(d.pending) > 0 {
		c := d.pending[0]
		d.pending = d.pending[1:]
		return c, nil
	}
	c, _, err := d.r.ReadRune()
	return c, err
}

// pushBack returns a single character to the front of the buffer.
func (d *Decoder) pushBack(c rune) {
	d.pending = append([]rune{c}, d.pending...)
}

// pushBackAll returns characters so they replay in the given order.
func (d *Decoder) pushBackAll(cs []rune) {
	if len(cs) == 0 {
		return
	}
	d.pending = append(append([]rune{}, cs...), d.pending...)
}

// Decode reads CSV from r into a new table using the given options.
func Decode(r io.Reader, opts Options) (*grid.Table, error) {
	return NewDecoder(r, opts).Decode()
}

// DecodeText decodes an in-memory CSV string.
func DecodeText(text string, opts Options) (*grid.Table, error) {
	return Decode(strings.NewReader(text), opts)
}

// DecodeStream decodes CSV from a byte stream in the named character
// encoding (empty means UTF-8). When detectBOM is set, a leading
// byte-order mark overrides the named encoding.
func DecodeStream(r io.Reader, encoding string, detectBOM bool, opts Options) (*grid.Table, error) {
	dr, err := textenc.NewReader(r, encoding, detectBOM)
	if err != nil {
		return nil, err
	}
	return Decode(dr, opts)
}

// DecodeFile decodes the CSV file at path. See DecodeStream for the
// encoding parameters.
func DecodeFile(path string, encoding string, detectBOM bool, opts Options) (*grid.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()
	return DecodeStream(f, encoding, detectBOM, opts)
}
