package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedAddress is returned by ParseAddress when the input is
// not a valid cell address.
var ErrMalformedAddress = errors.New("malformed cell address")

// ParseAddress parses an Excel-style address like "B3", "AA100", "7"
// (row only) or "AC" (column only) into a Coord. Parsing is
// case-insensitive. Column letters, when present, must all precede the
// row digits; any other character, or a letter appearing after a
// digit, yields ErrMalformedAddress. An omitted half is reported as -1
// in the corresponding Coord slot.
func ParseAddress(s string) (Coord, error) {
	col, row := 0, 0
	hasCol, hasRow := false, false

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasRow = true
			row = row*10 + int(r-'0')
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			if hasRow {
				return Coord{}, fmt.Errorf("%w: column letter after row digits at offset %d in %q", ErrMalformedAddress, i, s)
			}
			hasCol = true
			if r >= 'a' {
				r -= 'a' - 'A'
			}
			col = col*26 + int(r-'A') + 1
		default:
			return Coord{}, fmt.Errorf("%w: unexpected character %q in %q", ErrMalformedAddress, r, s)
		}
	}

	c := Coord{Row: -1, Col: -1}
	if hasCol {
		c.Col = col - 1
	}
	if hasRow {
		c.Row = row - 1
	}
	return c, nil
}

// FormatAddress renders a Coord as an Excel-style address. A -1 in
// either slot omits that half, so {Row: -1, Col: 2} renders as "C" and
// {Row: 4, Col: -1} as "5". FormatAddress is the inverse of
// ParseAddress for any coordinate with both slots >= 0.
func FormatAddress(c Coord) string {
	var b strings.Builder
	if c.Col >= 0 {
		b.WriteString(columnLetters(c.Col))
	}
	if c.Row >= 0 {
		fmt.Fprintf(&b, "%d", c.Row+1)
	}
	return b.String()
}

// columnLetters converts a zero-based column index to bijective
// base-26 letters: 0=A, 25=Z, 26=AA, 27=AB, ...
func columnLetters(index int) string {
	letters := ""
	index++
	for index > 0 {
		index--
		letters = string(rune('A'+index%26)) + letters
		index /= 26
	}
	return letters
}
