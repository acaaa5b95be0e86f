package csvdoc

// Options holds the wire-format configuration shared by the decoder
// and the encoder.
type Options struct {
	// Delimiter separates cells within a row. Default: ','.
	Delimiter rune

	// Escape quotes a cell whose content contains the delimiter, the
	// escape character itself, or a newline. A literal escape character
	// inside an escaped cell is doubled. Default: '"'.
	Escape rune

	// Newline is the exact sequence terminating a row. When decoding,
	// an empty value selects permissive mode: a lone '\r', a lone
	// '\n', or the pairs "\r\n" and "\n\r" each count as one row
	// terminator. When encoding, an empty value means "\r\n".
	Newline string

	// CellNewline is the in-memory representation of line breaks
	// inside multi-line cell text. Embedded wire newlines are
	// translated to this on decode and back on encode. Default: "\n".
	CellNewline string
}

// DefaultOptions returns the standard CSV configuration: comma
// delimiter, double-quote escape, permissive newline handling on
// decode ("\r\n" on encode), and "\n" as the in-memory cell newline.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		Escape:      '"',
		Newline:     "",
		CellNewline: "\n",
	}
}

// withDefaults fills zero-valued fields so the codec never operates on
// a NUL delimiter or escape. Newline stays empty here because the
// empty value is meaningful to the decoder.
func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Escape == 0 {
		o.Escape = '"'
	}
	if o.CellNewline == "" {
		o.CellNewline = "\n"
	}
	return o
}
