package cellar

// ConvertOptions holds configuration accumulated by a Converter chain.
type ConvertOptions struct {
	// Wire configuration. Zero values defer to the selected dialect,
	// then to the codec defaults.
	delimiter   rune
	escape      rune
	newline     string
	newlineSet  bool // distinguishes an explicit "" (permissive) from unset
	cellNewline string
	dialect     string

	// Character encoding for byte-level input and output. Empty means
	// UTF-8.
	encoding  string
	detectBOM bool

	// Source selection for multi-table inputs.
	sheetIndex int    // XLSX sheet by position, -1 when unset
	sheetName  string // XLSX sheet by name, wins over sheetIndex
	tableIndex int    // HTML table by document order
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		sheetIndex: -1,
		tableIndex: 0,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
