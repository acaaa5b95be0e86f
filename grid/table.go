// Package grid provides a sparse two-dimensional cell store with
// Excel-style address notation.
//
// A Table maps (row, column) coordinates to string cell values. Only
// non-empty values are stored, so memory is proportional to the number
// of populated cells rather than the declared extent. Row and column
// counts grow as cells are inserted and never shrink on their own;
// Recompute tightens them to the populated bounds when needed.
package grid

// Coord identifies a cell by zero-based row and column indexes.
// In address-notation contexts a value of -1 in either slot means
// that half of the address is omitted (a row-only or column-only
// address).
type Coord struct {
	Row int
	Col int
}

// Table is a sparse 2-D store of cell text.
//
// A Table is not safe for concurrent mutation. Callers that share a
// Table across goroutines must serialize access themselves; each
// decode or encode operation assumes exclusive ownership of the Table
// for its duration.
type Table struct {
	cells    map[Coord]string
	rowCount int
	colCount int
}

// New returns an empty Table.
func New() *Table {
	return &Table{cells: make(map[Coord]string)}
}

// Upsert sets the cell at c to text. Storing an empty string removes
// any existing cell instead, so absent and empty cells are
// indistinguishable. Inserting a non-empty value beyond the current
// extent grows RowCount/ColCount; nothing ever shrinks them here.
func (t *Table) Upsert(c Coord, text string) {
	if text == "" {
		delete(t.cells, c)
		return
	}
	t.cells[c] = text
	if c.Row+1 > t.rowCount {
		t.rowCount = c.Row + 1
	}
	if c.Col+1 > t.colCount {
		t.colCount = c.Col + 1
	}
}

// Get returns the text stored at c, or the empty string when the cell
// is absent.
func (t *Table) Get(c Coord) string {
	return t.cells[c]
}

// RowCount returns the declared number of rows: at least one more than
// the highest populated row index, possibly more if cells have been
// removed since the last Recompute.
func (t *Table) RowCount() int {
	return t.rowCount
}

// ColCount returns the declared number of columns. See RowCount for
// the grow-only semantics.
func (t *Table) ColCount() int {
	return t.colCount
}

// Len returns the number of populated cells.
func (t *Table) Len() int {
	return len(t.cells)
}

// Recompute tightens RowCount and ColCount to the minimum bounds
// implied by the populated cells (zero for an empty Table). It scans
// every stored cell, so it is intended to be called once before a
// full-table export rather than after each mutation.
func (t *Table) Recompute() {
	maxRow, maxCol := -1, -1
	for c := range t.cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	t.rowCount = maxRow + 1
	t.colCount = maxCol + 1
}

// Cells returns a copy of the populated cells. The copy is detached;
// mutating it does not affect the Table.
func (t *Table) Cells() map[Coord]string {
	out := make(map[Coord]string, len(t.cells))
	for c, v := range t.cells {
		out[c] = v
	}
	return out
}

// Row returns the dense contents of one row across the declared column
// extent, with empty strings for absent cells.
func (t *Table) Row(row int) []string {
	out := make([]string, t.colCount)
	for col := 0; col < t.colCount; col++ {
		out[col] = t.cells[Coord{Row: row, Col: col}]
	}
	return out
}

// Rows returns the dense contents of the whole declared rectangle.
func (t *Table) Rows() [][]string {
	out := make([][]string, t.rowCount)
	for row := 0; row < t.rowCount; row++ {
		out[row] = t.Row(row)
	}
	return out
}
