package csvdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/cellar/grid"
)

func mustEncode(t *testing.T, table *grid.Table, opts Options) string {
	t.Helper()
	text, err := EncodeText(table, opts)
	if err != nil {
		t.Fatalf("EncodeText unexpected error: %v", err)
	}
	return text
}

func TestEncodeBasic(t *testing.T) {
	table := grid.New()
	table.Upsert(grid.Coord{Row: 0, Col: 0}, "a")
	table.Upsert(grid.Coord{Row: 0, Col: 1}, "b")
	table.Upsert(grid.Coord{Row: 1, Col: 0}, "c")
	table.Upsert(grid.Coord{Row: 1, Col: 1}, "d")

	got := mustEncode(t, table, DefaultOptions())
	if got != "a,b\r\nc,d\r\n" {
		t.Errorf("EncodeText = %q, want %q", got, "a,b\r\nc,d\r\n")
	}
}

func TestEncodeRectangleFromDeclaredExtent(t *testing.T) {
	// A single populated cell at (2,2) still emits the full 3x3
	// rectangle: eight empty fields and then the value.
	table := grid.New()
	table.Upsert(grid.Coord{Row: 2, Col: 2}, "x")

	got := mustEncode(t, table, DefaultOptions())
	if got != ",,\r\n,,\r\n,,x\r\n" {
		t.Errorf("EncodeText = %q, want %q", got, ",,\r\n,,\r\n,,x\r\n")
	}
}

func TestEncodeQuoting(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"plain", "abc", "abc\r\n"},
		{"delimiter", "a,b", "\"a,b\"\r\n"},
		{"escape", `he said "hi"`, "\"he said \"\"hi\"\"\"\r\n"},
		{"newline", "a\nb", "\"a\r\nb\"\r\n"},
		{"escape only", `"`, "\"\"\"\"\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := grid.New()
			table.Upsert(grid.Coord{Row: 0, Col: 0}, tt.cell)
			if got := mustEncode(t, table, DefaultOptions()); got != tt.want {
				t.Errorf("EncodeText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeCustomDelimiterAndNewline(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiter = ';'
	opts.Newline = "\n"

	table := grid.New()
	table.Upsert(grid.Coord{Row: 0, Col: 0}, "a;b")
	table.Upsert(grid.Coord{Row: 0, Col: 1}, "c")

	got := mustEncode(t, table, opts)
	if got != "\"a;b\";c\n" {
		t.Errorf("EncodeText = %q, want %q", got, "\"a;b\";c\n")
	}
}

func TestEncodeCellNewlineTranslation(t *testing.T) {
	opts := DefaultOptions()
	opts.Newline = "\n"
	opts.CellNewline = "|"

	table := grid.New()
	table.Upsert(grid.Coord{Row: 0, Col: 0}, "a|b")

	// The in-memory cell newline becomes the wire newline, which in
	// turn forces quoting.
	got := mustEncode(t, table, opts)
	if got != "\"a\nb\"\n" {
		t.Errorf("EncodeText = %q, want %q", got, "\"a\nb\"\n")
	}
}

func TestEncodeEmptyTable(t *testing.T) {
	got := mustEncode(t, grid.New(), DefaultOptions())
	if got != "" {
		t.Errorf("EncodeText = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Newline = "\r\n"

	table := grid.New()
	table.Upsert(grid.Coord{Row: 0, Col: 0}, "plain")
	table.Upsert(grid.Coord{Row: 0, Col: 2}, "with,delimiter")
	table.Upsert(grid.Coord{Row: 1, Col: 1}, `with "escape"`)
	table.Upsert(grid.Coord{Row: 2, Col: 0}, "multi\nline")
	table.Upsert(grid.Coord{Row: 3, Col: 3}, "far corner")
	// Leave a grow-only remnant: dimensions exceed the populated
	// bounds until Recompute.
	table.Upsert(grid.Coord{Row: 9, Col: 9}, "temp")
	table.Upsert(grid.Coord{Row: 9, Col: 9}, "")

	encoded := mustEncode(t, table, opts)
	decoded, err := DecodeText(encoded, opts)
	if err != nil {
		t.Fatalf("DecodeText unexpected error: %v", err)
	}

	table.Recompute()
	if diff := cmp.Diff(table.Cells(), decoded.Cells()); diff != "" {
		t.Errorf("cells after round trip (-want +got):\n%s", diff)
	}
	if decoded.RowCount() != table.RowCount() || decoded.ColCount() != table.ColCount() {
		t.Errorf("dimensions after round trip = %dx%d, want %dx%d",
			decoded.RowCount(), decoded.ColCount(), table.RowCount(), table.ColCount())
	}
}

func TestRoundTripPermissiveDecode(t *testing.T) {
	// Encoding with the default CRLF terminator and decoding in
	// permissive mode reproduces the same cells.
	table := grid.New()
	table.Upsert(grid.Coord{Row: 0, Col: 0}, "a")
	table.Upsert(grid.Coord{Row: 1, Col: 1}, "b\nc")

	encoded := mustEncode(t, table, DefaultOptions())
	decoded, err := DecodeText(encoded, DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeText unexpected error: %v", err)
	}

	if diff := cmp.Diff(table.Cells(), decoded.Cells()); diff != "" {
		t.Errorf("cells after round trip (-want +got):\n%s", diff)
	}
}
