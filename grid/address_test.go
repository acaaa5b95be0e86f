package grid

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		addr    string
		want    Coord
		wantErr bool
	}{
		{"A1", Coord{Row: 0, Col: 0}, false},
		{"B3", Coord{Row: 2, Col: 1}, false},
		{"Z1", Coord{Row: 0, Col: 25}, false},
		{"AA1", Coord{Row: 0, Col: 26}, false},
		{"AB12", Coord{Row: 11, Col: 27}, false},
		{"XFD1048576", Coord{Row: 1048575, Col: 16383}, false},
		{"b3", Coord{Row: 2, Col: 1}, false}, // case-insensitive
		{"7", Coord{Row: 6, Col: -1}, false}, // row only
		{"AC", Coord{Row: -1, Col: 28}, false}, // column only
		{"", Coord{Row: -1, Col: -1}, false},
		{"A:1", Coord{}, true},
		{"A 1", Coord{}, true},
		{"1A", Coord{}, true}, // letters may not follow digits
		{"A1B", Coord{}, true},
		{"$A$1", Coord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			got, err := ParseAddress(tt.addr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAddress(%q) = %v, want error", tt.addr, got)
				}
				if !errors.Is(err, ErrMalformedAddress) {
					t.Errorf("ParseAddress(%q) error = %v, want ErrMalformedAddress", tt.addr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q) unexpected error: %v", tt.addr, err)
			}
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		coord Coord
		want  string
	}{
		{Coord{Row: 0, Col: 0}, "A1"},
		{Coord{Row: 2, Col: 1}, "B3"},
		{Coord{Row: 0, Col: 25}, "Z1"},
		{Coord{Row: 0, Col: 26}, "AA1"},
		{Coord{Row: 99, Col: 701}, "ZZ100"},
		{Coord{Row: 99, Col: 702}, "AAA100"},
		{Coord{Row: 6, Col: -1}, "7"},
		{Coord{Row: -1, Col: 28}, "AC"},
		{Coord{Row: -1, Col: -1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatAddress(tt.coord); got != tt.want {
				t.Errorf("FormatAddress(%+v) = %q, want %q", tt.coord, got, tt.want)
			}
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	coords := []Coord{
		{Row: 0, Col: 0},
		{Row: 0, Col: 25},
		{Row: 0, Col: 26},
		{Row: 9, Col: 51},
		{Row: 9, Col: 52},
		{Row: 122, Col: 701},
		{Row: 122, Col: 702},
		{Row: 1048575, Col: 16383},
	}

	for _, c := range coords {
		addr := FormatAddress(c)
		got, err := ParseAddress(addr)
		if err != nil {
			t.Fatalf("ParseAddress(%q) unexpected error: %v", addr, err)
		}
		if got != c {
			t.Errorf("round trip %+v -> %q -> %+v", c, addr, got)
		}
	}
}
