// Package htmltab extracts HTML tables into sparse grid.Table values.
package htmltab

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/cellar/grid"
)

// Parse reads an HTML document and returns one grid.Table per <table>
// element, in document order. Tables nested inside other tables are
// skipped; their content belongs to the enclosing cell.
func Parse(r io.Reader) ([]*grid.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []*grid.Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, parseTable(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return tables, nil
}

// ParseFirst returns the first table in the document, or an error when
// the document contains none.
func ParseFirst(r io.Reader) (*grid.Table, error) {
	tables, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table element found")
	}
	return tables[0], nil
}

// parseTable converts a table element into a sparse grid. Cells spanned
// by rowspan or colspan keep only their top-left value; the covered
// positions stay empty but still advance the layout cursor.
func parseTable(tableNode *html.Node) *grid.Table {
	table := grid.New()
	occupied := make(map[grid.Coord]bool)
	rowIdx := 0

	var visitRows func(n *html.Node)
	visitRows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				visitRows(c)
			case "tr":
				parseRow(c, table, occupied, rowIdx)
				rowIdx++
			}
		}
	}
	visitRows(tableNode)

	return table
}

// parseRow places the cells of one tr, skipping positions reserved by
// spans from earlier rows.
func parseRow(tr *html.Node, table *grid.Table, occupied map[grid.Coord]bool, rowIdx int) {
	colIdx := 0

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}

		for occupied[grid.Coord{Row: rowIdx, Col: colIdx}] {
			colIdx++
		}

		rowSpan, colSpan := 1, 1
		for _, attr := range c.Attr {
			switch attr.Key {
			case "rowspan":
				fmt.Sscanf(attr.Val, "%d", &rowSpan)
			case "colspan":
				fmt.Sscanf(attr.Val, "%d", &colSpan)
			}
		}
		if rowSpan < 1 {
			rowSpan = 1
		}
		if colSpan < 1 {
			colSpan = 1
		}

		table.Upsert(grid.Coord{Row: rowIdx, Col: colIdx}, cellText(c))

		for dr := 0; dr < rowSpan; dr++ {
			for dc := 0; dc < colSpan; dc++ {
				occupied[grid.Coord{Row: rowIdx + dr, Col: colIdx + dc}] = true
			}
		}
		colIdx += colSpan
	}
}

// cellText extracts the text of a cell with runs of whitespace
// collapsed to single spaces.
func cellText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			case "br":
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(b.String()), " ")
}
