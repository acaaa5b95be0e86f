package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/cellar/grid"
)

var addrCmd = &cobra.Command{
	Use:   "addr <address|row,col>...",
	Short: "Translate between cell addresses and coordinates",
	Long: `Addr converts Excel-style cell addresses like B3 or AA100 to zero-based
row and column coordinates, and coordinate pairs like 2,1 back to
addresses.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if row, col, ok := parseCoordPair(arg); ok {
				addr := grid.FormatAddress(grid.Coord{Row: row, Col: col})
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, addr)
				continue
			}

			coord, err := grid.ParseAddress(arg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\trow %d, col %d\n", arg, coord.Row, coord.Col)
		}
		return nil
	},
}

// parseCoordPair reads "row,col" with zero-based decimal halves. A -1
// half is allowed and omits that half of the address.
func parseCoordPair(s string) (row, col int, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || row < -1 {
		return 0, 0, false
	}
	col, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || col < -1 {
		return 0, 0, false
	}
	return row, col, true
}
