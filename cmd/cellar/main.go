// Command cellar converts tabular data between CSV, TSV, XLSX, and
// HTML sources and CSV output, and inspects it from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
