// Command dwarfdump prints the DWARF units of an in-memory section table.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/memdwarf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL %v\n", err)
		os.Exit(1)
	}
}
