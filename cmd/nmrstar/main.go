// nmrstar downloads BMRB entries and extracts sequences, sample
// components and chemical shifts from NMR-STAR files.
package main

import (
	"os"

	"github.com/andrew-torda/nmrstar/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
