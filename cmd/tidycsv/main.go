// Package main is the entry point for the tidycsv CLI.
package main

import (
	"os"

	"github.com/jmylchreest/tidycsv/cmd/tidycsv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
