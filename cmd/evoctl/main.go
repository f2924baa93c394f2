package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evoctl",
	Short: "Run and inspect agent-genome evolution",
	Long: `evoctl drives the evolutionary agent-optimization engine from the
command line: it seeds a population of weighted behavioral traits, steps
it across generations under a configurable fitness objective, and reports
fitness and diversity statistics per generation.

Results can be archived to SQLite and population snapshots exported as
Parquet trait matrices for offline analysis.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
