// weathervane is the headless CLI around the weather engine: simulate a
// biome's sky over time, validate the static tables, or list the built-in
// biome profiles.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "weathervane",
	Short:         "Animated weather state machine for rendering pipelines",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(simulateCmd, validateCmd, biomesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
