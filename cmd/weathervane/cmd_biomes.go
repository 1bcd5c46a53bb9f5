package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/weathervane/internal/weather"
)

var biomesCmd = &cobra.Command{
	Use:   "biomes",
	Short: "List the built-in biome profiles",
	Run: func(_ *cobra.Command, _ []string) {
		for _, b := range weather.BuiltinBiomes() {
			fmt.Printf("%s (dwell %s - %s)\n", b.ID, b.MinDwell, b.MaxDwell)
			for _, w := range b.Weights {
				fmt.Printf("  %-12s %4.0f%%\n", w.State, w.Weight*100)
			}
		}
	},
}
