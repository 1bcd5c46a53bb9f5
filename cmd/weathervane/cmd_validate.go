package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/weathervane/internal/config"
	"github.com/appengine-ltd/weathervane/internal/weather"
)

var validateConfig string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the static tables and report forbidden pairs lacking a route",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfig, "config", "", "optional YAML tuning/biome file to validate too")
}

func runValidate(_ *cobra.Command, _ []string) error {
	// Built-in tables panic on inconsistency, so reaching this point means
	// catalog, adjacency and routes all passed their load checks.
	adj := weather.DefaultAdjacency()
	routes := weather.DefaultRouteTable(adj)
	weather.DefaultCatalog()

	for _, b := range weather.BuiltinBiomes() {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	if validateConfig != "" {
		if _, err := config.Load(validateConfig); err != nil {
			return err
		}
	}

	missing := weather.ValidateTables(adj, routes)
	if len(missing) == 0 {
		fmt.Println("ok: every forbidden pair has a registered route")
		return nil
	}
	fmt.Printf("ok, with %d forbidden pair(s) that will degrade to a direct hop:\n", len(missing))
	for _, pair := range missing {
		fmt.Printf("  %s -> %s\n", pair[0], pair[1])
	}
	return nil
}
