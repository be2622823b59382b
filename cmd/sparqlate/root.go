package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sparqlate",
	Short: "sparqlate - a natural-language gateway to SPARQL endpoints",
	Long: `sparqlate turns natural-language questions into executed SPARQL queries
against RDF knowledge graphs.

Given one or more configured SPARQL endpoints, it:
  - Discovers an endpoint's capabilities (SPARQL version, namespaces,
    supported features and functions)
  - Parses a natural-language question into a structured intent
  - Builds and validates a SPARQL query against what was discovered
  - Executes the query against that one endpoint, retrying idempotent
    failures with backoff

It is a one-shot CLI: every subcommand runs to completion and exits, there
is no daemon mode.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
