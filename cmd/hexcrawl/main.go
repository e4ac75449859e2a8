// Package main is the entry point for the hexcrawl CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hexcrawl",
	Short: "Hexcrawl wilderness travel engine",
	Long:  `Hexcrawl runs wilderness travel expeditions over procedurally generated hex maps, tracking movement budgets, weather, survival attrition, and the travel log.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
