package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "randgen",
	Short: "Generate random-value functions for marked Go types",
	Long: `randgen scans packages for types marked with //randgen:derive and
writes a RandomT function for each one into a generated file. Structs
generate every field; enums pick a variant uniformly.`,
}

var verbose bool

func main() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "pretty debug logging")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
