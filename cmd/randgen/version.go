package main

import (
	"github.com/spf13/cobra"

	"github.com/shipq/randgen/cli"
)

var version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the randgen version",
	Run: func(cmd *cobra.Command, args []string) {
		cli.Infof("randgen %s", version)
	},
}
