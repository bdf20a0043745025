package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shipq/randgen/cli"
	"github.com/shipq/randgen/codegen"
	"github.com/shipq/randgen/internal/config"
	"github.com/shipq/randgen/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter randgen.ini in the current directory",
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			cli.FatalErr("failed to get current directory", err)
		}

		if err := config.WriteDefault(cwd); err != nil {
			cli.Fatal(err.Error())
		}

		if project.HasGoMod(cwd) {
			if module, err := codegen.GetModulePath(cwd); err == nil {
				cli.Infof("project module: %s", module)
			}
		} else {
			cli.Warn("no go.mod here; run init from your module root so package paths resolve")
		}
		cli.Successf("wrote %s", config.ConfigFilename)
		cli.Info("Mark types with //randgen:derive and run 'randgen gen'.")
	},
}
