package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shipq/randgen/cli"
	"github.com/shipq/randgen/codegen"
	"github.com/shipq/randgen/internal/config"
	"github.com/shipq/randgen/internal/gencache"
	"github.com/shipq/randgen/logging"
	"github.com/shipq/randgen/project"
)

var genForce bool

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate random-value functions once",
	Run: func(cmd *cobra.Command, args []string) {
		opts, cache := buildOptions()
		if cache != nil {
			defer cache.Close()
		}
		opts.Force = genForce

		summary, err := codegen.Run(opts)
		if err != nil {
			cli.FatalErr("generation failed", err)
		}

		if summary.Types() == 0 {
			cli.Warn("no types marked with //randgen:derive were found")
			return
		}
		cli.Successf("%d type(s) across %d package(s), %d file(s) written, %d package(s) unchanged",
			summary.Types(), len(summary.Packages), summary.Written(), summary.Skipped())
	},
}

func init() {
	genCmd.Flags().BoolVar(&genForce, "force", false, "regenerate even for unchanged packages")
}

// buildOptions loads randgen.ini from the enclosing project and assembles
// run options. The caller owns the returned cache, which is nil when
// caching is disabled.
func buildOptions() (codegen.Options, *gencache.Cache) {
	root, err := project.FindRoot()
	if err != nil {
		cli.Fatal(err.Error())
	}

	cfg, err := config.Load(root)
	if err != nil {
		cli.Fatal(err.Error())
	}

	var cache *gencache.Cache
	if cfg.Cache.Enabled {
		cache, err = gencache.Open(filepath.Join(root, cfg.Cache.Path))
		if err != nil {
			cli.Warnf("cache unavailable, generating everything: %v", err)
			cache = nil
		}
	}

	return codegen.Options{
		Root:      root,
		Packages:  cfg.Gen.Packages,
		Filename:  cfg.Gen.Filename,
		RNGImport: cfg.Gen.RNGImport,
		Cache:     cache,
		Logger:    logging.New(verbose),
	}, cache
}
