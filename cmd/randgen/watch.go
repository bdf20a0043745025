package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shipq/randgen/cli"
	"github.com/shipq/randgen/codegen"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever marked sources change",
	Run: func(cmd *cobra.Command, args []string) {
		opts, cache := buildOptions()
		if cache != nil {
			defer cache.Close()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cli.Infof("watching for changes under %s (ctrl-c to stop)", opts.Root)
		if err := codegen.Watch(ctx, opts, watchDebounce); err != nil {
			cli.FatalErr("watch failed", err)
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", codegen.DefaultDebounce,
		"delay before regenerating after a change")
}
