package main

import (
	"os/signal"
	"syscall"

	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal calculator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return tui.Run(ctx, calculator.NewSession(conf.Defaults), logger)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
