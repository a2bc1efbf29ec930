package main

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/iwvelando/time-value/internal/cache"
	"github.com/iwvelando/time-value/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator web UI and JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveAddress != "" {
			conf.Server.Address = serveAddress
		}

		resultCache, err := cache.New(conf.Cache, logger)
		if err != nil {
			return err
		}
		if closer, ok := resultCache.(io.Closer); ok {
			defer func() {
				if err := closer.Close(); err != nil {
					logger.Warn("failed to close cache", zap.String("op", "main.serve"), zap.Error(err))
				}
			}()
		}

		logger.Info("cache ready",
			zap.String("op", "main.serve"),
			zap.String("backend", conf.Cache.Backend),
		)

		handler := server.NewHandler(logger, conf, resultCache, version)
		return server.Run(ctx, logger, conf.Server.Address, handler)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
