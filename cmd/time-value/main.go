package main

import (
	"fmt"
	"os"

	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/internal/logging"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configLocation string
	logLevel       string
	outputFormat   string

	conf   *config.Configuration
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "time-value",
	Short: "Time value of money calculator",
	Long: "Computes the future value of a lump sum and the present value of a future sum " +
		"under annual through daily or custom compounding, from the command line, a terminal UI or an HTTP API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfiguration(configLocation)
		if err != nil {
			return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
		}
		conf = c

		// The terminal UI owns the screen, so only log to a file there.
		newLogger := logging.New
		if cmd.Name() == tuiCmd.Name() {
			newLogger = logging.ForTerminal
		}
		l, err := newLogger(conf.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if outputFormat != "" {
			conf.Output.Format = outputFormat
		}
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			return err
		}

		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
