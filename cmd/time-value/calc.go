package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// calcOptions holds the calculation flags. Empty strings and a nil rate mean
// "use the configured default".
type calcOptions struct {
	amount    string
	rate      *float64 // percent
	frequency string
	periods   string
	years     string
}

var (
	fvOpts calcOptions
	pvOpts calcOptions
)

var fvCmd = &cobra.Command{
	Use:   "fv",
	Short: "Future value of a principal invested today",
	Example: "  time-value fv --principal 1000 --rate 3.875 --frequency annual --years 7\n" +
		"  time-value fv --principal 5000 --rate 4 --periods 6 --years 3",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalculation(cmd, calculator.FutureValue, &fvOpts)
	},
}

var pvCmd = &cobra.Command{
	Use:     "pv",
	Short:   "Present value of an amount received in the future",
	Example: "  time-value pv --amount 1304.90 --rate 3.875 --years 7",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalculation(cmd, calculator.PresentValue, &pvOpts)
	},
}

func init() {
	fvCmd.Flags().StringVar(&fvOpts.amount, "principal", "", "principal amount, e.g. 10000.00 (default from config)")
	pvCmd.Flags().StringVar(&pvOpts.amount, "amount", "", "future amount to discount (default from config)")
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *calcOptions
	}{{fvCmd, &fvOpts}, {pvCmd, &pvOpts}} {
		addRateFlags(c.cmd, c.opts)
		c.cmd.Flags().StringVar(&c.opts.frequency, "frequency", "", "compounding frequency: annual, semiannual, quarterly, monthly, weekly, daily")
		c.cmd.Flags().StringVar(&c.opts.periods, "periods", "", "custom compounding periods per year; overrides --frequency")
		rootCmd.AddCommand(c.cmd)
	}
}

func addRateFlags(cmd *cobra.Command, opts *calcOptions) {
	cmd.Flags().Float64("rate", 0, "annual interest rate in percent, e.g. 3.875 (default from config)")
	cmd.Flags().StringVar(&opts.years, "years", "", "number of years, e.g. 7.0 (default from config)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		opts.rate = nil
		if cmd.Flags().Changed("rate") {
			v, _ := cmd.Flags().GetFloat64("rate")
			opts.rate = &v
		}
	}
}

func runCalculation(cmd *cobra.Command, mode calculator.Mode, opts *calcOptions) error {
	s, err := buildSession(conf.Defaults, mode, *opts)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), conf.Output.Format, s)
}

// buildSession applies the flags to a session seeded from defaults. Text
// flags go through the same edit rules as interactive input; rejected text
// is an error here rather than a stale value.
func buildSession(defaults config.Defaults, mode calculator.Mode, opts calcOptions) (calculator.Session, error) {
	s := calculator.NewSession(defaults).SetMode(mode)

	if opts.amount != "" {
		s = s.EditAmount(opts.amount)
		if msg := s.Amount.Error(); msg != "" {
			return s, fmt.Errorf("%s %q: %s", s.Amount.Label, opts.amount, msg)
		}
	}
	if opts.years != "" {
		s = s.EditYears(opts.years)
		if msg := s.Years.Error(); msg != "" {
			return s, fmt.Errorf("%s %q: %s", s.Years.Label, opts.years, msg)
		}
	}
	if opts.rate != nil {
		s = s.SetRatePercent(*opts.rate)
	}
	if opts.frequency != "" {
		f, ok := compounding.Parse(opts.frequency)
		if !ok {
			return s, fmt.Errorf("unknown frequency %q", opts.frequency)
		}
		s = s.SetFrequency(f)
	}
	if opts.periods != "" {
		s = s.EditCustomPeriods(opts.periods)
		if msg := s.CustomPeriods.Error(); msg != "" {
			return s, fmt.Errorf("%s %q: %s", s.CustomPeriods.Label, opts.periods, msg)
		}
	}
	return s, nil
}

func writeResult(w io.Writer, outputFormat string, s calculator.Session) error {
	r := s.Result()
	if r.Err != nil {
		logger.Error("calculation failed",
			zap.String("op", "main.writeResult"),
			zap.String("mode", r.Mode.String()),
			zap.Error(r.Err),
		)
		return r.Err
	}
	logger.Debug("calculation computed",
		zap.String("op", "main.writeResult"),
		zap.String("description", r.Description),
		zap.Float64("value", r.Value),
	)
	return output.WriteResult(w, outputFormat, r)
}
