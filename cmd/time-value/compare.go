package main

import (
	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/pkg/output"
	"github.com/iwvelando/time-value/pkg/tvm"
	"github.com/spf13/cobra"
)

var compareOpts calcOptions

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Future value of one principal under every compounding frequency",
	Example: "  time-value compare --principal 1000 --rate 5 --years 10",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSession(conf.Defaults, calculator.FutureValue, compareOpts)
		if err != nil {
			return err
		}
		in := s.Input()
		rows, err := tvm.Compare(in.Amount, in.AnnualRate, in.Years)
		if err != nil {
			return err
		}
		return output.WriteComparison(cmd.OutOrStdout(), conf.Output.Format, in.Amount, in.AnnualRate, in.Years, rows)
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareOpts.amount, "principal", "", "principal amount (default from config)")
	addRateFlags(compareCmd, &compareOpts)
	rootCmd.AddCommand(compareCmd)
}
