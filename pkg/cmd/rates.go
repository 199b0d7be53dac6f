package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRatesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   RatesCmdName,
		Short: RatesCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, log, err := loadCalculator(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			rates := calc.Rates()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode %s\n", rates.Mode())
			for _, t := range rates.Tiers() {
				fmt.Fprintf(out, "%s (%.2f, %.2f] %.2f%%\n", t.Key, t.Min, t.Max, t.Percent)
			}
			return nil
		},
	}
}
