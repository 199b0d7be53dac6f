package cmd

import (
	"fmt"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newReportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   ReportCmdName,
		Short: ReportCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, log, err := loadCalculator(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			out := cmd.OutOrStdout()
			rates := calc.Rates()
			for i, veh := range calc.Vehicles() {
				fmt.Fprintf(out, "#%d %s %s (%s) price %.2f tax %.2f\n",
					i, veh.Brand(), veh.Line(), veh.Year(), veh.Price(), tax.Base(rates, veh.Price()))
			}

			fmt.Fprintf(out, "average price %.2f\n", calc.AveragePrice())
			if veh := calc.FindMostExpensive(); veh != nil {
				fmt.Fprintf(out, "most expensive %s %s\n", veh.Brand(), veh.Line())
			}
			if veh := calc.FindOldest(); veh != nil {
				fmt.Fprintf(out, "oldest %s %s (%s)\n", veh.Brand(), veh.Line(), veh.Year())
			}
			return nil
		},
	}
}
