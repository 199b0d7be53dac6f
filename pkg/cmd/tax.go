package cmd

import (
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTaxCmd(v *viper.Viper) *cobra.Command {
	taxCmd := &cobra.Command{
		Use:   TaxCmdName,
		Short: TaxCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, log, err := loadCalculator(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			if _, err := calc.Select(v.GetInt(indexKey)); err != nil {
				return err
			}

			printTax(cmd.OutOrStdout(), calc, tax.Discounts{
				PromptPayment:   v.GetBool(promptPaymentKey),
				PublicService:   v.GetBool(publicServiceKey),
				AccountTransfer: v.GetBool(accountTransferKey),
			})
			return nil
		},
	}
	taxCmd.Flags().Int(indexKey, 0, "catalog position of the vehicle")
	taxCmd.Flags().Bool(promptPaymentKey, false, "apply the prompt payment discount")
	taxCmd.Flags().Bool(publicServiceKey, false, "apply the public service deduction")
	taxCmd.Flags().Bool(accountTransferKey, false, "apply the account transfer discount")
	v.BindPFlags(taxCmd.Flags())
	return taxCmd
}
