package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/calculator"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const browseHelp = `commands:
  first | previous | next | last | current
  brand        search by brand (prompts)
  line         search by line (prompts)
  oldest       move to the oldest vehicle
  expensive    show the most expensive vehicle
  average      show the average price
  tax [prompt] [public] [transfer]
  help | quit
`

func newBrowseCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   BrowseCmdName,
		Short: BrowseCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, log, err := loadCalculator(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			console := calculator.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			calc.SetInputProvider(console)
			return browse(calc, console, cmd.OutOrStdout(), log)
		},
	}
}

func browse(calc *calculator.Calculator, console *calculator.Console, out io.Writer, log *zap.Logger) error {
	printVehicle(out, calc.Position(), calc.Current())

	for {
		fmt.Fprint(out, "> ")
		line, err := console.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}

		var (
			veh    *dal.Vehicle
			navErr error
		)
		switch fields[0] {
		case "first":
			veh, navErr = calc.First()
		case "previous", "prev":
			veh, navErr = calc.Previous()
		case "next":
			veh, navErr = calc.Next()
		case "last":
			veh, navErr = calc.Last()
		case "current":
			veh = calc.Current()
		case "brand":
			if found := calc.PromptBrand(); found != nil {
				fmt.Fprintf(out, "found %s %s (%s) price %.2f\n", found.Brand(), found.Line(), found.Year(), found.Price())
			} else {
				fmt.Fprintln(out, "no vehicle found")
			}
			continue
		case "line":
			veh = calc.PromptLine()
			if veh == nil {
				fmt.Fprintln(out, "no vehicle found")
				continue
			}
		case "oldest":
			veh = calc.FindOldest()
			if veh == nil {
				fmt.Fprintln(out, "no vehicle found")
				continue
			}
		case "expensive":
			veh = calc.FindMostExpensive()
			fmt.Fprintf(out, "most expensive %s %s (%s) price %.2f\n", veh.Brand(), veh.Line(), veh.Year(), veh.Price())
			continue
		case "average":
			fmt.Fprintf(out, "average price %.2f\n", calc.AveragePrice())
			continue
		case "tax":
			printTax(out, calc, parseDiscounts(fields[1:]))
			continue
		case "help":
			fmt.Fprint(out, browseHelp)
			continue
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", fields[0])
			continue
		}

		if navErr != nil {
			log.Debug("navigation refused", zap.Error(navErr))
			var ne *calculator.NavigationError
			if errors.As(navErr, &ne) {
				fmt.Fprintln(out, ne.Reason)
				continue
			}
			return navErr
		}
		printVehicle(out, calc.Position(), veh)
	}
}

func parseDiscounts(words []string) tax.Discounts {
	var d tax.Discounts
	for _, w := range words {
		switch w {
		case "prompt":
			d.PromptPayment = true
		case "public":
			d.PublicService = true
		case "transfer":
			d.AccountTransfer = true
		}
	}
	return d
}
