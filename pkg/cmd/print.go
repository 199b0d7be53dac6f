package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/calculator"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
)

func printVehicle(w io.Writer, pos int, v *dal.Vehicle) {
	fmt.Fprintf(w, "#%d %s %s (%s) price %.2f image %s\n", pos, v.Brand(), v.Line(), v.Year(), v.Price(), v.Image())
}

func printTax(w io.Writer, calc *calculator.Calculator, d tax.Discounts) {
	printVehicle(w, calc.Position(), calc.Current())
	fmt.Fprintf(w, "rate %.2f%% base %.2f\n", calc.Rate(), calc.BaseTax())
	fmt.Fprintf(w, "discounts: %s\n", describeDiscounts(d))
	fmt.Fprintf(w, "tax %.2f\n", calc.ComputeTax(d))
}

func describeDiscounts(d tax.Discounts) string {
	var names []string
	if d.PromptPayment {
		names = append(names, fmt.Sprintf("prompt payment -%.0f%%", tax.PromptPaymentPercent))
	}
	if d.PublicService {
		names = append(names, fmt.Sprintf("public service -%.0f", tax.PublicServiceAmount))
	}
	if d.AccountTransfer {
		names = append(names, fmt.Sprintf("account transfer -%.0f%%", tax.AccountTransferPercent))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
