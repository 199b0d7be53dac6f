package tax

// Discount amounts offered on the base tax.
const (
	PromptPaymentPercent   = 10.0
	PublicServiceAmount    = 50000.0
	AccountTransferPercent = 5.0
)

const (
	promptPaymentFactor   = 0.90
	accountTransferFactor = 0.95
)

// Discounts selects which discounts apply to a payment.
type Discounts struct {
	PromptPayment   bool `json:"prompt_payment"`
	PublicService   bool `json:"public_service"`
	AccountTransfer bool `json:"account_transfer"`
}

// Policy tunes how discounts compose. The zero value is the historical
// behavior: no clamping, so a large fixed deduction can yield a negative amount.
type Policy struct {
	ClampAtZero bool
}

// Apply discounts base in a fixed order: prompt payment (x0.90), then the
// public service deduction (-50000), then account transfer (x0.95).
func (p Policy) Apply(base float64, d Discounts) float64 {
	amount := base
	if d.PromptPayment {
		amount *= promptPaymentFactor
	}
	if d.PublicService {
		amount -= PublicServiceAmount
	}
	if d.AccountTransfer {
		amount *= accountTransferFactor
	}
	if p.ClampAtZero && amount < 0 {
		return 0
	}
	return amount
}

// Apply discounts base with the default policy.
func Apply(base float64, d Discounts) float64 {
	return Policy{}.Apply(base, d)
}

// Base returns the undiscounted tax for price under table.
func Base(table *Table, price float64) float64 {
	return price * table.RateFor(price) / 100
}
