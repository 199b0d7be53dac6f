package cmd

const (
	RootCmdName  = "vehicletax"
	RootCmdShort = "Vehicle ownership tax calculator"
	RootCmdLong  = `vehicletax loads a vehicle catalog and a tiered tax rate table and
computes the ownership tax of each vehicle, with optional discounts for
prompt payment, public service use and account transfer.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Serve the calculator over HTTP"
	ServeCmdLong  = "Start an HTTP API to navigate the catalog and compute taxes."

	TaxCmdName  = "tax"
	TaxCmdShort = "Compute the tax of one vehicle"

	RatesCmdName  = "rates"
	RatesCmdShort = "Print the tax tiers in lookup order"

	ReportCmdName  = "report"
	ReportCmdShort = "Print the catalog with base taxes and aggregates"

	BrowseCmdName  = "browse"
	BrowseCmdShort = "Navigate the catalog interactively"
)

// Configuration keys. Each is also a flag name and, upper-cased with the
// VEHICLETAX_ prefix, an environment variable.
const (
	configKey     = "config"
	catalogKey    = "catalog"
	ratesKey      = "rates"
	strictKey     = "strict-rates"
	legacyYearKey = "legacy-year-sentinel"
	clampKey      = "clamp-at-zero"
	logLevelKey   = "log-level"

	addrKey      = "addr"
	rateLimitKey = "rate-limit"
	burstKey     = "burst"

	indexKey           = "index"
	promptPaymentKey   = "prompt-payment"
	publicServiceKey   = "public-service"
	accountTransferKey = "account-transfer"

	envPrefix = "VEHICLETAX"
)
