package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nekruzvatanshoev/vehicletax/pkg/logger"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/calculator"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var RootCmd = NewRootCmd()

func Execute() {

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

// NewRootCmd returns the root command with every subcommand attached. Each
// call gets its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           RootCmdName,
		Short:         RootCmdShort,
		Long:          RootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(configKey, "", "config file (yaml, json, toml or properties)")
	flags.String(catalogKey, calculator.DefaultCatalogPath, "vehicle catalog file")
	flags.String(ratesKey, calculator.DefaultRatesPath, "tax rate properties file")
	flags.Bool(strictKey, false, "reject overlapping tax tiers")
	flags.Bool(legacyYearKey, false, "never pick vehicles from year 3000 on as the oldest")
	flags.Bool(clampKey, false, "report 0 instead of a negative tax")
	flags.String(logLevelKey, "info", "log level (debug, info, warn, error)")
	v.BindPFlags(flags)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newServeCmd(v),
		newTaxCmd(v),
		newRatesCmd(v),
		newReportCmd(v),
		newBrowseCmd(v),
	)
	return root
}

func initConfig(v *viper.Viper) error {
	path := v.GetString(configKey)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	return logger.New(v.GetString(logLevelKey))
}

func calculatorOptions(v *viper.Viper, log *zap.Logger) calculator.Options {
	opts := calculator.DefaultOptions()
	opts.CatalogPath = v.GetString(catalogKey)
	opts.RatesPath = v.GetString(ratesKey)
	if v.GetBool(strictKey) {
		opts.RateMode = tax.Strict
	}
	opts.LegacyYearSentinel = v.GetBool(legacyYearKey)
	opts.Discounts = tax.Policy{ClampAtZero: v.GetBool(clampKey)}
	opts.Logger = log
	return opts
}

// loadCalculator builds the logger and the calculator for a command run.
func loadCalculator(v *viper.Viper) (*calculator.Calculator, *zap.Logger, error) {
	log, err := newLogger(v)
	if err != nil {
		return nil, nil, err
	}

	calc, err := calculator.Load(calculatorOptions(v, log))
	if err != nil {
		log.Error("failed to load calculator", zap.Error(err))
		log.Sync()
		return nil, nil, err
	}
	return calc, log, nil
}
