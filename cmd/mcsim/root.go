package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/household-montecarlo/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Setting keys shared by flags, the mcsim.yaml file and MCSIM_* variables.
const (
	keyLogLevel    = "log-level"
	keyPretty      = "pretty"
	keyFormat      = "format"
	keyWorkers     = "workers"
	keySeed        = "seed"
	keyOutputDir   = "output-dir"
	keyHistory     = "history"
	keyWaterfall   = "waterfall"
	keySimulations = "simulations"
	keyStartYear   = "start-year"
)

// app carries the resolved settings and logger for one invocation.
type app struct {
	v   *viper.Viper
	out io.Writer
	log zerolog.Logger
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "mcsim",
		Short: "Household retirement Monte Carlo solvency simulator",
		Long: `mcsim projects a two-person household's finances year by year until life
expectancy, repeats the projection under randomized market returns and
inflation, and reports how often the portfolio stays solvent.

Examples:
  mcsim example household.yaml       # write a starter configuration
  mcsim validate household.yaml      # check a configuration
  mcsim run household.yaml           # run and print the console report
  mcsim run params.csv -f json -o reports/`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.String(keyLogLevel, "warn", "Log level (debug, info, warn, error)")
	pf.Bool(keyPretty, false, "Human readable log output")
	for _, key := range []string{keyLogLevel, keyPretty} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newExampleCommand(a))
	rootCmd.AddCommand(newFormatsCommand(a))
	rootCmd.AddCommand(newLimitsCommand(a))

	a.v.SetConfigName("mcsim")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	a.v.AddConfigPath("$HOME")
	a.v.SetEnvPrefix("MCSIM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	return rootCmd
}

// initialize reads the optional settings file and builds the logger.
func (a *app) initialize() error {
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}
	a.log = logger.New(logger.Config{
		Level:  a.v.GetString(keyLogLevel),
		Pretty: a.v.GetBool(keyPretty),
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("loaded settings")
	}
	return nil
}
