package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
	"github.com/rpgo/household-montecarlo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a household configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is valid: %d years, %d simulations, %s\n",
				args[0], cfg.HorizonYears(), cfg.Simulations, cfg.ReturnModel.Label())
			return nil
		},
	}
}

func newExampleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example configuration (YAML, or parameter CSV for a .csv file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()
			if len(args) == 0 {
				return parser.WriteYAML(a.out, cfg)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()
			if strings.EqualFold(filepath.Ext(args[0]), ".csv") {
				err = parser.WriteParamsCSV(f, cfg)
			} else {
				err = parser.WriteYAML(f, cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "example configuration written to %s\n", args[0])
			return nil
		},
	}
}

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(a.out, "  %s\n", name)
			}
			fmt.Fprintln(a.out, "  all (console, detailed-csv and json files)")
			fmt.Fprintln(a.out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(a.out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
			return nil
		},
	}
}

func newLimitsCommand(a *app) *cobra.Command {
	var (
		startYear int
		years     int
		cola      string
	)
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print the COLA-escalated 401(k) contribution limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(cola)
			if err != nil {
				return fmt.Errorf("invalid cola %q: %w", cola, err)
			}
			fmt.Fprintf(a.out, "%-6s %12s %12s\n", "Year", "Limit", "Catch-up")
			for _, l := range calculation.EscalatedLimits(startYear, rate, years) {
				fmt.Fprintf(a.out, "%-6d %12s %12s\n", l.Year, l.Limit.StringFixed(2), l.CatchUp.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&startYear, "start-year", 2025, "First year of the schedule")
	cmd.Flags().IntVar(&years, "years", 10, "Number of years to print")
	cmd.Flags().StringVar(&cola, "cola", "0.015", "Annual escalation rate as a fraction")
	return cmd
}
