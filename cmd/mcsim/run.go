package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
	"github.com/rpgo/household-montecarlo/internal/output"
	"github.com/spf13/cobra"
)

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Run a Monte Carlo batch for a household configuration (YAML or parameter CSV)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.run(ctx, args[0])
		},
	}

	f := cmd.Flags()
	f.StringP(keyFormat, "f", "console", "Output format (see 'mcsim formats'), or 'all'")
	f.IntP(keyWorkers, "w", calculation.DefaultWorkers, "Trajectories simulated concurrently")
	f.Int64(keySeed, 0, "Random seed (0 uses the config seed, else a random one)")
	f.StringP(keyOutputDir, "o", "", "Write the report to this directory instead of stdout")
	f.String(keyHistory, "", "Historical returns CSV for the empirical model (default: embedded table)")
	f.StringSlice(keyWaterfall, nil, "Withdrawal order, e.g. brokerage,cash,self_401k,partner_401k,roth_ira")
	f.IntP(keySimulations, "n", 0, "Number of trajectories (0 uses the config value)")
	f.Int(keyStartYear, 0, "Calendar year of the first simulated year (0 uses the config or current year)")
	for _, key := range []string{keyFormat, keyWorkers, keySeed, keyOutputDir, keyHistory, keyWaterfall, keySimulations, keyStartYear} {
		_ = a.v.BindPFlag(key, f.Lookup(key))
	}
	return cmd
}

func (a *app) run(ctx context.Context, path string) error {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return err
	}

	waterfall, err := calculation.ParseWaterfall(a.v.GetStringSlice(keyWaterfall))
	if err != nil {
		return fmt.Errorf("invalid withdrawal order: %w", err)
	}

	var history *calculation.HistoricalReturns
	if file := a.v.GetString(keyHistory); file != "" {
		history, err = calculation.LoadHistoricalReturns(file)
		if err != nil {
			return err
		}
		for _, issue := range history.ValidateDataQuality() {
			a.log.Warn().Str("file", file).Msg(issue)
		}
	}

	format := output.NormalizeFormatName(a.v.GetString(keyFormat))
	var formatter output.Formatter
	if format != "all" {
		if formatter = output.GetFormatterByName(format); formatter == nil {
			return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
		}
	}

	sim := calculation.NewMonteCarloSimulator(cfg, history, calculation.MonteCarloConfig{
		NumSimulations: a.v.GetInt(keySimulations),
		Seed:           a.v.GetInt64(keySeed),
		StartYear:      a.v.GetInt(keyStartYear),
		Workers:        a.v.GetInt(keyWorkers),
		Waterfall:      waterfall,
	})
	sim.SetLogger(calculation.NewZerologLogger(a.log))

	batch, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	report, err := output.NewReport(cfg, batch)
	if err != nil {
		return err
	}

	dir := a.v.GetString(keyOutputDir)
	if formatter != nil && dir == "" {
		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		_, err = a.out.Write(data)
		return err
	}

	paths, err := output.GenerateReport(report, format, dir)
	if err != nil {
		return err
	}
	saved, err := output.SaveRunConfiguration(report, dir)
	if err != nil {
		return fmt.Errorf("failed to save run configuration: %w", err)
	}
	paths = append(paths, saved)
	for _, p := range paths {
		a.log.Info().Str("path", p).Msg("report written")
		fmt.Fprintln(a.out, p)
	}
	return nil
}
