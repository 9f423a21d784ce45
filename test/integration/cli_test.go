package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
	"github.com/rpgo/household-montecarlo/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveConfigurationRoundTrip(t *testing.T) {
	cfg := loadExample(t)
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	reloaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Seed, reloaded.Seed)
	assert.Equal(t, cfg.Rental.EndYear, reloaded.Rental.EndYear)
	assert.True(t, cfg.Returns.StockStdDev.Equal(reloaded.Returns.StockStdDev))
}

func TestCustomHistoryAndWaterfall(t *testing.T) {
	cfg := loadExample(t)
	cfg.ReturnModel = "empirical"

	path := filepath.Join(t.TempDir(), "history.csv")
	table := "year,equity_return,bond_return\n2000,-9.1,16.7\n2001,-11.9,5.6\n2002,-22.1,15.1\n2003,28.7,0.4\n2004,10.9,4.5\n"
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))
	history, err := calculation.LoadHistoricalReturns(path)
	require.NoError(t, err)
	require.Equal(t, 5, history.Len())

	waterfall, err := calculation.ParseWaterfall([]string{"cash", "brokerage", "roth_ira", "self_401k", "partner_401k"})
	require.NoError(t, err)

	sim := calculation.NewMonteCarloSimulator(cfg, history, calculation.MonteCarloConfig{NumSimulations: 10, Waterfall: waterfall})
	batch, err := sim.Run(t.Context())
	require.NoError(t, err)

	for _, tr := range batch.Trajectories {
		for _, cf := range tr.CashFlows {
			assert.GreaterOrEqual(t, cf.StockReturnRate.InexactFloat64(), -0.2211)
			assert.LessOrEqual(t, cf.StockReturnRate.InexactFloat64(), 0.2871)
		}
	}
}
