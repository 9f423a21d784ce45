package output

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// buildTestReport runs a small seeded batch of the example household.
func buildTestReport(t *testing.T) *Report {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = prev })

	cfg := config.NewInputParser().CreateExampleConfiguration()
	cfg.Simulations = 40
	sim := calculation.NewMonteCarloSimulator(cfg, nil, calculation.MonteCarloConfig{Seed: 7, StartYear: 2025, Workers: 4})
	batch, err := sim.Run(context.Background())
	require.NoError(t, err)

	report, err := NewReport(cfg, batch)
	require.NoError(t, err)
	return report
}
