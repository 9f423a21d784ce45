package calculation

import (
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testStartYear = 2025

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixtureConfig returns a household with deterministic returns and
// inflation: every standard deviation is zero, so a normal draw always
// equals its mean.
func fixtureConfig() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		Self: domain.PersonConfig{
			CurrentAge:             60,
			RetirementAge:          65,
			AnnualEarnings:         d("100000"),
			EarningsGrowth:         d("0.03"),
			SocialSecurity:         d("30000"),
			SocialSecurityStartAge: 67,
			HealthcareCost:         d("5000"),
			HealthcareStartAge:     60,
			Balance401k:            d("400000"),
		},
		Partner: domain.PersonConfig{
			CurrentAge:             58,
			RetirementAge:          65,
			AnnualEarnings:         d("50000"),
			EarningsGrowth:         d("0.02"),
			SocialSecurity:         d("15000"),
			SocialSecurityStartAge: 67,
			Balance401k:            d("200000"),
		},
		LifeExpectancy:        90,
		StartYear:             testStartYear,
		RothIRABalance:        d("100000"),
		BrokerageBalance:      d("250000"),
		CashBalance:           d("50000"),
		TaxRate:               d("0.15"),
		AnnualExpense:         d("80000"),
		AnnualExpenseDecrease: d("0.005"),
		InflationMean:         d("0.025"),
		InflationStdDev:       decimal.Zero,
		COLARate:              d("0.015"),
		Returns: domain.ReturnAssumptions{
			StockPercentage: d("60"),
			BondPercentage:  d("40"),
			StockMean:       d("0.07"),
			StockStdDev:     decimal.Zero,
			BondMean:        d("0.03"),
			BondStdDev:      decimal.Zero,
		},
		Simulations: 20,
		ReturnModel: domain.ReturnModelNormal,
		Seed:        42,
		Downsize:    domain.DownsizeEvent{YearsFromStart: -1},
	}
}

func newTestDriver(t *testing.T, cfg *domain.SimulationConfig) *TrajectoryDriver {
	t.Helper()
	history, err := DefaultHistoricalReturns()
	require.NoError(t, err)
	provider, err := NewReturnModelProvider(cfg.ReturnModel, cfg.Returns, history)
	require.NoError(t, err)
	driver, err := NewTrajectoryDriver(cfg, testStartYear, provider, DefaultWaterfall)
	require.NoError(t, err)
	return driver
}

func runTrajectory(t *testing.T, cfg *domain.SimulationConfig) domain.SimulationResult {
	t.Helper()
	res, err := newTestDriver(t, cfg).Run(0, NewTrajectoryRand(cfg.Seed, 0))
	require.NoError(t, err)
	return res
}

func decimalEqual(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}
