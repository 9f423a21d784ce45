package output

import (
	"fmt"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the modeling assumptions behind a run, taken
// from the configuration values actually used.
func GenerateAssumptions(cfg *domain.SimulationConfig) []string {
	r := cfg.Returns
	assumptions := []string{
		fmt.Sprintf("Return model: %s", cfg.ReturnModel.Label()),
		fmt.Sprintf("Allocation: %s%% stocks / %s%% bonds", r.StockPercentage.StringFixed(0), r.BondPercentage.StringFixed(0)),
		fmt.Sprintf("Stocks: mean %s, std dev %s", money.FormatRate(r.StockMean), money.FormatRate(r.StockStdDev)),
		fmt.Sprintf("Bonds: mean %s, std dev %s", money.FormatRate(r.BondMean), money.FormatRate(r.BondStdDev)),
		fmt.Sprintf("Cash earns a fixed %s annually", money.FormatRate(calculation.CashReturnRate)),
		fmt.Sprintf("Expense inflation: mean %s, std dev %s", money.FormatRate(cfg.InflationMean), money.FormatRate(cfg.InflationStdDev)),
		fmt.Sprintf("Social Security COLA: %s annually", money.FormatRate(cfg.COLARate)),
		fmt.Sprintf("Flat tax rate on income and portfolio draws: %s", money.FormatRate(cfg.TaxRate)),
	}
	if cfg.AnnualExpenseDecrease.IsPositive() {
		assumptions = append(assumptions, fmt.Sprintf("Real living expenses decline %s per year after retirement", money.FormatRate(cfg.AnnualExpenseDecrease)))
	}
	if cfg.InitialSavings != nil {
		assumptions = append(assumptions, fmt.Sprintf("Opening portfolio overridden to %s", money.FormatCurrency(*cfg.InitialSavings)))
	}
	if cfg.Downsize.YearsFromStart >= 0 && !cfg.Downsize.NetProceeds.Equal(decimal.Zero) {
		assumptions = append(assumptions, fmt.Sprintf("Home downsize adds %s after year %d", money.FormatCurrency(cfg.Downsize.NetProceeds), cfg.Downsize.YearsFromStart))
	}
	return assumptions
}
