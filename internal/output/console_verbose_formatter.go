package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the full year-by-year ledger of every
// percentile trajectory as plain text.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf, "DETAILED HOUSEHOLD CASH-FLOW LEDGER")
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintf(&buf, "Run %s, seed %d, %s, %d simulations\n", report.RunID, report.Seed, report.ReturnModel.Label(), report.Summary.Simulations)
	fmt.Fprintf(&buf, "Success rate: %s\n", FormatPercentage(report.Summary.SuccessRate))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range report.Assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, ps := range report.Percentiles {
		title := fmt.Sprintf("%s (%dth percentile, simulation %d)", strings.ToUpper(ps.Label), ps.Percent, ps.SimulationID)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		fmt.Fprintf(&buf, "Ending balance: %s (%s in today's dollars), depletes: %s, depleted: %s\n",
			FormatCurrency(ps.EndingBalance), FormatCurrency(ps.EndingBalanceToday), ps.DepletionLabel(), boolToString(ps.Depleted))
		fmt.Fprintf(&buf, "Return rate: median %s, mean %s, std dev %s, geometric %s (%d up / %d down years)\n",
			FormatRateFloat(ps.MedianReturnRate), FormatRateFloat(ps.MeanReturnRate),
			FormatRateFloat(ps.StdDevReturnRate), FormatRateFloat(ps.GeometricReturnRate),
			ps.PositiveReturnYears, ps.NegativeReturnYears)
		fmt.Fprintln(&buf)

		writeRetirementTransition(&buf, report.Config, ps)
		writeLedger(&buf, ps.CashFlows)
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

// writeRetirementTransition compares the last working year with the first
// year in which either partner is retired.
func writeRetirementTransition(buf *bytes.Buffer, cfg *domain.SimulationConfig, ps calculation.PercentileScenario) {
	if cfg == nil {
		return
	}
	first := -1
	for i := range ps.CashFlows {
		if cfg.AnyRetired(i) {
			first = i
			break
		}
	}
	if first <= 0 {
		return
	}
	working, retired := ps.CashFlows[first-1], ps.CashFlows[first]

	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", "COMPONENT", intToString(working.Year), intToString(retired.Year), "DIFFERENCE")
	fmt.Fprintln(buf, strings.Repeat("-", 83))
	cmpLine(buf, "  Earnings", working.Income.SelfEarnings.Add(working.Income.PartnerEarnings), retired.Income.SelfEarnings.Add(retired.Income.PartnerEarnings))
	cmpLine(buf, "  Social Security", working.Income.SelfSocialSecurity.Add(working.Income.PartnerSocialSecurity), retired.Income.SelfSocialSecurity.Add(retired.Income.PartnerSocialSecurity))
	cmpLine(buf, "  Pension", working.Income.SelfPension.Add(working.Income.PartnerPension), retired.Income.SelfPension.Add(retired.Income.PartnerPension))
	cmpLine(buf, "  Rental", working.Income.Rental, retired.Income.Rental)
	cmpLine(buf, "TOTAL INCOME", working.Income.Total(), retired.Income.Total())
	cmpLine(buf, "TOTAL EXPENSES", working.Expenses.Total(), retired.Expenses.Total())
	cmpLine(buf, "TAX", working.Tax, retired.Tax)
	cmpLine(buf, "PORTFOLIO DRAW", working.PortfolioDraw, retired.PortfolioDraw)
	cmpLine(buf, "401(k) CONTRIBUTIONS", working.Contributions.Total(), retired.Contributions.Total())
	fmt.Fprintln(buf)
}

func writeLedger(buf *bytes.Buffer, flows []domain.YearlyCashFlow) {
	fmt.Fprintf(buf, "%-6s %-7s %14s %12s %12s %12s %12s %14s %9s %9s\n",
		"Year", "Ages", "Beginning", "Income", "Expenses", "Draw", "Return", "Ending", "Rate", "Drawdown")
	fmt.Fprintln(buf, strings.Repeat("-", 116))
	for _, cf := range flows {
		fmt.Fprintf(buf, "%-6d %-7s %14s %12s %12s %12s %12s %14s %9s %9s\n",
			cf.Year,
			fmt.Sprintf("%d/%d", cf.SelfAge, cf.PartnerAge),
			FormatCurrency(cf.BeginningBalance),
			FormatCurrency(cf.Income.Total()),
			FormatCurrency(cf.Expenses.Total()),
			FormatCurrency(cf.PortfolioDraw),
			FormatCurrency(cf.InvestmentReturn.Total),
			FormatCurrency(cf.EndingBalance),
			FormatPercentage(cf.ReturnRate()),
			FormatPercentage(cf.DrawdownRate()),
		)
	}
}

func cmpLine(buf *bytes.Buffer, label string, before, after decimal.Decimal) {
	diff := after.Sub(before)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(before), FormatCurrency(after), FormatCurrency(diff))
}
