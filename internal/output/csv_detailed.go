package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
)

// detailedColumn extracts one flattened field of a yearly cash flow.
type detailedColumn struct {
	name string
	get  func(cf domain.YearlyCashFlow) string
}

func amount(f func(cf domain.YearlyCashFlow) decimal.Decimal) func(domain.YearlyCashFlow) string {
	return func(cf domain.YearlyCashFlow) string { return f(cf).StringFixed(2) }
}

func rate(f func(cf domain.YearlyCashFlow) decimal.Decimal) func(domain.YearlyCashFlow) string {
	return func(cf domain.YearlyCashFlow) string { return f(cf).StringFixed(6) }
}

// detailedColumns lists the flattened cash-flow columns in export order.
var detailedColumns = []detailedColumn{
	{"year", func(cf domain.YearlyCashFlow) string { return intToString(cf.Year) }},
	{"self_age", func(cf domain.YearlyCashFlow) string { return intToString(cf.SelfAge) }},
	{"partner_age", func(cf domain.YearlyCashFlow) string { return intToString(cf.PartnerAge) }},
	{"beginning_balance", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.BeginningBalance })},
	{"portfolio_draw", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.PortfolioDraw })},
	{"ending_balance", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.EndingBalance })},
	{"income_self_earnings", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.SelfEarnings })},
	{"income_partner_earnings", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.PartnerEarnings })},
	{"income_self_social_security", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.SelfSocialSecurity })},
	{"income_partner_social_security", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.PartnerSocialSecurity })},
	{"income_self_pension", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.SelfPension })},
	{"income_partner_pension", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.PartnerPension })},
	{"income_rental", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.Rental })},
	{"income_total", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Income.Total() })},
	{"investment_return_self_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.Self401k })},
	{"investment_return_partner_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.Partner401k })},
	{"investment_return_roth_ira", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.RothIRA })},
	{"investment_return_brokerage", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.Brokerage })},
	{"investment_return_cash", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.Cash })},
	{"investment_return_total", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.InvestmentReturn.Total })},
	{"expenses_basic", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.Basic })},
	{"expenses_mortgage", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.Mortgage })},
	{"expenses_self_healthcare", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.SelfHealthcare })},
	{"expenses_partner_healthcare", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.PartnerHealthcare })},
	{"expenses_one_time", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.OneTime })},
	{"expenses_total", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Expenses.Total() })},
	{"tax", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Tax })},
	{"draws_self_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.Self401k })},
	{"draws_partner_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.Partner401k })},
	{"draws_roth_ira", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.RothIRA })},
	{"draws_brokerage", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.Brokerage })},
	{"draws_cash", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.Cash })},
	{"draws_total", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Draws.Total })},
	{"return_rate", rate(domain.YearlyCashFlow.ReturnRate)},
	{"withdrawal_rate", rate(domain.YearlyCashFlow.WithdrawalRate)},
	{"drawdown_rate", rate(domain.YearlyCashFlow.DrawdownRate)},
	{"end_value_constant_currency", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.EndValueConstantCurrency })},
	{"downsize_proceeds", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.DownsizeProceeds })},
	{"windfall_amount", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.WindfallAmount })},
	{"account_balances_self_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.AccountBalances.Self401k })},
	{"account_balances_partner_401k", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.AccountBalances.Partner401k })},
	{"account_balances_roth_ira", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.AccountBalances.RothIRA })},
	{"account_balances_brokerage", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.AccountBalances.Brokerage })},
	{"account_balances_cash", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.AccountBalances.Cash })},
	{"self_contribution", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Contributions.Self })},
	{"partner_contribution", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.Contributions.Partner })},
	{"expense_adjustment", amount(func(cf domain.YearlyCashFlow) decimal.Decimal { return cf.ExpenseAdjustment })},
	{"simulation_id", func(cf domain.YearlyCashFlow) string { return intToString(cf.SimulationID) }},
}

// DetailedColumns returns the flattened cash-flow header in export order.
func DetailedColumns() []string {
	names := make([]string, 0, len(detailedColumns)+1)
	names = append(names, "percentile")
	for _, c := range detailedColumns {
		names = append(names, c.name)
	}
	return names
}

// CSVDetailedExporter flattens every yearly cash flow of the percentile
// trajectories into one row per year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(DetailedColumns()); err != nil {
		return nil, err
	}
	for _, ps := range report.Percentiles {
		for _, cf := range ps.CashFlows {
			if err := w.Write(FlattenCashFlow(ps.Percent, cf)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FlattenCashFlow renders one cash flow as a detailed CSV row.
func FlattenCashFlow(percent int, cf domain.YearlyCashFlow) []string {
	row := make([]string, 0, len(detailedColumns)+1)
	row = append(row, intToString(percent))
	for _, c := range detailedColumns {
		row = append(row, c.get(cf))
	}
	return row
}
