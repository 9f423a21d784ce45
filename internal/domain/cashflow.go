package domain

import (
	"github.com/shopspring/decimal"
)

// DepletionFloor is the value a negative opening portfolio balance is reset
// to at the start of the next simulated year.
var DepletionFloor = decimal.NewFromInt(-1)

// AccountBalances tracks the five account types of the household
type AccountBalances struct {
	Self401k    decimal.Decimal `json:"self_401k"`
	Partner401k decimal.Decimal `json:"partner_401k"`
	RothIRA     decimal.Decimal `json:"roth_ira"`
	Brokerage   decimal.Decimal `json:"brokerage"`
	Cash        decimal.Decimal `json:"cash"`
}

// Total returns the sum of all account balances
func (b AccountBalances) Total() decimal.Decimal {
	return b.Self401k.Add(b.Partner401k).Add(b.RothIRA).Add(b.Brokerage).Add(b.Cash)
}

// Clone returns an independent copy. decimal.Decimal values are immutable,
// so a value copy of the struct shares no mutable state with the original.
func (b AccountBalances) Clone() AccountBalances {
	return AccountBalances{
		Self401k:    b.Self401k,
		Partner401k: b.Partner401k,
		RothIRA:     b.RothIRA,
		Brokerage:   b.Brokerage,
		Cash:        b.Cash,
	}
}

// YearlyIncome breaks household income into its seven streams
type YearlyIncome struct {
	SelfEarnings          decimal.Decimal `json:"self_earnings"`
	PartnerEarnings       decimal.Decimal `json:"partner_earnings"`
	SelfSocialSecurity    decimal.Decimal `json:"self_social_security"`
	PartnerSocialSecurity decimal.Decimal `json:"partner_social_security"`
	SelfPension           decimal.Decimal `json:"self_pension"`
	PartnerPension        decimal.Decimal `json:"partner_pension"`
	Rental                decimal.Decimal `json:"rental"`
}

// Total returns gross household income
func (i YearlyIncome) Total() decimal.Decimal {
	return i.SelfEarnings.Add(i.PartnerEarnings).
		Add(i.SelfSocialSecurity).Add(i.PartnerSocialSecurity).
		Add(i.SelfPension).Add(i.PartnerPension).
		Add(i.Rental)
}

// YearlyExpenses breaks household spending into its five categories
type YearlyExpenses struct {
	Basic             decimal.Decimal `json:"basic"`
	Mortgage          decimal.Decimal `json:"mortgage"`
	SelfHealthcare    decimal.Decimal `json:"self_healthcare"`
	PartnerHealthcare decimal.Decimal `json:"partner_healthcare"`
	OneTime           decimal.Decimal `json:"one_time"`
}

// Total returns total household expense
func (e YearlyExpenses) Total() decimal.Decimal {
	return e.Basic.Add(e.Mortgage).Add(e.SelfHealthcare).Add(e.PartnerHealthcare).Add(e.OneTime)
}

// YearlyReturns holds investment returns per account and for the portfolio
type YearlyReturns struct {
	Self401k    decimal.Decimal `json:"self_401k"`
	Partner401k decimal.Decimal `json:"partner_401k"`
	RothIRA     decimal.Decimal `json:"roth_ira"`
	Brokerage   decimal.Decimal `json:"brokerage"`
	Cash        decimal.Decimal `json:"cash"`
	Total       decimal.Decimal `json:"total"`
}

// YearlyDraws holds the withdrawal taken from each account
type YearlyDraws struct {
	Self401k    decimal.Decimal `json:"self_401k"`
	Partner401k decimal.Decimal `json:"partner_401k"`
	RothIRA     decimal.Decimal `json:"roth_ira"`
	Brokerage   decimal.Decimal `json:"brokerage"`
	Cash        decimal.Decimal `json:"cash"`
	Total       decimal.Decimal `json:"total"`
}

// Contributions holds the per-person 401(k) contributions for a year
type Contributions struct {
	Self    decimal.Decimal `json:"self"`
	Partner decimal.Decimal `json:"partner"`
}

// Total returns the household contribution
func (c Contributions) Total() decimal.Decimal {
	return c.Self.Add(c.Partner)
}

// YearlyCashFlow is the ledger entry for one simulated year of one trajectory
type YearlyCashFlow struct {
	SimulationID int `json:"simulation_id"`
	YearIndex    int `json:"year_index"`
	Year         int `json:"year"`
	SelfAge      int `json:"self_age"`
	PartnerAge   int `json:"partner_age"`

	Income   YearlyIncome    `json:"income"`
	Expenses YearlyExpenses  `json:"expenses"`
	Tax      decimal.Decimal `json:"tax"`

	BeginningBalance         decimal.Decimal `json:"beginning_balance"`
	EndingBalance            decimal.Decimal `json:"ending_balance"`
	EndValueConstantCurrency decimal.Decimal `json:"end_value_constant_currency"`

	// PortfolioDraw is the amount requested from the accounts, including the
	// tax on the draw itself. Draws.Total is what the accounts could supply.
	PortfolioDraw decimal.Decimal `json:"portfolio_draw"`
	Draws         YearlyDraws     `json:"draws"`

	StockReturnRate  decimal.Decimal `json:"stock_return_rate"`
	BondReturnRate   decimal.Decimal `json:"bond_return_rate"`
	InvestmentReturn YearlyReturns   `json:"investment_return"`

	Contributions   Contributions   `json:"contributions"`
	AccountBalances AccountBalances `json:"account_balances"`

	DownsizeProceeds  decimal.Decimal `json:"downsize_proceeds"`
	WindfallAmount    decimal.Decimal `json:"windfall_amount"`
	ExpenseAdjustment decimal.Decimal `json:"expense_adjustment"`
}

// ReturnRate is the portfolio return as a fraction of the opening balance.
func (cf YearlyCashFlow) ReturnRate() decimal.Decimal {
	if !cf.BeginningBalance.IsPositive() {
		return decimal.Zero
	}
	return cf.InvestmentReturn.Total.Div(cf.BeginningBalance)
}

// WithdrawalRate is the requested draw as a fraction of the opening balance.
func (cf YearlyCashFlow) WithdrawalRate() decimal.Decimal {
	if !cf.BeginningBalance.IsPositive() {
		return decimal.Zero
	}
	return cf.PortfolioDraw.Div(cf.BeginningBalance)
}

// DrawdownRate is the requested draw as a fraction of the ending balance.
func (cf YearlyCashFlow) DrawdownRate() decimal.Decimal {
	if !cf.EndingBalance.IsPositive() {
		return decimal.Zero
	}
	return cf.PortfolioDraw.Div(cf.EndingBalance)
}

// NextOpeningBalance is the balance carried into the following year.
func (cf YearlyCashFlow) NextOpeningBalance() decimal.Decimal {
	return cf.EndingBalance.Add(cf.DownsizeProceeds).Add(cf.WindfallAmount)
}

// SimulationResult is the final state of one trajectory
type SimulationResult struct {
	SimulationID    int              `json:"simulation_id"`
	YearOfDepletion int              `json:"year_of_depletion"`
	FinalBalance    decimal.Decimal  `json:"final_balance"`
	Success         bool             `json:"success"`
	CashFlows       []YearlyCashFlow `json:"cash_flows"`
}

// FirstNegativeYear returns the calendar year of the first negative ending
// balance, if any.
func (r SimulationResult) FirstNegativeYear() (int, bool) {
	for _, cf := range r.CashFlows {
		if cf.EndingBalance.IsNegative() {
			return cf.Year, true
		}
	}
	return 0, false
}

// BatchResult is the outbound contract of a batch run
type BatchResult struct {
	RunID        string             `json:"run_id"`
	Seed         int64              `json:"seed"`
	ReturnModel  ReturnModel        `json:"return_model"`
	StartYear    int                `json:"start_year"`
	HorizonYears int                `json:"horizon_years"`
	SuccessCount int                `json:"success_count"`
	FailureCount int                `json:"failure_count"`
	Trajectories []SimulationResult `json:"trajectories"`
}

// SuccessRate returns the fraction of successful trajectories.
func (b *BatchResult) SuccessRate() decimal.Decimal {
	n := b.SuccessCount + b.FailureCount
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(b.SuccessCount)).Div(decimal.NewFromInt(int64(n)))
}
