package calculation

import (
	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// CashReturnRate is the fixed nominal rate earned by the cash account.
var CashReturnRate = decimal.RequireFromString("0.015")

// WeightedReturn blends the equity and bond draws by the allocation
// percentages.
func WeightedReturn(stockRate, bondRate decimal.Decimal, a domain.ReturnAssumptions) decimal.Decimal {
	return stockRate.Mul(money.Percent(a.StockPercentage)).Add(bondRate.Mul(money.Percent(a.BondPercentage)))
}

// NetSurplus is income left after expenses, tax and contributions.
func NetSurplus(income, expenses, tax, contributions decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses).Sub(tax).Sub(contributions)
}

// Ledger owns the five account balances of one trajectory. It is never
// shared between trajectories.
type Ledger struct {
	balances domain.AccountBalances
}

// NewLedger seeds a ledger with starting balances
func NewLedger(initial domain.AccountBalances) *Ledger {
	return &Ledger{balances: initial.Clone()}
}

// Snapshot returns a copy of the current balances for recording.
func (l *Ledger) Snapshot() domain.AccountBalances {
	return l.balances.Clone()
}

// Returns computes this year's investment return per account. The
// portfolio total is measured against the rolling opening balance.
func (l *Ledger) Returns(opening, weighted decimal.Decimal) domain.YearlyReturns {
	return domain.YearlyReturns{
		Self401k:    l.balances.Self401k.Mul(weighted),
		Partner401k: l.balances.Partner401k.Mul(weighted),
		RothIRA:     l.balances.RothIRA.Mul(weighted),
		Brokerage:   l.balances.Brokerage.Mul(weighted),
		Cash:        l.balances.Cash.Mul(CashReturnRate),
		Total:       opening.Mul(weighted),
	}
}

// Apply books one year of contributions, returns and draws. A positive
// net surplus is swept into the brokerage account.
func (l *Ledger) Apply(ret domain.YearlyReturns, draws domain.YearlyDraws, contrib domain.Contributions, netSurplus decimal.Decimal) {
	b := &l.balances
	b.Self401k = b.Self401k.Add(contrib.Self).Add(ret.Self401k).Sub(draws.Self401k)
	b.Partner401k = b.Partner401k.Add(contrib.Partner).Add(ret.Partner401k).Sub(draws.Partner401k)
	b.RothIRA = b.RothIRA.Add(ret.RothIRA).Sub(draws.RothIRA)
	b.Cash = b.Cash.Add(ret.Cash).Sub(draws.Cash)

	b.Brokerage = b.Brokerage.Add(ret.Brokerage).Sub(draws.Brokerage)
	if netSurplus.IsPositive() {
		b.Brokerage = b.Brokerage.Add(netSurplus)
	}
}
