package calculation

import (
	"fmt"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// DrawState is the outcome of the yearly tax and withdrawal decision
type DrawState int

const (
	// DrawCovered means after-tax income meets total expense.
	DrawCovered DrawState = iota
	// DrawRequired means the shortfall must come from the portfolio.
	DrawRequired
)

func (s DrawState) String() string {
	if s == DrawRequired {
		return "draw_required"
	}
	return "covered"
}

// DrawDecision carries the flat-rate tax and the portfolio withdrawal for a year
type DrawDecision struct {
	State        DrawState
	EstimatedTax decimal.Decimal // tax on gross income
	PretaxDraw   decimal.Decimal // shortfall before tax on the draw
	PortfolioTax decimal.Decimal // tax on the draw itself
	Withdrawal   decimal.Decimal // amount requested from the accounts
	TotalTax     decimal.Decimal
}

// DecideDraw applies the flat effective-rate policy. Income is taxed at
// the rate; when after-tax income cannot cover expense the shortfall is
// drawn, and the draw is grossed up by its own tax at the same rate.
func DecideDraw(grossIncome, totalExpense, taxRate decimal.Decimal) DrawDecision {
	estimatedTax := grossIncome.Mul(taxRate)
	afterTax := grossIncome.Sub(estimatedTax)

	if totalExpense.LessThanOrEqual(afterTax) {
		return DrawDecision{
			State:        DrawCovered,
			EstimatedTax: estimatedTax,
			PretaxDraw:   decimal.Zero,
			PortfolioTax: decimal.Zero,
			Withdrawal:   decimal.Zero,
			TotalTax:     estimatedTax,
		}
	}

	pretax := totalExpense.Sub(afterTax)
	portfolioTax := pretax.Mul(taxRate)
	return DrawDecision{
		State:        DrawRequired,
		EstimatedTax: estimatedTax,
		PretaxDraw:   pretax,
		PortfolioTax: portfolioTax,
		Withdrawal:   pretax.Add(portfolioTax),
		TotalTax:     estimatedTax.Add(portfolioTax),
	}
}

// Waterfall is the ordered list of accounts a withdrawal is taken from
type Waterfall []domain.AccountKind

// DefaultWaterfall draws taxable money first and tax-free money last.
var DefaultWaterfall = Waterfall{
	domain.AccountBrokerage,
	domain.AccountSelf401k,
	domain.AccountPartner401k,
	domain.AccountCash,
	domain.AccountRothIRA,
}

// ParseWaterfall builds an order from account names. Every account must
// appear exactly once.
func ParseWaterfall(names []string) (Waterfall, error) {
	if len(names) == 0 {
		return DefaultWaterfall, nil
	}
	seen := make(map[domain.AccountKind]bool, len(names))
	w := make(Waterfall, 0, len(names))
	for _, n := range names {
		k, err := domain.ParseAccountKind(n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("account %s listed twice in withdrawal order", k)
		}
		seen[k] = true
		w = append(w, k)
	}
	if len(w) != len(domain.AllAccounts) {
		return nil, fmt.Errorf("withdrawal order must list all %d accounts, got %d", len(domain.AllAccounts), len(w))
	}
	return w, nil
}

// Allocate takes the requested amount from each account in order, never
// more than the account's positive balance. Any unmet remainder is left as
// a shortfall; Total is what was actually drawn.
func (w Waterfall) Allocate(requested decimal.Decimal, balances domain.AccountBalances) domain.YearlyDraws {
	var draws domain.YearlyDraws
	remaining := money.Max(requested, decimal.Zero)

	for _, k := range w {
		available := money.Max(balances.Get(k), decimal.Zero)
		take := money.Min(remaining, available)
		draws.Set(k, take)
		remaining = remaining.Sub(take)
	}

	draws.Total = money.Max(requested, decimal.Zero).Sub(remaining)
	return draws
}

// Names returns the account names in draw order.
func (w Waterfall) Names() []string {
	out := make([]string, len(w))
	for i, k := range w {
		out[i] = k.String()
	}
	return out
}
