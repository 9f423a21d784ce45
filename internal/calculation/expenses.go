package calculation

import (
	"math/rand/v2"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"
)

// MedicareEligibilityAge ends bridge healthcare coverage.
const MedicareEligibilityAge = 65

// CalculateMortgage returns the flat payment while years remain, else zero.
func CalculateMortgage(payment decimal.Decimal, year, yearsRemaining int) decimal.Decimal {
	if year < yearsRemaining {
		return payment
	}
	return decimal.Zero
}

// CalculateHealthcare returns the bridge healthcare cost for one person:
// escalated by the long-run inflation mean from the start age, and zero
// before the start age or from Medicare eligibility onward.
func CalculateHealthcare(cost, inflationMean decimal.Decimal, startAge, age int) decimal.Decimal {
	if age < startAge || age >= MedicareEligibilityAge {
		return decimal.Zero
	}
	return money.Compound(cost, inflationMean, age-startAge)
}

// ExpenseCalculator derives yearly household expenses
type ExpenseCalculator struct {
	cfg *domain.SimulationConfig
}

// NewExpenseCalculator creates an expense calculator for a configuration
func NewExpenseCalculator(cfg *domain.SimulationConfig) *ExpenseCalculator {
	return &ExpenseCalculator{cfg: cfg}
}

// DrawInflation samples one year's inflation rate from the trajectory stream.
func (ec *ExpenseCalculator) DrawInflation(rng *rand.Rand) decimal.Decimal {
	n := distuv.Normal{
		Mu:    ec.cfg.InflationMean.InexactFloat64(),
		Sigma: ec.cfg.InflationStdDev.InexactFloat64(),
		Src:   rng,
	}
	return decimal.NewFromFloat(n.Rand())
}

// AdjustBase escalates the prior year's living expense by the inflation
// draw. Once either partner is retired the expense-decrease rate is
// subtracted from the draw. Year 0 is never escalated.
func (ec *ExpenseCalculator) AdjustBase(prior decimal.Decimal, y int, inflation decimal.Decimal) decimal.Decimal {
	if y == 0 {
		return prior
	}
	rate := inflation
	if ec.cfg.AnyRetired(y) {
		rate = rate.Sub(ec.cfg.AnnualExpenseDecrease)
	}
	return prior.Mul(decimal.NewFromInt(1).Add(rate))
}

// ExpenseAdjustment returns the recurring adjustment scheduled for a calendar year.
func (ec *ExpenseCalculator) ExpenseAdjustment(calendarYear int) decimal.Decimal {
	return domain.SumForYear(ec.cfg.ExpenseAdjustments, calendarYear)
}

// Yearly returns the expense breakdown for simulation year y given the
// already escalated living expense.
func (ec *ExpenseCalculator) Yearly(y, calendarYear int, basic decimal.Decimal) domain.YearlyExpenses {
	self, partner := ec.cfg.Self, ec.cfg.Partner
	return domain.YearlyExpenses{
		Basic:             basic,
		Mortgage:          CalculateMortgage(ec.cfg.MortgagePayment, y, ec.cfg.MortgageYearsRemaining),
		SelfHealthcare:    CalculateHealthcare(self.HealthcareCost, ec.cfg.InflationMean, self.HealthcareStartAge, self.CurrentAge+y),
		PartnerHealthcare: CalculateHealthcare(partner.HealthcareCost, ec.cfg.InflationMean, partner.HealthcareStartAge, partner.CurrentAge+y),
		OneTime:           domain.SumForYear(ec.cfg.OneTimeExpenses, calendarYear),
	}
}
