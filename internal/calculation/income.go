package calculation

import (
	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculateEarnings returns employment earnings for simulation year y.
// Earnings stop in full in the year the person reaches retirement age.
func CalculateEarnings(base, growth decimal.Decimal, year, age, retirementAge int) decimal.Decimal {
	if age >= retirementAge {
		return decimal.Zero
	}
	return money.Compound(base, growth, year)
}

// CalculateSocialSecurity returns the benefit once the start age is reached,
// escalated by COLA for each year past the start age.
func CalculateSocialSecurity(base, cola decimal.Decimal, startAge, age int) decimal.Decimal {
	if age < startAge {
		return decimal.Zero
	}
	return money.Compound(base, cola, age-startAge)
}

// CalculatePension returns the pension once retired, escalated per year of
// retirement.
func CalculatePension(base, increase decimal.Decimal, retirementAge, age int) decimal.Decimal {
	if age < retirementAge {
		return decimal.Zero
	}
	return money.Compound(base, increase, age-retirementAge)
}

// CalculateRental returns rental income for a calendar year inside the
// inclusive rental window.
func CalculateRental(r domain.RentalConfig, calendarYear int) decimal.Decimal {
	if calendarYear < r.StartYear || calendarYear > r.EndYear {
		return decimal.Zero
	}
	return money.Compound(r.Amount, r.Growth, calendarYear-r.StartYear)
}

// IncomeCalculator derives the seven household income streams per year
type IncomeCalculator struct {
	cfg *domain.SimulationConfig
}

// NewIncomeCalculator creates an income calculator for a configuration
func NewIncomeCalculator(cfg *domain.SimulationConfig) *IncomeCalculator {
	return &IncomeCalculator{cfg: cfg}
}

// Yearly returns the income breakdown for simulation year y.
func (ic *IncomeCalculator) Yearly(y, calendarYear int) domain.YearlyIncome {
	self, partner := ic.cfg.Self, ic.cfg.Partner
	selfAge, partnerAge := self.CurrentAge+y, partner.CurrentAge+y

	return domain.YearlyIncome{
		SelfEarnings:          CalculateEarnings(self.AnnualEarnings, self.EarningsGrowth, y, selfAge, self.RetirementAge),
		PartnerEarnings:       CalculateEarnings(partner.AnnualEarnings, partner.EarningsGrowth, y, partnerAge, partner.RetirementAge),
		SelfSocialSecurity:    CalculateSocialSecurity(self.SocialSecurity, ic.cfg.COLARate, self.SocialSecurityStartAge, selfAge),
		PartnerSocialSecurity: CalculateSocialSecurity(partner.SocialSecurity, ic.cfg.COLARate, partner.SocialSecurityStartAge, partnerAge),
		SelfPension:           CalculatePension(self.AnnualPension, self.PensionIncrease, self.RetirementAge, selfAge),
		PartnerPension:        CalculatePension(partner.AnnualPension, partner.PensionIncrease, partner.RetirementAge, partnerAge),
		Rental:                CalculateRental(ic.cfg.Rental, calendarYear),
	}
}
