package calculation

import (
	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// CatchUpAge is the age from which 401(k) catch-up contributions apply.
const CatchUpAge = 50

// ContributionLimit is the statutory employee 401(k) limit for a tax year
type ContributionLimit struct {
	Year    int             `json:"year"`
	Limit   decimal.Decimal `json:"limit"`
	CatchUp decimal.Decimal `json:"catch_up"`
}

// contributionLimits is ordered by year, newest last.
var contributionLimits = []ContributionLimit{
	{Year: 2021, Limit: decimal.NewFromInt(19500), CatchUp: decimal.NewFromInt(6500)},
	{Year: 2022, Limit: decimal.NewFromInt(20000), CatchUp: decimal.NewFromInt(6500)},
	{Year: 2023, Limit: decimal.NewFromInt(22500), CatchUp: decimal.NewFromInt(7500)},
	{Year: 2024, Limit: decimal.NewFromInt(23000), CatchUp: decimal.NewFromInt(7500)},
	{Year: 2025, Limit: decimal.NewFromInt(23500), CatchUp: decimal.NewFromInt(7500)},
}

// LimitsFor returns the latest published limits at or before year. Years
// before the table yield zero limits.
func LimitsFor(year int) ContributionLimit {
	for i := len(contributionLimits) - 1; i >= 0; i-- {
		if contributionLimits[i].Year <= year {
			return contributionLimits[i]
		}
	}
	return ContributionLimit{Year: year, Limit: decimal.Zero, CatchUp: decimal.Zero}
}

// EscalatedLimits projects the base-year limits forward by COLA.
func EscalatedLimits(startYear int, cola decimal.Decimal, years int) []ContributionLimit {
	base := LimitsFor(startYear)
	out := make([]ContributionLimit, 0, years)
	for y := 0; y < years; y++ {
		out = append(out, ContributionLimit{
			Year:    startYear + y,
			Limit:   money.Compound(base.Limit, cola, y),
			CatchUp: money.Compound(base.CatchUp, cola, y),
		})
	}
	return out
}

// ContributionCalculator computes per-person tax-deferred contributions
type ContributionCalculator struct {
	cfg  *domain.SimulationConfig
	base ContributionLimit
}

// NewContributionCalculator anchors the statutory limits to the start year.
func NewContributionCalculator(cfg *domain.SimulationConfig, startYear int) *ContributionCalculator {
	return &ContributionCalculator{cfg: cfg, base: LimitsFor(startYear)}
}

// Annual returns the total contribution (employee plus employer) for one
// person in simulation year y.
func (cc *ContributionCalculator) Annual(p domain.PersonConfig, y int) decimal.Decimal {
	age := p.CurrentAge + y
	if p.IsRetired(age) {
		return decimal.Zero
	}

	limit := money.Compound(cc.base.Limit, cc.cfg.COLARate, y)
	catchUp := decimal.Zero
	if age >= CatchUpAge {
		catchUp = money.Compound(cc.base.CatchUp, cc.cfg.COLARate, y)
	}
	ceiling := limit.Add(catchUp)

	employee := ceiling
	if !p.MaximizeContribution {
		employee = money.Min(money.Compound(p.Contribution401k, p.EarningsGrowth, y), ceiling)
	}
	employer := money.Compound(p.EmployerContribution401k, p.EarningsGrowth, y)
	return employee.Add(employer)
}

// Yearly returns both partners' contributions for simulation year y.
func (cc *ContributionCalculator) Yearly(y int) domain.Contributions {
	return domain.Contributions{
		Self:    cc.Annual(cc.cfg.Self, y),
		Partner: cc.Annual(cc.cfg.Partner, y),
	}
}
