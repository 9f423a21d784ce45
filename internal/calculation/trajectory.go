package calculation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidHorizon is returned when life expectancy does not exceed the current age.
	ErrInvalidHorizon = errors.New("invalid simulation horizon")
	// ErrNoAccounts is returned when the withdrawal order names no accounts.
	ErrNoAccounts = errors.New("no accounts to draw from")
)

// TrajectoryDriver simulates one household path year by year
type TrajectoryDriver struct {
	cfg       *domain.SimulationConfig
	startYear int
	horizon   int

	returns       *ReturnModelProvider
	income        *IncomeCalculator
	expenses      *ExpenseCalculator
	contributions *ContributionCalculator
	waterfall     Waterfall
	logger        Logger
}

// NewTrajectoryDriver validates the configuration and wires the calculators.
func NewTrajectoryDriver(cfg *domain.SimulationConfig, startYear int, returns *ReturnModelProvider, waterfall Waterfall) (*TrajectoryDriver, error) {
	if cfg == nil {
		return nil, errors.New("simulation config is required")
	}
	horizon := cfg.HorizonYears()
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: life expectancy %d, current age %d", ErrInvalidHorizon, cfg.LifeExpectancy, cfg.Self.CurrentAge)
	}
	if len(waterfall) == 0 {
		return nil, ErrNoAccounts
	}
	if returns == nil {
		return nil, errors.New("return model provider is required")
	}

	return &TrajectoryDriver{
		cfg:           cfg,
		startYear:     startYear,
		horizon:       horizon,
		returns:       returns,
		income:        NewIncomeCalculator(cfg),
		expenses:      NewExpenseCalculator(cfg),
		contributions: NewContributionCalculator(cfg, startYear),
		waterfall:     waterfall,
		logger:        NopLogger{},
	}, nil
}

// SetLogger sets the logger for the driver
func (d *TrajectoryDriver) SetLogger(l Logger) {
	if l == nil {
		d.logger = NopLogger{}
		return
	}
	d.logger = l
}

// Horizon returns the number of simulated years.
func (d *TrajectoryDriver) Horizon() int { return d.horizon }

// StartYear returns the calendar year of simulation year 0.
func (d *TrajectoryDriver) StartYear() int { return d.startYear }

// Run simulates trajectory id using rng as its only source of randomness.
func (d *TrajectoryDriver) Run(id int, rng *rand.Rand) (domain.SimulationResult, error) {
	series, err := d.returns.Generate(rng, d.horizon)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("trajectory %d: %w", id, err)
	}

	cfg := d.cfg
	ledger := NewLedger(cfg.InitialBalances())
	savings := cfg.OpeningPortfolio()
	basic := cfg.AnnualExpense

	flows := make([]domain.YearlyCashFlow, 0, d.horizon)
	depletionYear, depleted := 0, false

	for y := 0; y < d.horizon; y++ {
		if savings.IsNegative() {
			savings = domain.DepletionFloor
		}
		calendarYear := d.startYear + y

		income := d.income.Yearly(y, calendarYear)
		contrib := d.contributions.Yearly(y)

		adjustment := d.expenses.ExpenseAdjustment(calendarYear)
		basic = basic.Add(adjustment)
		inflation := decimal.Zero
		if y > 0 {
			inflation = d.expenses.DrawInflation(rng)
		}
		basic = d.expenses.AdjustBase(basic, y, inflation)
		expenses := d.expenses.Yearly(y, calendarYear, basic)

		incomeTotal, expenseTotal := income.Total(), expenses.Total()
		decision := DecideDraw(incomeTotal, expenseTotal, cfg.TaxRate)
		draws := d.waterfall.Allocate(decision.Withdrawal, ledger.Snapshot())

		stock := decimal.NewFromFloat(series.Equity[y])
		bond := decimal.NewFromFloat(series.Bond[y])
		ret := ledger.Returns(savings, WeightedReturn(stock, bond, cfg.Returns))

		downsize := decimal.Zero
		if y == cfg.Downsize.YearsFromStart {
			downsize = cfg.Downsize.NetProceeds
		}
		windfall := domain.SumForYear(cfg.Windfalls, calendarYear)

		ledger.Apply(ret, draws, contrib, NetSurplus(incomeTotal, expenseTotal, decision.TotalTax, contrib.Total()))

		ending := savings.Add(ret.Total).Add(incomeTotal).Sub(expenseTotal).Sub(decision.TotalTax)

		cf := domain.YearlyCashFlow{
			SimulationID:             id,
			YearIndex:                y,
			Year:                     calendarYear,
			SelfAge:                  cfg.Self.CurrentAge + y,
			PartnerAge:               cfg.Partner.CurrentAge + y,
			Income:                   income,
			Expenses:                 expenses,
			Tax:                      decision.TotalTax,
			BeginningBalance:         savings,
			EndingBalance:            ending,
			EndValueConstantCurrency: money.Deflate(ending, cfg.InflationMean, y+1),
			PortfolioDraw:            decision.Withdrawal,
			Draws:                    draws,
			StockReturnRate:          stock,
			BondReturnRate:           bond,
			InvestmentReturn:         ret,
			Contributions:            contrib,
			AccountBalances:          ledger.Snapshot(),
			DownsizeProceeds:         downsize,
			WindfallAmount:           windfall,
			ExpenseAdjustment:        adjustment,
		}
		flows = append(flows, cf)

		if ending.IsNegative() && !depleted {
			depleted, depletionYear = true, calendarYear
			d.logger.Debugf("trajectory %d depleted in %d (ending balance %s)", id, calendarYear, ending.StringFixed(0))
		}

		savings = cf.NextOpeningBalance()
	}

	if !depleted {
		depletionYear = d.startYear + d.horizon - 1
	}

	return domain.SimulationResult{
		SimulationID:    id,
		YearOfDepletion: depletionYear,
		FinalBalance:    savings,
		Success:         !savings.IsNegative(),
		CashFlows:       flows,
	}, nil
}
