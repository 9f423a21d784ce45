package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxScheduledSlots is the number of one-time expense, expense adjustment and
// windfall slots a household may configure.
const MaxScheduledSlots = 3

// ReturnModel selects the statistical family used to draw annual returns
type ReturnModel string

const (
	ReturnModelNormal    ReturnModel = "normal"
	ReturnModelStudentT  ReturnModel = "students_t"
	ReturnModelEmpirical ReturnModel = "empirical"
)

var returnModelLabels = map[ReturnModel]string{
	ReturnModelNormal:    "Normal Distribution",
	ReturnModelStudentT:  "Students-T Distribution",
	ReturnModelEmpirical: "Empirical Distribution",
}

// ParseReturnModel accepts either the short identifier or the long label
// used in parameter files ("Students-T Distribution").
func ParseReturnModel(s string) (ReturnModel, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case "normal", "normal distribution":
		return ReturnModelNormal, nil
	case "t", "student-t", "students_t", "students-t", "students-t distribution":
		return ReturnModelStudentT, nil
	case "empirical", "historical", "empirical distribution":
		return ReturnModelEmpirical, nil
	}
	return "", fmt.Errorf("unknown return model %q", s)
}

// Label returns the human readable name of the model.
func (m ReturnModel) Label() string {
	if l, ok := returnModelLabels[m]; ok {
		return l
	}
	return string(m)
}

// Valid reports whether m is one of the supported families.
func (m ReturnModel) Valid() bool {
	_, ok := returnModelLabels[m]
	return ok
}

// UnmarshalText lets YAML and CSV inputs use either spelling.
func (m *ReturnModel) UnmarshalText(text []byte) error {
	parsed, err := ParseReturnModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PersonConfig holds the per-person inputs for one member of the household
type PersonConfig struct {
	CurrentAge    int `yaml:"current_age" json:"current_age"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age"`

	AnnualEarnings decimal.Decimal `yaml:"annual_earnings" json:"annual_earnings"`
	EarningsGrowth decimal.Decimal `yaml:"earnings_growth" json:"earnings_growth"` // also scales 401(k) contributions

	AnnualPension   decimal.Decimal `yaml:"annual_pension" json:"annual_pension"`
	PensionIncrease decimal.Decimal `yaml:"pension_increase" json:"pension_increase"`

	SocialSecurity         decimal.Decimal `yaml:"social_security" json:"social_security"`
	SocialSecurityStartAge int             `yaml:"social_security_start_age" json:"social_security_start_age"`

	HealthcareCost     decimal.Decimal `yaml:"healthcare_cost" json:"healthcare_cost"`
	HealthcareStartAge int             `yaml:"healthcare_start_age" json:"healthcare_start_age"`

	Balance401k              decimal.Decimal `yaml:"balance_401k" json:"balance_401k"`
	Contribution401k         decimal.Decimal `yaml:"contribution_401k" json:"contribution_401k"`
	EmployerContribution401k decimal.Decimal `yaml:"employer_contribution_401k" json:"employer_contribution_401k"`
	MaximizeContribution     bool            `yaml:"maximize_contribution" json:"maximize_contribution"`
}

// IsRetired reports whether the person has reached retirement at the given age.
func (p PersonConfig) IsRetired(age int) bool {
	return age >= p.RetirementAge
}

// RentalConfig describes rental income paid over an inclusive calendar window
type RentalConfig struct {
	StartYear int             `yaml:"start_year" json:"start_year"`
	EndYear   int             `yaml:"end_year" json:"end_year"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Growth    decimal.Decimal `yaml:"growth" json:"growth"`
}

// ReturnAssumptions holds the allocation and distribution parameters.
// Allocation values are whole percentages; means and deviations are fractions.
type ReturnAssumptions struct {
	StockPercentage decimal.Decimal `yaml:"stock_percentage" json:"stock_percentage"`
	BondPercentage  decimal.Decimal `yaml:"bond_percentage" json:"bond_percentage"`
	StockMean       decimal.Decimal `yaml:"stock_mean" json:"stock_mean"`
	StockStdDev     decimal.Decimal `yaml:"stock_std_dev" json:"stock_std_dev"`
	BondMean        decimal.Decimal `yaml:"bond_mean" json:"bond_mean"`
	BondStdDev      decimal.Decimal `yaml:"bond_std_dev" json:"bond_std_dev"`
}

// ScheduledAmount is an amount applied in one exact calendar year
type ScheduledAmount struct {
	Year   int             `yaml:"year" json:"year"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// DownsizeEvent adds net proceeds to the portfolio after the given year offset
type DownsizeEvent struct {
	YearsFromStart int             `yaml:"years_from_start" json:"years_from_start"`
	NetProceeds    decimal.Decimal `yaml:"net_proceeds" json:"net_proceeds"`
}

// SimulationConfig is the full, immutable input for one batch run
type SimulationConfig struct {
	Self           PersonConfig `yaml:"self" json:"self"`
	Partner        PersonConfig `yaml:"partner" json:"partner"`
	LifeExpectancy int          `yaml:"life_expectancy" json:"life_expectancy"`

	// StartYear pins the calendar year of simulation year 0. Zero means the
	// current calendar year.
	StartYear int `yaml:"start_year,omitempty" json:"start_year,omitempty"`

	// InitialSavings overrides the opening portfolio balance. When nil the
	// sum of the account balances is used.
	InitialSavings   *decimal.Decimal `yaml:"initial_savings,omitempty" json:"initial_savings,omitempty"`
	RothIRABalance   decimal.Decimal  `yaml:"roth_ira_balance" json:"roth_ira_balance"`
	BrokerageBalance decimal.Decimal  `yaml:"brokerage_balance" json:"brokerage_balance"`
	CashBalance      decimal.Decimal  `yaml:"cash_balance" json:"cash_balance"`

	TaxRate          decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	FilingStatus     string          `yaml:"filing_status,omitempty" json:"filing_status,omitempty"`
	StateOfResidence string          `yaml:"state_of_residence,omitempty" json:"state_of_residence,omitempty"`

	AnnualExpense          decimal.Decimal `yaml:"annual_expense" json:"annual_expense"`
	AnnualExpenseDecrease  decimal.Decimal `yaml:"annual_expense_decrease" json:"annual_expense_decrease"`
	MortgagePayment        decimal.Decimal `yaml:"mortgage_payment" json:"mortgage_payment"`
	MortgageYearsRemaining int             `yaml:"mortgage_years_remaining" json:"mortgage_years_remaining"`
	InflationMean          decimal.Decimal `yaml:"inflation_mean" json:"inflation_mean"`
	InflationStdDev        decimal.Decimal `yaml:"inflation_std_dev" json:"inflation_std_dev"`
	COLARate               decimal.Decimal `yaml:"cola_rate" json:"cola_rate"`

	Returns ReturnAssumptions `yaml:"returns" json:"returns"`
	Rental  RentalConfig      `yaml:"rental" json:"rental"`

	Simulations int         `yaml:"simulations" json:"simulations"`
	ReturnModel ReturnModel `yaml:"return_model" json:"return_model"`
	Seed        int64       `yaml:"seed,omitempty" json:"seed,omitempty"`

	ExpenseAdjustments []ScheduledAmount `yaml:"expense_adjustments,omitempty" json:"expense_adjustments,omitempty"`
	OneTimeExpenses    []ScheduledAmount `yaml:"one_time_expenses,omitempty" json:"one_time_expenses,omitempty"`
	Windfalls          []ScheduledAmount `yaml:"windfalls,omitempty" json:"windfalls,omitempty"`
	Downsize           DownsizeEvent     `yaml:"downsize" json:"downsize"`
}

// HorizonYears returns the number of simulated years, inclusive of the
// life-expectancy year.
func (c *SimulationConfig) HorizonYears() int {
	return c.LifeExpectancy - c.Self.CurrentAge + 1
}

// InitialBalances seeds the five accounts from the configuration.
func (c *SimulationConfig) InitialBalances() AccountBalances {
	return AccountBalances{
		Self401k:    c.Self.Balance401k,
		Partner401k: c.Partner.Balance401k,
		RothIRA:     c.RothIRABalance,
		Brokerage:   c.BrokerageBalance,
		Cash:        c.CashBalance,
	}
}

// OpeningPortfolio returns the starting value of the rolling portfolio balance.
func (c *SimulationConfig) OpeningPortfolio() decimal.Decimal {
	if c.InitialSavings != nil {
		return *c.InitialSavings
	}
	return c.InitialBalances().Total()
}

// AnyRetired reports whether either partner has reached retirement age in
// simulation year y.
func (c *SimulationConfig) AnyRetired(y int) bool {
	return c.Self.IsRetired(c.Self.CurrentAge+y) || c.Partner.IsRetired(c.Partner.CurrentAge+y)
}

// SumForYear totals every slot scheduled for exactly the given calendar year.
func SumForYear(slots []ScheduledAmount, calendarYear int) decimal.Decimal {
	total := decimal.Zero
	for _, s := range slots {
		if s.Year == calendarYear {
			total = total.Add(s.Amount)
		}
	}
	return total
}
