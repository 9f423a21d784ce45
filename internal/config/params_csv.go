package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
)

// paramColumn binds one column of the parameter file to a config field
type paramColumn struct {
	name string
	get  func(*domain.SimulationConfig) string
	set  func(*domain.SimulationConfig, string) error
}

func decimalColumn(name string, field func(*domain.SimulationConfig) *decimal.Decimal) paramColumn {
	return paramColumn{
		name: name,
		get:  func(c *domain.SimulationConfig) string { return field(c).String() },
		set: func(c *domain.SimulationConfig, v string) error {
			d, err := parseDecimal(v)
			if err != nil {
				return err
			}
			*field(c) = d
			return nil
		},
	}
}

func intColumn(name string, field func(*domain.SimulationConfig) *int) paramColumn {
	return paramColumn{
		name: name,
		get:  func(c *domain.SimulationConfig) string { return strconv.Itoa(*field(c)) },
		set: func(c *domain.SimulationConfig, v string) error {
			n, err := parseInt(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func boolColumn(name string, field func(*domain.SimulationConfig) *bool) paramColumn {
	return paramColumn{
		name: name,
		get: func(c *domain.SimulationConfig) string {
			if *field(c) {
				return "True"
			}
			return "False"
		},
		set: func(c *domain.SimulationConfig, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid boolean %q", v)
			}
			*field(c) = b
			return nil
		},
	}
}

func stringColumn(name string, field func(*domain.SimulationConfig) *string) paramColumn {
	return paramColumn{
		name: name,
		get:  func(c *domain.SimulationConfig) string { return *field(c) },
		set: func(c *domain.SimulationConfig, v string) error {
			*field(c) = strings.TrimSpace(v)
			return nil
		},
	}
}

// scalarColumns lists the required non-schedule columns in file order.
var scalarColumns = []paramColumn{
	intColumn("current_age", func(c *domain.SimulationConfig) *int { return &c.Self.CurrentAge }),
	intColumn("partner_current_age", func(c *domain.SimulationConfig) *int { return &c.Partner.CurrentAge }),
	intColumn("life_expectancy", func(c *domain.SimulationConfig) *int { return &c.LifeExpectancy }),
	intColumn("retirement_age", func(c *domain.SimulationConfig) *int { return &c.Self.RetirementAge }),
	intColumn("partner_retirement_age", func(c *domain.SimulationConfig) *int { return &c.Partner.RetirementAge }),
	{
		name: "initial_savings",
		get:  func(c *domain.SimulationConfig) string { return c.OpeningPortfolio().String() },
		set: func(c *domain.SimulationConfig, v string) error {
			d, err := parseDecimal(v)
			if err != nil {
				return err
			}
			c.InitialSavings = &d
			return nil
		},
	},
	decimalColumn("stock_percentage", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.StockPercentage }),
	decimalColumn("bond_percentage", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.BondPercentage }),
	decimalColumn("annual_earnings", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.AnnualEarnings }),
	decimalColumn("self_yearly_increase", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.EarningsGrowth }),
	decimalColumn("tax_rate", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.TaxRate }),
	decimalColumn("partner_earnings", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.AnnualEarnings }),
	decimalColumn("partner_yearly_increase", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.EarningsGrowth }),
	decimalColumn("annual_pension", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.AnnualPension }),
	decimalColumn("partner_pension", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.AnnualPension }),
	decimalColumn("self_pension_yearly_increase", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.PensionIncrease }),
	decimalColumn("partner_pension_yearly_increase", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.PensionIncrease }),
	intColumn("rental_start", func(c *domain.SimulationConfig) *int { return &c.Rental.StartYear }),
	intColumn("rental_end", func(c *domain.SimulationConfig) *int { return &c.Rental.EndYear }),
	decimalColumn("rental_amt", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Rental.Amount }),
	decimalColumn("rental_yearly_increase", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Rental.Growth }),
	decimalColumn("self_401k_balance", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.Balance401k }),
	decimalColumn("partner_401k_balance", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.Balance401k }),
	decimalColumn("roth_ira_balance", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.RothIRABalance }),
	decimalColumn("cash_savings_balance", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.CashBalance }),
	decimalColumn("brokerage_balance", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.BrokerageBalance }),
	decimalColumn("self_401k_contribution", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.Contribution401k }),
	decimalColumn("partner_401k_contribution", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.Contribution401k }),
	decimalColumn("employer_self_401k_contribution", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.EmployerContribution401k }),
	decimalColumn("employer_partner_401k_contribution", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.EmployerContribution401k }),
	boolColumn("maximize_self_contribution", func(c *domain.SimulationConfig) *bool { return &c.Self.MaximizeContribution }),
	boolColumn("maximize_partner_contribution", func(c *domain.SimulationConfig) *bool { return &c.Partner.MaximizeContribution }),
	decimalColumn("annual_expense", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.AnnualExpense }),
	decimalColumn("mortgage_payment", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.MortgagePayment }),
	decimalColumn("inflation_mean", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.InflationMean }),
	decimalColumn("annual_expense_decrease", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.AnnualExpenseDecrease }),
	intColumn("mortgage_years_remaining", func(c *domain.SimulationConfig) *int { return &c.MortgageYearsRemaining }),
	decimalColumn("inflation_std", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.InflationStdDev }),
	decimalColumn("annual_social_security", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.SocialSecurity }),
	intColumn("withdrawal_start_age", func(c *domain.SimulationConfig) *int { return &c.Self.SocialSecurityStartAge }),
	decimalColumn("cola_rate", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.COLARate }),
	decimalColumn("partner_social_security", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.SocialSecurity }),
	intColumn("partner_withdrawal_start_age", func(c *domain.SimulationConfig) *int { return &c.Partner.SocialSecurityStartAge }),
	decimalColumn("self_healthcare_cost", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Self.HealthcareCost }),
	intColumn("self_healthcare_start_age", func(c *domain.SimulationConfig) *int { return &c.Self.HealthcareStartAge }),
	decimalColumn("partner_healthcare_cost", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Partner.HealthcareCost }),
	intColumn("partner_healthcare_start_age", func(c *domain.SimulationConfig) *int { return &c.Partner.HealthcareStartAge }),
	decimalColumn("stock_return_mean", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.StockMean }),
	decimalColumn("bond_return_mean", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.BondMean }),
	intColumn("simulations", func(c *domain.SimulationConfig) *int { return &c.Simulations }),
	decimalColumn("stock_return_std", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.StockStdDev }),
	decimalColumn("bond_return_std", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Returns.BondStdDev }),
	intColumn("years_until_downsize", func(c *domain.SimulationConfig) *int { return &c.Downsize.YearsFromStart }),
	decimalColumn("residual_amount", func(c *domain.SimulationConfig) *decimal.Decimal { return &c.Downsize.NetProceeds }),
}

// optionalColumns are written but not required on load.
var optionalColumns = []paramColumn{
	stringColumn("filing_status", func(c *domain.SimulationConfig) *string { return &c.FilingStatus }),
	stringColumn("state_of_residence", func(c *domain.SimulationConfig) *string { return &c.StateOfResidence }),
}

// schedule prefixes in file order
var schedules = []struct {
	year, amount string
	field        func(*domain.SimulationConfig) *[]domain.ScheduledAmount
}{
	{"adjust_expense_year_%d", "adjust_expense_amount_%d", func(c *domain.SimulationConfig) *[]domain.ScheduledAmount { return &c.ExpenseAdjustments }},
	{"one_time_year_%d", "one_time_amount_%d", func(c *domain.SimulationConfig) *[]domain.ScheduledAmount { return &c.OneTimeExpenses }},
	{"windfall_year_%d", "windfall_amount_%d", func(c *domain.SimulationConfig) *[]domain.ScheduledAmount { return &c.Windfalls }},
}

const simulationTypeColumn = "simulation_type"

// RequiredColumns returns the columns a parameter file must carry, in
// the order they are written.
func RequiredColumns() []string {
	cols := make([]string, 0, len(scalarColumns)+len(schedules)*domain.MaxScheduledSlots*2+1)
	for _, c := range scalarColumns {
		cols = append(cols, c.name)
	}
	for _, s := range schedules {
		for i := 1; i <= domain.MaxScheduledSlots; i++ {
			cols = append(cols, fmt.Sprintf(s.year, i), fmt.Sprintf(s.amount, i))
		}
	}
	return append(cols, simulationTypeColumn)
}

// LoadParamsCSV reads a parameter file: one header row and one value row.
// Scheduled slots with a zero amount are treated as unused.
func (ip *InputParser) LoadParamsCSV(r io.Reader) (*domain.SimulationConfig, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	values, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	row := make(map[string]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if i < len(values) {
			row[name] = values[i]
		}
	}

	var missing []string
	for _, name := range RequiredColumns() {
		if _, ok := row[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("parameter file is missing required columns: %s", strings.Join(missing, ", "))
	}

	config := &domain.SimulationConfig{}
	for _, col := range scalarColumns {
		if err := col.set(config, row[col.name]); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.name, err)
		}
	}
	for _, col := range optionalColumns {
		if v, ok := row[col.name]; ok {
			if err := col.set(config, v); err != nil {
				return nil, fmt.Errorf("column %s: %w", col.name, err)
			}
		}
	}

	for _, s := range schedules {
		slots := s.field(config)
		for i := 1; i <= domain.MaxScheduledSlots; i++ {
			yearCol, amountCol := fmt.Sprintf(s.year, i), fmt.Sprintf(s.amount, i)
			amount, err := parseDecimal(row[amountCol])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", amountCol, err)
			}
			if amount.IsZero() {
				continue
			}
			year, err := parseInt(row[yearCol])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", yearCol, err)
			}
			*slots = append(*slots, domain.ScheduledAmount{Year: year, Amount: amount})
		}
	}

	model, err := domain.ParseReturnModel(row[simulationTypeColumn])
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", simulationTypeColumn, err)
	}
	config.ReturnModel = model

	return config, nil
}

// WriteParamsCSV writes config as a parameter file that LoadParamsCSV can
// read back. Unused schedule slots are written as year 0, amount 0.
func (ip *InputParser) WriteParamsCSV(w io.Writer, config *domain.SimulationConfig) error {
	header := RequiredColumns()
	values := make([]string, 0, len(header)+len(optionalColumns))

	for _, col := range scalarColumns {
		values = append(values, col.get(config))
	}
	for _, s := range schedules {
		slots := *s.field(config)
		for i := 0; i < domain.MaxScheduledSlots; i++ {
			if i < len(slots) {
				values = append(values, strconv.Itoa(slots[i].Year), slots[i].Amount.String())
			} else {
				values = append(values, "0", "0")
			}
		}
	}
	values = append(values, config.ReturnModel.Label())

	for _, col := range optionalColumns {
		header = append(header, col.name)
		values = append(values, col.get(config))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.Write(values); err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func parseDecimal(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", v)
	}
	return d, nil
}

// parseInt accepts integral values written with a fractional part ("55.0").
func parseInt(v string) (int, error) {
	d, err := parseDecimal(v)
	if err != nil {
		return 0, err
	}
	n := d.IntPart()
	if !d.Equal(decimal.NewFromInt(n)) {
		return 0, fmt.Errorf("expected a whole number, got %q", v)
	}
	return int(n), nil
}
