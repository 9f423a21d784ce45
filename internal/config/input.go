package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxSimulations bounds the trajectory count accepted from a file.
const MaxSimulations = 1_000_000

// InputParser handles parsing of household configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, or from a parameter
// CSV when the file has a .csv extension.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationConfig, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
		}
		defer f.Close()

		config, err := ip.LoadParamsCSV(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
		if err := ip.ValidateConfiguration(config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromYAML(data)
}

// LoadFromYAML parses and validates a YAML document
func (ip *InputParser) LoadFromYAML(data []byte) (*domain.SimulationConfig, error) {
	config := domain.SimulationConfig{
		ReturnModel: domain.ReturnModelNormal,
		Downsize:    domain.DownsizeEvent{YearsFromStart: -1},
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// WriteYAML serializes a configuration as YAML
func (ip *InputParser) WriteYAML(w io.Writer, config *domain.SimulationConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// ValidateConfiguration validates the loaded configuration. Only conditions
// that make the simulation undefined are rejected; for example a retirement
// age below the current age is accepted and simply yields no earnings.
func (ip *InputParser) ValidateConfiguration(config *domain.SimulationConfig) error {
	if config == nil {
		return fmt.Errorf("configuration is empty")
	}

	if err := ip.validatePerson(&config.Self); err != nil {
		return fmt.Errorf("self validation failed: %w", err)
	}
	if err := ip.validatePerson(&config.Partner); err != nil {
		return fmt.Errorf("partner validation failed: %w", err)
	}
	if config.HorizonYears() <= 0 {
		return fmt.Errorf("life expectancy %d must be at least the current age %d", config.LifeExpectancy, config.Self.CurrentAge)
	}

	if err := ip.validateBalances(config); err != nil {
		return fmt.Errorf("balance validation failed: %w", err)
	}
	if err := ip.validateRates(config); err != nil {
		return fmt.Errorf("rate validation failed: %w", err)
	}
	if err := ip.validateReturns(&config.Returns); err != nil {
		return fmt.Errorf("returns validation failed: %w", err)
	}

	if config.Simulations <= 0 || config.Simulations > MaxSimulations {
		return fmt.Errorf("simulations must be between 1 and %d", MaxSimulations)
	}
	if !config.ReturnModel.Valid() {
		return fmt.Errorf("return model %q is not supported", config.ReturnModel)
	}
	if config.MortgageYearsRemaining < 0 {
		return fmt.Errorf("mortgage years remaining cannot be negative")
	}
	if config.Rental.EndYear < config.Rental.StartYear {
		return fmt.Errorf("rental end year %d is before start year %d", config.Rental.EndYear, config.Rental.StartYear)
	}

	for name, slots := range map[string][]domain.ScheduledAmount{
		"expense adjustments": config.ExpenseAdjustments,
		"one-time expenses":   config.OneTimeExpenses,
		"windfalls":           config.Windfalls,
	} {
		if len(slots) > domain.MaxScheduledSlots {
			return fmt.Errorf("at most %d %s may be scheduled, got %d", domain.MaxScheduledSlots, name, len(slots))
		}
	}
	if config.Downsize.NetProceeds.IsNegative() {
		return fmt.Errorf("downsize proceeds cannot be negative")
	}

	return nil
}

// validatePerson validates one member of the household
func (ip *InputParser) validatePerson(p *domain.PersonConfig) error {
	if p.CurrentAge < 0 || p.CurrentAge > 120 {
		return fmt.Errorf("current age must be between 0 and 120")
	}
	if p.RetirementAge < 0 {
		return fmt.Errorf("retirement age cannot be negative")
	}
	if p.AnnualEarnings.IsNegative() {
		return fmt.Errorf("annual earnings cannot be negative")
	}
	if p.AnnualPension.IsNegative() {
		return fmt.Errorf("annual pension cannot be negative")
	}
	if p.SocialSecurity.IsNegative() {
		return fmt.Errorf("social security benefit cannot be negative")
	}
	if p.HealthcareCost.IsNegative() {
		return fmt.Errorf("healthcare cost cannot be negative")
	}
	if p.Contribution401k.IsNegative() || p.EmployerContribution401k.IsNegative() {
		return fmt.Errorf("401(k) contributions cannot be negative")
	}
	return nil
}

// validateBalances rejects negative starting balances
func (ip *InputParser) validateBalances(config *domain.SimulationConfig) error {
	balances := config.InitialBalances()
	for _, k := range domain.AllAccounts {
		if balances.Get(k).IsNegative() {
			return fmt.Errorf("%s balance cannot be negative", k)
		}
	}
	if config.InitialSavings != nil && config.InitialSavings.IsNegative() {
		return fmt.Errorf("initial savings cannot be negative")
	}
	return nil
}

// validateRates validates household-level rates
func (ip *InputParser) validateRates(config *domain.SimulationConfig) error {
	one := decimal.NewFromInt(1)
	if config.TaxRate.IsNegative() || config.TaxRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("tax rate must be in [0, 1)")
	}
	if config.InflationMean.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation mean cannot be less than -10%% (extreme deflation)")
	}
	if config.InflationStdDev.IsNegative() {
		return fmt.Errorf("inflation standard deviation cannot be negative")
	}
	if config.COLARate.IsNegative() {
		return fmt.Errorf("COLA rate cannot be negative")
	}
	if config.AnnualExpense.IsNegative() || config.MortgagePayment.IsNegative() {
		return fmt.Errorf("expenses cannot be negative")
	}
	return nil
}

// validateReturns validates the allocation and return assumptions
func (ip *InputParser) validateReturns(a *domain.ReturnAssumptions) error {
	hundred := decimal.NewFromInt(100)
	if a.StockPercentage.IsNegative() || a.BondPercentage.IsNegative() {
		return fmt.Errorf("allocation percentages cannot be negative")
	}
	if !a.StockPercentage.Add(a.BondPercentage).Equal(hundred) {
		return fmt.Errorf("stock and bond percentages must sum to 100, got %s", a.StockPercentage.Add(a.BondPercentage))
	}
	if a.StockStdDev.IsNegative() || a.BondStdDev.IsNegative() {
		return fmt.Errorf("return standard deviations cannot be negative")
	}
	if a.StockMean.LessThan(decimal.NewFromInt(-1)) || a.BondMean.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("mean returns cannot be less than -100%%")
	}
	return nil
}

// CreateExampleConfiguration creates an example two-earner household
func (ip *InputParser) CreateExampleConfiguration() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		Self: domain.PersonConfig{
			CurrentAge:             55,
			RetirementAge:          60,
			AnnualEarnings:         decimal.NewFromInt(200000),
			EarningsGrowth:         decimal.NewFromFloat(0.03),
			SocialSecurity:         decimal.NewFromInt(36000),
			SocialSecurityStartAge: 67,
			HealthcareCost:         decimal.NewFromInt(5000),
			HealthcareStartAge:     60,
			Balance401k:            decimal.NewFromInt(600000),
			Contribution401k:       decimal.NewFromInt(23500),
			MaximizeContribution:   true,
		},
		Partner: domain.PersonConfig{
			CurrentAge:             50,
			RetirementAge:          60,
			AnnualEarnings:         decimal.NewFromInt(200000),
			EarningsGrowth:         decimal.NewFromFloat(0.03),
			SocialSecurity:         decimal.NewFromInt(18000),
			SocialSecurityStartAge: 65,
			HealthcareCost:         decimal.NewFromInt(5000),
			HealthcareStartAge:     60,
			Balance401k:            decimal.NewFromInt(400000),
			Contribution401k:       decimal.NewFromInt(20000),
		},
		LifeExpectancy:         92,
		RothIRABalance:         decimal.NewFromInt(100000),
		BrokerageBalance:       decimal.NewFromInt(300000),
		CashBalance:            decimal.NewFromInt(50000),
		TaxRate:                decimal.NewFromFloat(0.15),
		FilingStatus:           "Married Filing Jointly",
		AnnualExpense:          decimal.NewFromInt(96000),
		AnnualExpenseDecrease:  decimal.NewFromFloat(0.005),
		MortgagePayment:        decimal.NewFromInt(36000),
		MortgageYearsRemaining: 25,
		InflationMean:          decimal.NewFromFloat(0.025),
		InflationStdDev:        decimal.NewFromFloat(0.01),
		COLARate:               decimal.NewFromFloat(0.015),
		Returns: domain.ReturnAssumptions{
			StockPercentage: decimal.NewFromInt(60),
			BondPercentage:  decimal.NewFromInt(40),
			StockMean:       decimal.NewFromFloat(0.101),
			StockStdDev:     decimal.NewFromFloat(0.196),
			BondMean:        decimal.NewFromFloat(0.039),
			BondStdDev:      decimal.NewFromFloat(0.01166),
		},
		Simulations: 1000,
		ReturnModel: domain.ReturnModelNormal,
		Downsize:    domain.DownsizeEvent{YearsFromStart: -1},
	}
}
