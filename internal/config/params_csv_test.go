package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()
	assert.Equal(t, "current_age", cols[0])
	assert.Equal(t, "simulation_type", cols[len(cols)-1])
	assert.Contains(t, cols, "windfall_amount_3")
	assert.Contains(t, cols, "adjust_expense_year_1")
	assert.NotContains(t, cols, "filing_status")

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		assert.False(t, seen[c], "duplicate column %s", c)
		seen[c] = true
	}
}

func TestParamsCSVRoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()
	original.Rental = domain.RentalConfig{StartYear: 2027, EndYear: 2035, Amount: decimal.NewFromInt(18000), Growth: decimal.NewFromFloat(0.04)}
	original.OneTimeExpenses = []domain.ScheduledAmount{{Year: 2028, Amount: decimal.NewFromInt(40000)}}
	original.ExpenseAdjustments = []domain.ScheduledAmount{
		{Year: 2030, Amount: decimal.NewFromInt(-12000)},
		{Year: 2040, Amount: decimal.NewFromInt(-6000)},
	}
	original.Windfalls = []domain.ScheduledAmount{{Year: 2033, Amount: decimal.NewFromInt(250000)}}
	original.Downsize = domain.DownsizeEvent{YearsFromStart: 12, NetProceeds: decimal.NewFromInt(350000)}
	original.ReturnModel = domain.ReturnModelEmpirical
	original.StateOfResidence = "Virginia"

	var buf bytes.Buffer
	require.NoError(t, parser.WriteParamsCSV(&buf, original))
	assert.Contains(t, buf.String(), "Empirical Distribution")

	loaded, err := parser.LoadParamsCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Self.CurrentAge, loaded.Self.CurrentAge)
	assert.Equal(t, original.Partner.RetirementAge, loaded.Partner.RetirementAge)
	assert.Equal(t, original.Self.MaximizeContribution, loaded.Self.MaximizeContribution)
	assert.Equal(t, original.Partner.MaximizeContribution, loaded.Partner.MaximizeContribution)
	assert.True(t, original.Returns.BondStdDev.Equal(loaded.Returns.BondStdDev))
	assert.Equal(t, original.Rental.EndYear, loaded.Rental.EndYear)
	require.Len(t, loaded.OneTimeExpenses, 1)
	assert.Equal(t, 2028, loaded.OneTimeExpenses[0].Year)
	assert.True(t, loaded.OneTimeExpenses[0].Amount.Equal(decimal.NewFromInt(40000)))
	require.Len(t, loaded.ExpenseAdjustments, 2)
	assert.True(t, loaded.ExpenseAdjustments[1].Amount.Equal(decimal.NewFromInt(-6000)))
	assert.Equal(t, 2033, loaded.Windfalls[0].Year)
	assert.Equal(t, 12, loaded.Downsize.YearsFromStart)
	assert.Equal(t, domain.ReturnModelEmpirical, loaded.ReturnModel)
	assert.Equal(t, "Virginia", loaded.StateOfResidence)
	assert.Equal(t, "Married Filing Jointly", loaded.FilingStatus)

	require.NotNil(t, loaded.InitialSavings)
	assert.True(t, loaded.InitialSavings.Equal(original.OpeningPortfolio()))
	assert.NoError(t, parser.ValidateConfiguration(loaded))
}

func TestLoadParamsCSVMissingColumns(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadParamsCSV(strings.NewReader("current_age,life_expectancy\n55,92\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "simulation_type")
}

func TestLoadParamsCSVFloatIntegers(t *testing.T) {
	parser := NewInputParser()
	var buf bytes.Buffer
	require.NoError(t, parser.WriteParamsCSV(&buf, parser.CreateExampleConfiguration()))

	lines := strings.SplitN(buf.String(), "\n", 2)
	edited := lines[0] + "\n" + strings.Replace(lines[1], "55,", "55.0,", 1)

	loaded, err := parser.LoadParamsCSV(strings.NewReader(edited))
	require.NoError(t, err)
	assert.Equal(t, 55, loaded.Self.CurrentAge)
}

func TestLoadParamsCSVBadValues(t *testing.T) {
	parser := NewInputParser()
	header := strings.Join(RequiredColumns(), ",")

	values := make([]string, len(RequiredColumns()))
	for i := range values {
		values[i] = "0"
	}
	values[len(values)-1] = "Normal Distribution"

	_, err := parser.LoadParamsCSV(strings.NewReader(header + "\n" + strings.Join(values, ",") + "\n"))
	require.NoError(t, err)

	values[0] = "fifty"
	_, err = parser.LoadParamsCSV(strings.NewReader(header + "\n" + strings.Join(values, ",") + "\n"))
	assert.ErrorContains(t, err, "current_age")

	values[0] = "55.5"
	_, err = parser.LoadParamsCSV(strings.NewReader(header + "\n" + strings.Join(values, ",") + "\n"))
	assert.ErrorContains(t, err, "whole number")

	values[0] = "55"
	values[len(values)-1] = "Lognormal"
	_, err = parser.LoadParamsCSV(strings.NewReader(header + "\n" + strings.Join(values, ",") + "\n"))
	assert.ErrorContains(t, err, "simulation_type")
}

func TestLoadFromFileCSV(t *testing.T) {
	parser := NewInputParser()
	var buf bytes.Buffer
	require.NoError(t, parser.WriteParamsCSV(&buf, parser.CreateExampleConfiguration()))

	config, err := parser.LoadFromFile(writeTemp(t, "params.CSV", buf.String()))
	require.NoError(t, err)
	assert.Equal(t, 92, config.LifeExpectancy)
}
