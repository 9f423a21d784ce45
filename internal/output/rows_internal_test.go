package output

import (
	"fmt"
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnIndex(t *testing.T, name string) int {
	t.Helper()
	for i, c := range DetailedColumns() {
		if c == name {
			return i
		}
	}
	require.Failf(t, "missing column", "%s", name)
	return -1
}

func TestFlattenCashFlowColumns(t *testing.T) {
	cf := domain.YearlyCashFlow{
		SimulationID:     17,
		Year:             2031,
		SelfAge:          61,
		PartnerAge:       56,
		BeginningBalance: decimal.NewFromInt(1_000_000),
		PortfolioDraw:    decimal.NewFromInt(40_000),
		EndingBalance:    decimal.NewFromInt(800_000),
	}
	row := FlattenCashFlow(25, cf)
	require.Len(t, row, len(DetailedColumns()))

	assert.Equal(t, intToString(25), row[columnIndex(t, "percentile")])
	assert.Equal(t, intToString(cf.Year), row[columnIndex(t, "year")])
	assert.Equal(t, "2031", row[columnIndex(t, "year")])
	assert.Equal(t, intToString(cf.SimulationID), row[columnIndex(t, "simulation_id")])
	assert.Equal(t, "17", row[len(row)-1])
	assert.Equal(t, "61", row[columnIndex(t, "self_age")])
	assert.Equal(t, "56", row[columnIndex(t, "partner_age")])

	withdrawal := columnIndex(t, "withdrawal_rate")
	assert.Equal(t, withdrawal+1, columnIndex(t, "drawdown_rate"))
	assert.Equal(t, "0.040000", row[withdrawal])
	assert.Equal(t, "0.050000", row[withdrawal+1])
}

func TestConsoleVerboseDepletionFlags(t *testing.T) {
	report := buildTestReport(t)
	data, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)
	out := string(data)

	require.NotEmpty(t, report.Percentiles)
	for _, ps := range report.Percentiles {
		line := fmt.Sprintf("depletes: %s, depleted: %s", ps.DepletionLabel(), boolToString(ps.Depleted))
		assert.Contains(t, out, line, "percentile %d", ps.Percent)
	}
	assert.Contains(t, out, "Drawdown")
}
