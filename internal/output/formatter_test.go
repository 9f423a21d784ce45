package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "HOUSEHOLD MONTE CARLO SOLVENCY REPORT")
	assert.Contains(t, content, report.RunID)
	assert.Contains(t, content, "Success rate:")
	for _, ps := range report.Percentiles {
		assert.Contains(t, content, ps.Label)
	}
	assert.Contains(t, content, "KEY ASSUMPTIONS")
	assert.Contains(t, content, "Normal Distribution")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, strings.Repeat("=", 96)+"\nDETAILED HOUSEHOLD CASH-FLOW LEDGER"))
	assert.Contains(t, content, "MOST LIKELY (50th percentile")
	assert.Contains(t, content, "TOTAL INCOME")
	assert.Contains(t, content, "PORTFOLIO DRAW")
	for _, cf := range report.Percentiles[0].CashFlows {
		assert.Contains(t, content, intToString(cf.Year)+"   ")
	}
}

func TestCSVSummarizer(t *testing.T) {
	report := buildTestReport(t)
	out, err := CSVSummarizer{}.Format(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(report.Percentiles)+1)
	assert.Equal(t, csvSummaryHeader, rows[0])
	assert.Equal(t, []string{"10", "Worst Case"}, rows[1][:2])
	assert.Equal(t, []string{"75", "Best Case"}, rows[4][:2])
	assert.Equal(t, report.Percentiles[2].EndingBalance.StringFixed(2), rows[3][3])
}

func TestCSVDetailedExporter(t *testing.T) {
	report := buildTestReport(t)
	out, err := CSVDetailedExporter{}.Format(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)

	want := 1
	for _, ps := range report.Percentiles {
		want += len(ps.CashFlows)
	}
	require.Len(t, rows, want)
	assert.Equal(t, DetailedColumns(), rows[0])
	assert.Equal(t, "percentile", rows[0][0])
	assert.Equal(t, "simulation_id", rows[0][len(rows[0])-1])

	first := report.Percentiles[0].CashFlows[0]
	assert.Equal(t, FlattenCashFlow(10, first), rows[1])
	assert.Equal(t, "2025", rows[1][1])
	assert.Equal(t, "55", rows[1][2])
}

func TestJSONFormatter(t *testing.T) {
	report := buildTestReport(t)
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, report.RunID, doc["run_id"])
	assert.Equal(t, float64(7), doc["seed"])

	percentiles, ok := doc["percentiles"].([]any)
	require.True(t, ok)
	require.Len(t, percentiles, 4)
	median := percentiles[2].(map[string]any)
	assert.Equal(t, "Most Likely", median["label"])
	assert.Len(t, median["cash_flows"], report.Horizon)

	summary := doc["summary"].(map[string]any)
	assert.Equal(t, float64(40), summary["simulations"])
}

func TestMsgpackFormatterRoundTrip(t *testing.T) {
	report := buildTestReport(t)
	out, err := MsgpackFormatter{}.Format(report)
	require.NoError(t, err)

	decoded, err := DecodeMsgpackReport(out)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, report.Seed, decoded.Seed)
	assert.True(t, report.Summary.SuccessRate.Equal(decoded.Summary.SuccessRate))
	require.Len(t, decoded.Percentiles, len(report.Percentiles))
	assert.True(t, report.Percentiles[1].EndingBalance.Equal(decoded.Percentiles[1].EndingBalance))
	assert.Len(t, decoded.Percentiles[1].CashFlows, report.Horizon)
	assert.Equal(t, report.Config.LifeExpectancy, decoded.Config.LifeExpectancy)
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"  JSON ", "json"},
		{"verbose", "console-verbose"},
		{"csv-detailed", "detailed-csv"},
		{"cashflows", "detailed-csv"},
		{"mp", "msgpack"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "detailed-csv", "json", "msgpack"}, AvailableFormatterNames())
	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "verbose")
	assert.IsIncreasing(t, aliases)
}

func TestWriteFormatted(t *testing.T) {
	report := buildTestReport(t)
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteFormatted(CSVSummarizer{}, report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "montecarlo_csv_20250314_092653.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Percentile,Label,SimulationID"))

	ff := FormatterFunc{ID: "custom", F: func(*Report) ([]byte, error) { return []byte("x"), nil }}
	path, err = WriteFormatted(ff, report, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".out"))
}
