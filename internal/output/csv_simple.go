package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// csvSummaryHeader is the column set of the percentile summary CSV.
var csvSummaryHeader = []string{
	"Percentile", "Label", "SimulationID", "EndingBalance", "EndingBalanceToday",
	"YearOfDepletion", "MedianReturnRate", "MeanReturnRate", "StdDevReturnRate",
	"GeometricReturnRate", "PositiveReturnYears", "NegativeReturnYears",
}

// CSVSummarizer implements the summary CSV output (one row per percentile trajectory).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvSummaryHeader); err != nil {
		return nil, err
	}
	for _, ps := range report.Percentiles {
		row := []string{
			intToString(ps.Percent),
			ps.Label,
			intToString(ps.SimulationID),
			ps.EndingBalance.StringFixed(2),
			ps.EndingBalanceToday.StringFixed(2),
			ps.DepletionLabel(),
			formatFloat(ps.MedianReturnRate),
			formatFloat(ps.MeanReturnRate),
			formatFloat(ps.StdDevReturnRate),
			formatFloat(ps.GeometricReturnRate),
			intToString(ps.PositiveReturnYears),
			intToString(ps.NegativeReturnYears),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }
