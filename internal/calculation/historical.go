package calculation

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//go:embed data/historical_returns.csv
var embeddedHistoricalReturns []byte

// ErrEmptyHistory is returned when a returns table holds no usable rows.
var ErrEmptyHistory = errors.New("historical returns table is empty")

// HistoricalDataPoint is one year of annual returns, stored as fractions
type HistoricalDataPoint struct {
	Year   int     `json:"year"`
	Equity float64 `json:"equity"`
	Bond   float64 `json:"bond"`
}

// HistoricalStatistics provides a statistical summary of one return series
type HistoricalStatistics struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Count        int     `json:"count"`
	MissingYears []int   `json:"missing_years,omitempty"`
}

// HistoricalReturns is the table of annual equity and bond returns used for
// empirical resampling and for bounding normal draws
type HistoricalReturns struct {
	Name       string                `json:"name"`
	Source     string                `json:"source"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Equity     HistoricalStatistics  `json:"equity"`
	Bond       HistoricalStatistics  `json:"bond"`

	equity []float64
	bond   []float64
}

var (
	defaultHistoryOnce sync.Once
	defaultHistory     *HistoricalReturns
	defaultHistoryErr  error
)

// DefaultHistoricalReturns returns the built-in S&P 500 / 10-year Treasury
// table. The table is parsed once and shared read-only.
func DefaultHistoricalReturns() (*HistoricalReturns, error) {
	defaultHistoryOnce.Do(func() {
		defaultHistory, defaultHistoryErr = ParseHistoricalReturns(
			bytes.NewReader(embeddedHistoricalReturns),
			"S&P 500 and 10-year Treasury annual total returns",
			"NYU Stern (Damodaran) historical returns",
		)
	})
	return defaultHistory, defaultHistoryErr
}

// LoadHistoricalReturns loads a returns table from a CSV file with the
// columns year, equity_return, bond_return (percent values).
func LoadHistoricalReturns(filePath string) (*HistoricalReturns, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	h, err := ParseHistoricalReturns(file, filePath, "user supplied")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	return h, nil
}

// ParseHistoricalReturns reads a returns table from r.
func ParseHistoricalReturns(r io.Reader, name, source string) (*HistoricalReturns, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 3 columns, got %d", len(header))
	}

	var points []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 3 {
			continue // Skip malformed rows
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		equity, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			continue
		}
		bond, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			continue
		}

		points = append(points, HistoricalDataPoint{Year: year, Equity: equity / 100, Bond: bond / 100})
	}

	if len(points) == 0 {
		return nil, ErrEmptyHistory
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	h := &HistoricalReturns{
		Name:       name,
		Source:     source,
		DataPoints: points,
		MinYear:    points[0].Year,
		MaxYear:    points[len(points)-1].Year,
		equity:     make([]float64, len(points)),
		bond:       make([]float64, len(points)),
	}
	for i, p := range points {
		h.equity[i] = p.Equity
		h.bond[i] = p.Bond
	}

	missing := missingYears(points)
	h.Equity = calculateStatistics(h.equity, missing)
	h.Bond = calculateStatistics(h.bond, missing)
	return h, nil
}

// calculateStatistics summarizes one series
func calculateStatistics(values []float64, missing []int) HistoricalStatistics {
	if len(values) == 0 {
		return HistoricalStatistics{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	stats := HistoricalStatistics{
		Mean:         stat.Mean(values, nil),
		Median:       stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:          floats.Min(values),
		Max:          floats.Max(values),
		Count:        len(values),
		MissingYears: missing,
	}
	if len(values) > 1 {
		stats.StdDev = stat.StdDev(values, nil)
	}
	return stats
}

// missingYears reports gaps in an ascending list of data points
func missingYears(points []HistoricalDataPoint) []int {
	var missing []int
	for i := 1; i < len(points); i++ {
		for y := points[i-1].Year + 1; y < points[i].Year; y++ {
			missing = append(missing, y)
		}
	}
	return missing
}

// Len returns the number of years in the table.
func (h *HistoricalReturns) Len() int { return len(h.DataPoints) }

// EquityAt and BondAt return the returns of the i-th row.
func (h *HistoricalReturns) EquityAt(i int) float64 { return h.equity[i] }
func (h *HistoricalReturns) BondAt(i int) float64   { return h.bond[i] }

// Bounds returns the observed min/max for equity and bond returns.
func (h *HistoricalReturns) Bounds() (equityMin, equityMax, bondMin, bondMax float64) {
	return h.Equity.Min, h.Equity.Max, h.Bond.Min, h.Bond.Max
}

// ValidateDataQuality reports gaps and implausible values in the table.
func (h *HistoricalReturns) ValidateDataQuality() []string {
	var issues []string
	if len(h.Equity.MissingYears) > 0 {
		issues = append(issues, fmt.Sprintf("Missing years in returns table: %v", h.Equity.MissingYears))
	}
	for _, dp := range h.DataPoints {
		if dp.Equity > 1 || dp.Bond > 1 {
			issues = append(issues, fmt.Sprintf("Extreme positive return for year %d: equity %.4f bond %.4f", dp.Year, dp.Equity, dp.Bond))
		}
		if dp.Equity < -0.5 || dp.Bond < -0.5 {
			issues = append(issues, fmt.Sprintf("Extreme negative return for year %d: equity %.4f bond %.4f", dp.Year, dp.Equity, dp.Bond))
		}
	}
	return issues
}
