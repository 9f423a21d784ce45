package calculation

import (
	"math"
	"sort"
	"strconv"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// PercentileLevel names one representative position in the ranked batch
type PercentileLevel struct {
	Percent int
	Label   string
}

// StandardPercentiles are the representative trajectories reported for a run.
var StandardPercentiles = []PercentileLevel{
	{Percent: 10, Label: "Worst Case"},
	{Percent: 25, Label: "Below Market"},
	{Percent: 50, Label: "Most Likely"},
	{Percent: 75, Label: "Best Case"},
}

// PercentileScenario summarizes the trajectory found at one percentile of
// the ranked batch.
type PercentileScenario struct {
	Percent      int    `json:"percent"`
	Label        string `json:"label"`
	Rank         int    `json:"rank"`
	SimulationID int    `json:"simulation_id"`

	EndingBalance      decimal.Decimal `json:"ending_balance"`
	EndingBalanceToday decimal.Decimal `json:"ending_balance_today"`
	YearOfDepletion    int             `json:"year_of_depletion"`
	Depleted           bool            `json:"depleted"`

	MedianReturnRate    float64 `json:"median_return_rate"`
	MeanReturnRate      float64 `json:"mean_return_rate"`
	StdDevReturnRate    float64 `json:"std_dev_return_rate"`
	GeometricReturnRate float64 `json:"geometric_return_rate"`
	PositiveReturnYears int     `json:"positive_return_years"`
	NegativeReturnYears int     `json:"negative_return_years"`

	CashFlows []domain.YearlyCashFlow `json:"cash_flows,omitempty"`
}

// DepletionLabel renders the depletion year, or "Never".
func (ps PercentileScenario) DepletionLabel() string {
	if !ps.Depleted {
		return "Never"
	}
	return strconv.Itoa(ps.YearOfDepletion)
}

// PercentileRank returns the zero-based position of percent within n
// ranked trajectories, or -1 when the batch is too small to reach it.
func PercentileRank(percent, n int) int {
	return percent*n/100 - 1
}

// ExtractPercentiles picks the standard representative trajectories from a
// ranked batch and computes their return analytics. Ending balances are
// also deflated to today's currency at the mean inflation rate.
func ExtractPercentiles(ranked []domain.SimulationResult, inflationMean decimal.Decimal) []PercentileScenario {
	out := make([]PercentileScenario, 0, len(StandardPercentiles))
	for _, lvl := range StandardPercentiles {
		idx := PercentileRank(lvl.Percent, len(ranked))
		if idx < 0 {
			continue
		}
		out = append(out, analyzeTrajectory(lvl, idx, ranked[idx], inflationMean))
	}
	return out
}

func analyzeTrajectory(lvl PercentileLevel, rank int, r domain.SimulationResult, inflationMean decimal.Decimal) PercentileScenario {
	ps := PercentileScenario{
		Percent:      lvl.Percent,
		Label:        lvl.Label,
		Rank:         rank,
		SimulationID: r.SimulationID,
		CashFlows:    r.CashFlows,
	}
	if len(r.CashFlows) == 0 {
		return ps
	}

	last := r.CashFlows[len(r.CashFlows)-1]
	ps.EndingBalance = last.EndingBalance
	ps.EndingBalanceToday = money.Deflate(last.EndingBalance, inflationMean, len(r.CashFlows))
	ps.YearOfDepletion, ps.Depleted = r.FirstNegativeYear()

	rates := make([]float64, len(r.CashFlows))
	for i, cf := range r.CashFlows {
		rate := cf.ReturnRate().InexactFloat64()
		rates[i] = rate
		switch {
		case rate > 0:
			ps.PositiveReturnYears++
		case rate < 0:
			ps.NegativeReturnYears++
		}
	}

	ps.MeanReturnRate = stat.Mean(rates, nil)
	if len(rates) > 1 {
		ps.StdDevReturnRate = stat.StdDev(rates, nil)
	}
	ps.GeometricReturnRate = ApproxGeometricReturn(ps.MeanReturnRate, ps.StdDevReturnRate)

	sort.Float64s(rates)
	ps.MedianReturnRate = median(rates)
	return ps
}

// ApproxGeometricReturn estimates the compound rate from the arithmetic
// mean and standard deviation, both expressed in percentage points.
func ApproxGeometricReturn(mean, stdDev float64) float64 {
	if stdDev <= 0 {
		return mean
	}
	return (mean*100 - math.Sqrt(stdDev*100)/2) / 100
}

// median of sorted values; even-length inputs average the two middle values
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// PercentileRanges represents final-balance quantiles across a batch
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// BatchSummary aggregates a batch for reporting
type BatchSummary struct {
	Simulations       int              `json:"simulations"`
	SuccessCount      int              `json:"success_count"`
	FailureCount      int              `json:"failure_count"`
	SuccessRate       decimal.Decimal  `json:"success_rate"`
	MeanFinalBalance  decimal.Decimal  `json:"mean_final_balance"`
	FinalBalance      PercentileRanges `json:"final_balance"`
	EarliestDepletion int              `json:"earliest_depletion,omitempty"`
	MedianDepletion   int              `json:"median_depletion,omitempty"`
}

// SummarizeBatch computes success statistics and final-balance quantiles.
func SummarizeBatch(b *domain.BatchResult) BatchSummary {
	s := BatchSummary{
		Simulations:  len(b.Trajectories),
		SuccessCount: b.SuccessCount,
		FailureCount: b.FailureCount,
		SuccessRate:  b.SuccessRate(),
	}
	if len(b.Trajectories) == 0 {
		return s
	}

	finals := make([]float64, len(b.Trajectories))
	var depletions []float64
	for i, t := range b.Trajectories {
		finals[i] = t.FinalBalance.InexactFloat64()
		if year, ok := t.FirstNegativeYear(); ok {
			depletions = append(depletions, float64(year))
		}
	}
	sort.Float64s(finals)

	q := func(p float64) decimal.Decimal {
		return decimal.NewFromFloat(stat.Quantile(p, stat.Empirical, finals, nil)).Round(2)
	}
	s.FinalBalance = PercentileRanges{P10: q(0.10), P25: q(0.25), P50: q(0.50), P75: q(0.75), P90: q(0.90)}
	s.MeanFinalBalance = decimal.NewFromFloat(stat.Mean(finals, nil)).Round(2)

	if len(depletions) > 0 {
		sort.Float64s(depletions)
		s.EarliestDepletion = int(depletions[0])
		s.MedianDepletion = int(stat.Quantile(0.5, stat.Empirical, depletions, nil))
	}
	return s
}
