package calculation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/rpgo/household-montecarlo/pkg/money"
	"gonum.org/v1/gonum/stat/distuv"
)

// StudentTDegreesOfFreedom is the fixed tail parameter of the fat-tailed model.
const StudentTDegreesOfFreedom = 5

// ErrUnknownReturnModel is returned for an unsupported distribution family.
var ErrUnknownReturnModel = errors.New("unknown return model")

// ReturnSeries holds one trajectory's worth of annual returns (fractions)
type ReturnSeries struct {
	Equity []float64
	Bond   []float64
}

// Len returns the number of years covered.
func (s ReturnSeries) Len() int { return len(s.Equity) }

// ReturnModelProvider precomputes annual equity and bond returns for a
// trajectory under one statistical family
type ReturnModelProvider struct {
	Model       domain.ReturnModel
	StockMean   float64
	StockStdDev float64
	BondMean    float64
	BondStdDev  float64
	History     *HistoricalReturns
}

// NewReturnModelProvider builds a provider from the configured assumptions.
func NewReturnModelProvider(model domain.ReturnModel, a domain.ReturnAssumptions, history *HistoricalReturns) (*ReturnModelProvider, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReturnModel, model)
	}
	if history == nil || history.Len() == 0 {
		return nil, ErrEmptyHistory
	}
	return &ReturnModelProvider{
		Model:       model,
		StockMean:   a.StockMean.InexactFloat64(),
		StockStdDev: a.StockStdDev.InexactFloat64(),
		BondMean:    a.BondMean.InexactFloat64(),
		BondStdDev:  a.BondStdDev.InexactFloat64(),
		History:     history,
	}, nil
}

// Generate draws the full return sequence for one trajectory from rng.
func (p *ReturnModelProvider) Generate(rng *rand.Rand, years int) (ReturnSeries, error) {
	if years < 0 {
		return ReturnSeries{}, fmt.Errorf("%w: %d years", ErrInvalidHorizon, years)
	}
	switch p.Model {
	case domain.ReturnModelNormal:
		return p.normal(rng, years), nil
	case domain.ReturnModelStudentT:
		return p.studentsT(rng, years), nil
	case domain.ReturnModelEmpirical:
		return p.empirical(rng, years), nil
	}
	return ReturnSeries{}, fmt.Errorf("%w: %q", ErrUnknownReturnModel, p.Model)
}

// normal draws Gaussian returns clamped to the historical range
func (p *ReturnModelProvider) normal(rng *rand.Rand, years int) ReturnSeries {
	eqMin, eqMax, bondMin, bondMax := p.History.Bounds()
	stock := distuv.Normal{Mu: p.StockMean, Sigma: p.StockStdDev, Src: rng}
	bond := distuv.Normal{Mu: p.BondMean, Sigma: p.BondStdDev, Src: rng}

	s := ReturnSeries{Equity: make([]float64, years), Bond: make([]float64, years)}
	for y := 0; y < years; y++ {
		s.Equity[y] = money.ClampFloat(stock.Rand(), eqMin, eqMax)
	}
	for y := 0; y < years; y++ {
		s.Bond[y] = money.ClampFloat(bond.Rand(), bondMin, bondMax)
	}
	return s
}

// studentsT draws location-scale t returns; extreme values are kept
func (p *ReturnModelProvider) studentsT(rng *rand.Rand, years int) ReturnSeries {
	stock := distuv.StudentsT{Mu: p.StockMean, Sigma: p.StockStdDev, Nu: StudentTDegreesOfFreedom, Src: rng}
	bond := distuv.StudentsT{Mu: p.BondMean, Sigma: p.BondStdDev, Nu: StudentTDegreesOfFreedom, Src: rng}

	s := ReturnSeries{Equity: make([]float64, years), Bond: make([]float64, years)}
	for y := 0; y < years; y++ {
		s.Equity[y] = stock.Rand()
	}
	for y := 0; y < years; y++ {
		s.Bond[y] = bond.Rand()
	}
	return s
}

// empirical resamples historical years with replacement, then shuffles the
// equity and bond sequences independently, which breaks
// the historical equity/bond pairing.
func (p *ReturnModelProvider) empirical(rng *rand.Rand, years int) ReturnSeries {
	n := p.History.Len()
	s := ReturnSeries{Equity: make([]float64, years), Bond: make([]float64, years)}
	for y := 0; y < years; y++ {
		i := rng.IntN(n)
		s.Equity[y] = p.History.EquityAt(i)
		s.Bond[y] = p.History.BondAt(i)
	}
	rng.Shuffle(years, func(i, j int) { s.Equity[i], s.Equity[j] = s.Equity[j], s.Equity[i] })
	rng.Shuffle(years, func(i, j int) { s.Bond[i], s.Bond[j] = s.Bond[j], s.Bond[i] })
	return s
}
