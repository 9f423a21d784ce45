package calculation

import (
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	decimalEqual(t, d("23000"), LimitsFor(2024).Limit)
	decimalEqual(t, d("23500"), LimitsFor(2030).Limit)
	assert.Equal(t, 2025, LimitsFor(2030).Year)
	assert.True(t, LimitsFor(1999).Limit.IsZero())
}

func TestEscalatedLimits(t *testing.T) {
	limits := EscalatedLimits(2025, d("0.02"), 3)
	require.Len(t, limits, 3)
	decimalEqual(t, d("23500"), limits[0].Limit)
	decimalEqual(t, d("23970"), limits[1].Limit)
	assert.Equal(t, 2027, limits[2].Year)
}

func TestContributionCalculatorAnnual(t *testing.T) {
	cfg := fixtureConfig()
	cc := NewContributionCalculator(cfg, 2025)

	tests := []struct {
		name   string
		person domain.PersonConfig
		year   int
		want   string
	}{
		{
			name:   "elected amount below limit",
			person: domain.PersonConfig{CurrentAge: 40, RetirementAge: 65, Contribution401k: d("10000"), EmployerContribution401k: d("5000")},
			want:   "15000",
		},
		{
			name:   "elected amount capped at limit",
			person: domain.PersonConfig{CurrentAge: 40, RetirementAge: 65, Contribution401k: d("40000")},
			want:   "23500",
		},
		{
			name:   "maximize with catch-up",
			person: domain.PersonConfig{CurrentAge: 55, RetirementAge: 65, MaximizeContribution: true},
			want:   "31000",
		},
		{
			name:   "retired contributes nothing",
			person: domain.PersonConfig{CurrentAge: 66, RetirementAge: 65, MaximizeContribution: true, EmployerContribution401k: d("5000")},
			want:   "0",
		},
		{
			name:   "limit escalates by cola",
			person: domain.PersonConfig{CurrentAge: 40, RetirementAge: 65, MaximizeContribution: true},
			year:   1,
			want:   "23852.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decimalEqual(t, d(tt.want), cc.Annual(tt.person, tt.year))
		})
	}
}

func TestContributionCalculatorYearly(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Self.Contribution401k = d("10000")
	cfg.Partner.MaximizeContribution = true
	cc := NewContributionCalculator(cfg, 2025)

	c := cc.Yearly(0)
	decimalEqual(t, d("10000"), c.Self)
	decimalEqual(t, d("31000"), c.Partner)
	decimalEqual(t, d("41000"), c.Total())

	late := cc.Yearly(7)
	assert.True(t, late.Total().IsZero(), "both retired by year 7")
}
