package calculation

import (
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateEarnings(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		age      int
		expected decimal.Decimal
	}{
		{"first year", 0, 60, d("100000")},
		{"year before retirement", 4, 64, d("112550.881")},
		{"retirement year", 5, 65, decimal.Zero},
		{"after retirement", 8, 68, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEarnings(d("100000"), d("0.03"), tt.year, tt.age, 65)
			decimalEqual(t, tt.expected, got)
		})
	}
}

func TestCalculateSocialSecurity(t *testing.T) {
	decimalEqual(t, decimal.Zero, CalculateSocialSecurity(d("36000"), d("0.015"), 67, 66))
	decimalEqual(t, d("36000"), CalculateSocialSecurity(d("36000"), d("0.015"), 67, 67))
	decimalEqual(t, d("37088.1"), CalculateSocialSecurity(d("36000"), d("0.015"), 67, 69))
}

func TestCalculatePension(t *testing.T) {
	decimalEqual(t, decimal.Zero, CalculatePension(d("20000"), d("0.02"), 62, 61))
	decimalEqual(t, d("20000"), CalculatePension(d("20000"), d("0.02"), 62, 62))
	decimalEqual(t, d("20400"), CalculatePension(d("20000"), d("0.02"), 62, 63))
}

func TestCalculateRental(t *testing.T) {
	r := domain.RentalConfig{StartYear: 2026, EndYear: 2028, Amount: d("12000"), Growth: d("0.05")}

	decimalEqual(t, decimal.Zero, CalculateRental(r, 2025))
	decimalEqual(t, d("12000"), CalculateRental(r, 2026))
	decimalEqual(t, d("13230"), CalculateRental(r, 2028))
	decimalEqual(t, decimal.Zero, CalculateRental(r, 2029))
}

func TestIncomeCalculatorYearly(t *testing.T) {
	cfg := fixtureConfig()
	ic := NewIncomeCalculator(cfg)

	y4 := ic.Yearly(4, testStartYear+4)
	decimalEqual(t, d("112550.881"), y4.SelfEarnings)
	assert.True(t, y4.PartnerEarnings.IsPositive())
	assert.True(t, y4.SelfSocialSecurity.IsZero())

	y5 := ic.Yearly(5, testStartYear+5)
	assert.True(t, y5.SelfEarnings.IsZero(), "earnings stop in the retirement year")

	y7 := ic.Yearly(7, testStartYear+7)
	decimalEqual(t, d("30000"), y7.SelfSocialSecurity)
	decimalEqual(t, y7.SelfSocialSecurity.Add(y7.PartnerSocialSecurity).Add(y7.PartnerEarnings), y7.Total())
}
