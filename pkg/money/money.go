package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Compound returns base × (1+rate)^periods. Non-positive periods return base.
func Compound(base, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return base
	}
	return base.Mul(GrowthFactor(rate, periods))
}

// GrowthFactor returns (1+rate)^periods.
func GrowthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// Deflate converts a future amount to today's currency over the given periods.
func Deflate(amount, rate decimal.Decimal, periods int) decimal.Decimal {
	factor := GrowthFactor(rate, periods)
	if factor.IsZero() {
		return decimal.Zero
	}
	return amount.Div(factor)
}

// Percent converts a whole percentage (60) to a fraction (0.6).
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FormatCurrency renders a whole-dollar amount with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatRate renders a fraction as a percentage with two decimals.
func FormatRate(rate decimal.Decimal) string {
	return fmt.Sprintf("%s%%", rate.Mul(hundred).StringFixed(2))
}
