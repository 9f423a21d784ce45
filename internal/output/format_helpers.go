package output

import (
	"strconv"

	"github.com/rpgo/household-montecarlo/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with separators.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatCurrency(amount) }

// FormatPercentage formats a fraction (0.1234) as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string { return money.FormatRate(rate) }

// FormatRateFloat formats a float fraction as a percentage with 2 decimals.
func FormatRateFloat(rate float64) string {
	return money.FormatRate(decimal.NewFromFloat(rate))
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
