//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234567.5)
	got := FormatCurrency(v)
	want := "$1,234,568"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(0.123456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatRateFloat(t *testing.T) {
	if got, want := FormatRateFloat(-0.0525), "-5.25%"; got != want {
		t.Errorf("FormatRateFloat(-0.0525) = %q, want %q", got, want)
	}
}
