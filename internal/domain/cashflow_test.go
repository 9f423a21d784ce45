package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestYearlyCashFlowRates(t *testing.T) {
	tests := []struct {
		name                 string
		beginning, ending    int64
		draw, returns        int64
		wantReturn, wantDraw string
		wantDrawdown         string
	}{
		{"growing portfolio", 1_000_000, 1_030_000, 40_000, 70_000, "0.07", "0.04", "0.0388349514563107"},
		{"ending depleted", 50_000, -10_000, 60_000, 0, "0", "1.2", "0"},
		{"opening depleted", -1, -70_000, 70_000, 0, "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := YearlyCashFlow{
				BeginningBalance: decimal.NewFromInt(tt.beginning),
				EndingBalance:    decimal.NewFromInt(tt.ending),
				PortfolioDraw:    decimal.NewFromInt(tt.draw),
				InvestmentReturn: YearlyReturns{Total: decimal.NewFromInt(tt.returns)},
			}
			assert.True(t, cf.ReturnRate().Equal(decimal.RequireFromString(tt.wantReturn)), "return rate %s", cf.ReturnRate())
			assert.True(t, cf.WithdrawalRate().Equal(decimal.RequireFromString(tt.wantDraw)), "withdrawal rate %s", cf.WithdrawalRate())
			assert.True(t, cf.DrawdownRate().Equal(decimal.RequireFromString(tt.wantDrawdown)), "drawdown rate %s", cf.DrawdownRate())
		})
	}
}

func TestNextOpeningBalanceAddsLumpSums(t *testing.T) {
	cf := YearlyCashFlow{
		EndingBalance:    decimal.NewFromInt(-5_000),
		DownsizeProceeds: decimal.NewFromInt(200_000),
		WindfallAmount:   decimal.NewFromInt(25_000),
	}
	assert.True(t, cf.NextOpeningBalance().Equal(decimal.NewFromInt(220_000)))
}
