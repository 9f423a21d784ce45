package calculation

import (
	"testing"

	"github.com/rpgo/household-montecarlo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideDraw(t *testing.T) {
	t.Run("income covers expenses", func(t *testing.T) {
		dec := DecideDraw(d("100000"), d("80000"), d("0.15"))
		assert.Equal(t, DrawCovered, dec.State)
		decimalEqual(t, d("15000"), dec.TotalTax)
		assert.True(t, dec.Withdrawal.IsZero())
	})

	t.Run("exact cover needs no draw", func(t *testing.T) {
		dec := DecideDraw(d("100000"), d("85000"), d("0.15"))
		assert.Equal(t, DrawCovered, dec.State)
		assert.True(t, dec.Withdrawal.IsZero())
	})

	t.Run("shortfall is grossed up", func(t *testing.T) {
		dec := DecideDraw(d("40000"), d("80000"), d("0.15"))
		assert.Equal(t, DrawRequired, dec.State)
		decimalEqual(t, d("6000"), dec.EstimatedTax)
		decimalEqual(t, d("46000"), dec.PretaxDraw)
		decimalEqual(t, d("6900"), dec.PortfolioTax)
		decimalEqual(t, d("52900"), dec.Withdrawal)
		decimalEqual(t, d("12900"), dec.TotalTax)
	})

	t.Run("no income", func(t *testing.T) {
		dec := DecideDraw(decimal.Zero, d("50000"), d("0.2"))
		decimalEqual(t, d("60000"), dec.Withdrawal)
		decimalEqual(t, d("10000"), dec.TotalTax)
	})
}

func TestParseWaterfall(t *testing.T) {
	w, err := ParseWaterfall(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWaterfall, w)

	w, err = ParseWaterfall([]string{"cash", "brokerage", "roth_ira", "self_401k", "partner_401k"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cash", "brokerage", "roth_ira", "self_401k", "partner_401k"}, w.Names())

	_, err = ParseWaterfall([]string{"cash", "cash", "brokerage", "roth_ira", "self_401k"})
	assert.Error(t, err)

	_, err = ParseWaterfall([]string{"cash", "brokerage"})
	assert.Error(t, err)

	_, err = ParseWaterfall([]string{"cash", "savings", "brokerage", "roth_ira", "self_401k"})
	assert.Error(t, err)
}

func TestWaterfallAllocate(t *testing.T) {
	balances := domain.AccountBalances{
		Self401k:    d("30000"),
		Partner401k: d("-500"),
		RothIRA:     d("100000"),
		Brokerage:   d("20000"),
		Cash:        d("10000"),
	}

	tests := []struct {
		name      string
		requested string
		want      map[domain.AccountKind]string
		total     string
	}{
		{
			name:      "first account covers",
			requested: "15000",
			want:      map[domain.AccountKind]string{domain.AccountBrokerage: "15000"},
			total:     "15000",
		},
		{
			name:      "spills into later accounts",
			requested: "65000",
			want: map[domain.AccountKind]string{
				domain.AccountBrokerage: "20000",
				domain.AccountSelf401k:  "30000",
				domain.AccountCash:      "10000",
				domain.AccountRothIRA:   "5000",
			},
			total: "65000",
		},
		{
			name:      "exceeds all balances",
			requested: "500000",
			want: map[domain.AccountKind]string{
				domain.AccountBrokerage: "20000",
				domain.AccountSelf401k:  "30000",
				domain.AccountCash:      "10000",
				domain.AccountRothIRA:   "100000",
			},
			total: "160000",
		},
		{
			name:      "nothing requested",
			requested: "0",
			want:      map[domain.AccountKind]string{},
			total:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := d(tt.requested)
			draws := DefaultWaterfall.Allocate(requested, balances)

			for _, k := range domain.AllAccounts {
				want := decimal.Zero
				if s, ok := tt.want[k]; ok {
					want = d(s)
				}
				decimalEqual(t, want, draws.Get(k))
				assert.False(t, draws.Get(k).IsNegative())
				if balances.Get(k).IsPositive() {
					assert.True(t, draws.Get(k).LessThanOrEqual(balances.Get(k)), "draw on %s exceeds balance", k)
				}
			}
			decimalEqual(t, d(tt.total), draws.Total)
			decimalEqual(t, draws.Sum(), draws.Total)
			assert.True(t, draws.Total.LessThanOrEqual(requested))
		})
	}
}

func TestWaterfallAllocateNegativeBalancesUntouched(t *testing.T) {
	balances := domain.AccountBalances{Brokerage: d("-100"), Self401k: d("-1")}
	draws := DefaultWaterfall.Allocate(d("1000"), balances)
	assert.True(t, draws.Total.IsZero())
	assert.True(t, draws.Brokerage.IsZero())
}
