package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind identifies one of the five household accounts
type AccountKind int

const (
	AccountSelf401k AccountKind = iota
	AccountPartner401k
	AccountRothIRA
	AccountBrokerage
	AccountCash
)

// AllAccounts lists every account kind in declaration order.
var AllAccounts = []AccountKind{AccountSelf401k, AccountPartner401k, AccountRothIRA, AccountBrokerage, AccountCash}

var accountNames = map[AccountKind]string{
	AccountSelf401k:    "self_401k",
	AccountPartner401k: "partner_401k",
	AccountRothIRA:     "roth_ira",
	AccountBrokerage:   "brokerage",
	AccountCash:        "cash",
}

func (k AccountKind) String() string {
	if n, ok := accountNames[k]; ok {
		return n
	}
	return fmt.Sprintf("account(%d)", int(k))
}

// ParseAccountKind resolves an account name such as "brokerage".
func ParseAccountKind(s string) (AccountKind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for k, name := range accountNames {
		if name == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown account %q", s)
}

// Get returns the balance of one account.
func (b AccountBalances) Get(k AccountKind) decimal.Decimal {
	switch k {
	case AccountSelf401k:
		return b.Self401k
	case AccountPartner401k:
		return b.Partner401k
	case AccountRothIRA:
		return b.RothIRA
	case AccountBrokerage:
		return b.Brokerage
	case AccountCash:
		return b.Cash
	}
	return decimal.Zero
}

// Set assigns the amount for one account on a YearlyDraws breakdown.
func (d *YearlyDraws) Set(k AccountKind, amount decimal.Decimal) {
	switch k {
	case AccountSelf401k:
		d.Self401k = amount
	case AccountPartner401k:
		d.Partner401k = amount
	case AccountRothIRA:
		d.RothIRA = amount
	case AccountBrokerage:
		d.Brokerage = amount
	case AccountCash:
		d.Cash = amount
	}
}

// Get returns the draw taken from one account.
func (d YearlyDraws) Get(k AccountKind) decimal.Decimal {
	switch k {
	case AccountSelf401k:
		return d.Self401k
	case AccountPartner401k:
		return d.Partner401k
	case AccountRothIRA:
		return d.RothIRA
	case AccountBrokerage:
		return d.Brokerage
	case AccountCash:
		return d.Cash
	}
	return decimal.Zero
}

// Sum adds the per-account draws.
func (d YearlyDraws) Sum() decimal.Decimal {
	return d.Self401k.Add(d.Partner401k).Add(d.RothIRA).Add(d.Brokerage).Add(d.Cash)
}
