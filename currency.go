package money

import (
	"fmt"
)

// Currency a currency code, compared by exact match
type Currency string

// Amount a monetary amount in whole units of its currency
type Amount uint64

// Rate an exchange rate, used as a divisor: converted = amount / rate
type Rate uint64

// Rates maps source currencies to their rate into one target currency
type Rates map[Currency]Rate

// Pair a directional (from, to) key into a Bank's rate table
type Pair struct {
	From Currency
	To   Currency
}

func (p Pair) String() string {
	return fmt.Sprintf("%v/%v", p.From, p.To)
}
