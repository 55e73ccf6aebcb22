package money

import (
	"fmt"
)

// Bank holds directional exchange rates and reduces expressions with them.
// A Bank is not safe for concurrent use; build one per conversion session.
type Bank struct {
	// rates maps a pair to the divisor converting From amounts into To
	rates map[Pair]Rate
}

// NewBank constructs an empty Bank. Only identity conversions succeed until rates are added.
func NewBank() *Bank {
	return &Bank{
		rates: map[Pair]Rate{},
	}
}

// AddRate sets the rate for converting from into to. The inverse direction is not implied.
func (b *Bank) AddRate(from Currency, to Currency, rate Rate) error {
	if rate == 0 {
		return fmt.Errorf("add rate [%v]: %w", Pair{From: from, To: to}, ErrInvalidRate)
	}
	b.rates[Pair{From: from, To: to}] = rate
	return nil
}

// Rate returns the rate from one currency to another. Identical currencies always
// convert at 1, whatever the table holds.
func (b *Bank) Rate(from Currency, to Currency) (Rate, error) {
	if from == to {
		return 1, nil
	}

	pair := Pair{From: from, To: to}
	if b == nil {
		return 0, fmt.Errorf("rate [%v]: %w", pair, ErrRateNotFound)
	}
	rate, ok := b.rates[pair]
	if !ok {
		return 0, fmt.Errorf("rate [%v]: %w", pair, ErrRateNotFound)
	}
	return rate, nil
}

// Reduce collapses expr into a single Money in currency to.
// Either the whole expression reduces or an error is returned.
func (b *Bank) Reduce(expr Expression, to Currency) (Money, error) {
	if expr == nil {
		return Money{}, ErrNoExpression
	}
	return expr.Reduce(b, to)
}
