package money

import (
	"fmt"
)

// Expression an unreduced monetary value: either a Money leaf or a *Sum of two expressions.
// The set of implementations is closed; currency is only known after reduction.
type Expression interface {
	fmt.Stringer

	// Times scales every leaf of the expression by multiplier.
	Times(multiplier Amount) (Expression, error)

	// Plus returns a new Sum of the receiver and addend.
	Plus(addend Expression) Expression

	// Reduce collapses the expression into a single Money in currency to.
	Reduce(bank *Bank, to Currency) (Money, error)

	expression()
}

// Currencies lists the distinct leaf currencies of expr in first-seen order.
func Currencies(expr Expression) []Currency {
	var currencies []Currency
	seen := map[Currency]bool{}

	var walk func(Expression)
	walk = func(e Expression) {
		switch e := e.(type) {
		case Money:
			if !seen[e.currency] {
				seen[e.currency] = true
				currencies = append(currencies, e.currency)
			}
		case *Sum:
			walk(e.augend)
			walk(e.addend)
		}
	}
	walk(expr)

	return currencies
}
