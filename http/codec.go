package http

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"go-currency-bank"
)

// maxDepth bounds the nesting of posted expressions
const maxDepth = 64

var errBadExpression = errors.New("bad expression")

// node is the JSON form of a money.Expression: a leaf {"amount":5,"currency":"USD"}
// or a sum {"augend":{...},"addend":{...}}, either optionally scaled by "times".
type node struct {
	Amount   *money.Amount  `json:"amount,omitempty"`
	Currency money.Currency `json:"currency,omitempty"`
	Augend   *node          `json:"augend,omitempty"`
	Addend   *node          `json:"addend,omitempty"`
	Times    *money.Amount  `json:"times,omitempty"`
}

// expression builds the money.Expression described by n.
func (n *node) expression(validate *validator.Validate, depth int) (money.Expression, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nested deeper than %d", errBadExpression, maxDepth)
	}

	var expr money.Expression
	switch {
	case n.Augend != nil || n.Addend != nil:
		if n.Augend == nil || n.Addend == nil {
			return nil, fmt.Errorf("%w: sum needs an augend and an addend", errBadExpression)
		}
		if n.Amount != nil || n.Currency != "" {
			return nil, fmt.Errorf("%w: node is both a sum and an amount", errBadExpression)
		}
		augend, err := n.Augend.expression(validate, depth+1)
		if err != nil {
			return nil, err
		}
		addend, err := n.Addend.expression(validate, depth+1)
		if err != nil {
			return nil, err
		}
		expr = money.NewSum(augend, addend)
	default:
		if n.Amount == nil {
			return nil, fmt.Errorf("%w: missing amount", errBadExpression)
		}
		if err := validate.Var(n.Currency, currencyTag); err != nil {
			return nil, fmt.Errorf("%w: invalid currency %q", errBadExpression, n.Currency)
		}
		expr = money.New(*n.Amount, n.Currency)
	}

	if n.Times != nil {
		return expr.Times(*n.Times)
	}
	return expr, nil
}
