package money

import "errors"

var (
	// ErrRateNotFound is returned when a reduction needs a pair the Bank doesn't hold.
	ErrRateNotFound = errors.New("rate not found")

	// ErrInvalidRate is returned when adding a zero rate.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrOverflow is returned when scaling or summing amounts exceeds the Amount range.
	ErrOverflow = errors.New("amount overflow")

	// ErrNoExpression is returned when reducing a nil Expression.
	ErrNoExpression = errors.New("no expression")

	// ErrBadMoney is returned when a money literal can't be parsed.
	ErrBadMoney = errors.New("bad money literal")
)
