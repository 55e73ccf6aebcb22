package money

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Money an amount tagged with its currency. Money values are immutable and comparable with ==.
type Money struct {
	amount   Amount
	currency Currency
}

// New constructs a Money
func New(amount Amount, currency Currency) Money {
	return Money{
		amount:   amount,
		currency: currency,
	}
}

// moneySeparators split the amount from the currency in a literal
const moneySeparators = " :"

// ParseMoney parses literals such as "5 USD" or "5:USD". Exactly one
// separator is allowed between amount and currency; surrounding
// whitespace is ignored.
func ParseMoney(s string) (Money, error) {
	literal := strings.TrimSpace(s)
	i := strings.IndexAny(literal, moneySeparators)
	if i < 0 {
		return Money{}, fmt.Errorf("parse [%v]: %w", s, ErrBadMoney)
	}

	currency := literal[i+1:]
	if currency == "" || strings.ContainsAny(currency, moneySeparators) {
		return Money{}, fmt.Errorf("parse currency [%v]: %w", s, ErrBadMoney)
	}

	amount, err := strconv.ParseUint(literal[:i], 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount [%v]: %w: %v", s, ErrBadMoney, err)
	}

	return New(Amount(amount), Currency(currency)), nil
}

func (m Money) Amount() Amount {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

// Times scales the amount, failing rather than wrapping on overflow.
func (m Money) Times(multiplier Amount) (Expression, error) {
	hi, lo := bits.Mul64(uint64(m.amount), uint64(multiplier))
	if hi != 0 {
		return nil, fmt.Errorf("times [%v x %d]: %w", m, multiplier, ErrOverflow)
	}
	return New(Amount(lo), m.currency), nil
}

// Plus defers the addition to reduction, since the currencies may differ.
func (m Money) Plus(addend Expression) Expression {
	return NewSum(m, addend)
}

// Reduce converts m into currency to with the bank's direct rate.
// The division truncates: 1 CHF at a rate of 3 reduces to 0.
func (m Money) Reduce(bank *Bank, to Currency) (Money, error) {
	rate, err := bank.Rate(m.currency, to)
	if err != nil {
		return Money{}, fmt.Errorf("reduce [%v] to %v: %w", m, to, err)
	}
	return New(m.amount/Amount(rate), to), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d %v", m.amount, m.currency)
}

func (m Money) expression() {}
