package money

import (
	"fmt"
	"math/bits"
)

// Sum a composite expression owning its augend and addend
type Sum struct {
	augend Expression
	addend Expression
}

// NewSum constructs a Sum; the operands become owned by it.
func NewSum(augend, addend Expression) *Sum {
	return &Sum{
		augend: augend,
		addend: addend,
	}
}

func (s *Sum) Augend() Expression {
	return s.augend
}

func (s *Sum) Addend() Expression {
	return s.addend
}

// Times distributes the multiplier over both operands.
func (s *Sum) Times(multiplier Amount) (Expression, error) {
	if s.augend == nil || s.addend == nil {
		return nil, fmt.Errorf("times [%v]: %w", s, ErrNoExpression)
	}
	augend, err := s.augend.Times(multiplier)
	if err != nil {
		return nil, err
	}
	addend, err := s.addend.Times(multiplier)
	if err != nil {
		return nil, err
	}
	return NewSum(augend, addend), nil
}

func (s *Sum) Plus(addend Expression) Expression {
	return NewSum(s, addend)
}

// Reduce reduces each operand to currency to with its own direct rate and adds the results.
func (s *Sum) Reduce(bank *Bank, to Currency) (Money, error) {
	if s.augend == nil || s.addend == nil {
		return Money{}, fmt.Errorf("reduce [%v]: %w", s, ErrNoExpression)
	}

	augend, err := s.augend.Reduce(bank, to)
	if err != nil {
		return Money{}, err
	}
	addend, err := s.addend.Reduce(bank, to)
	if err != nil {
		return Money{}, err
	}

	total, carry := bits.Add64(uint64(augend.amount), uint64(addend.amount), 0)
	if carry != 0 {
		return Money{}, fmt.Errorf("reduce [%v] to %v: %w", s, to, ErrOverflow)
	}
	return New(Amount(total), to), nil
}

func (s *Sum) String() string {
	return fmt.Sprintf("(%v + %v)", s.augend, s.addend)
}

func (s *Sum) expression() {}
