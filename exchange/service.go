package exchange

import (
	"context"
	"fmt"
	"go-currency-bank"
)

// Service reduces money expressions with rates supplied by a Source
type Service interface {
	Reduce(ctx context.Context, expr money.Expression, to money.Currency) (money.Money, error)
	Rate(ctx context.Context, from money.Currency, to money.Currency) (money.Rate, error)
}

// service builds a fresh money.Bank for every call, so no bank is ever shared between requests.
type service struct {
	// source to look up exchange rates into a target currency
	source Source
}

// NewService constructs a valid Service
func NewService(source Source) Service {
	return &service{
		source: source,
	}
}

// Reduce collapses expr into a single amount of currency to.
// As a side-effect the source's cache of exchange rates might be updated.
func (s *service) Reduce(ctx context.Context, expr money.Expression, to money.Currency) (money.Money, error) {
	if expr == nil {
		return money.Money{}, money.ErrNoExpression
	}

	bank, err := s.bank(ctx, to, money.Currencies(expr))
	if err != nil {
		return money.Money{}, fmt.Errorf("reduce to [%v]: %w", to, err)
	}
	return bank.Reduce(expr, to)
}

// Rate returns the rate converting from into to.
func (s *service) Rate(ctx context.Context, from money.Currency, to money.Currency) (money.Rate, error) {
	bank, err := s.bank(ctx, to, []money.Currency{from})
	if err != nil {
		return 0, fmt.Errorf("rate to [%v]: %w", to, err)
	}
	return bank.Rate(from, to)
}

// bank builds a Bank holding the rates from each of the given currencies into to.
// Currencies the source doesn't know are left out; the Bank reports them when reducing.
func (s *service) bank(ctx context.Context, to money.Currency, from []money.Currency) (*money.Bank, error) {
	bank := money.NewBank()

	var needed []money.Currency
	for _, c := range from {
		if c != to {
			needed = append(needed, c)
		}
	}
	if len(needed) == 0 {
		return bank, nil
	}

	rates, err := s.source.Rates(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("loading rates: %w", err)
	}

	for _, c := range needed {
		rate, ok := rates[c]
		if !ok {
			continue
		}
		if err := bank.AddRate(c, to, rate); err != nil {
			return nil, err
		}
	}
	return bank, nil
}
