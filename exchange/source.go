package exchange

import (
	"context"
	"fmt"
	"go-currency-bank"
)

// Source looks up the rates from every currency it knows into currency to.
// Implementations must be concurrency-safe, and the returned Rates must not be modified later.
type Source interface {
	Rates(ctx context.Context, to money.Currency) (money.Rates, error)
}

// staticSource serves a fixed table of rates
type staticSource struct {
	// rates indexed by target currency
	rates map[money.Currency]money.Rates
}

// NewStaticSource returns a Source over a fixed rate table.
func NewStaticSource(table map[money.Pair]money.Rate) Source {
	rates := map[money.Currency]money.Rates{}
	for pair, rate := range table {
		if rates[pair.To] == nil {
			rates[pair.To] = money.Rates{}
		}
		rates[pair.To][pair.From] = rate
	}
	return &staticSource{
		rates: rates,
	}
}

func (s *staticSource) Rates(_ context.Context, to money.Currency) (money.Rates, error) {
	rates, ok := s.rates[to]
	if !ok {
		return money.Rates{}, nil
	}
	return rates, nil
}

// fallbackSource overlays a primary source on a secondary one
type fallbackSource struct {
	primary   Source
	secondary Source
}

// NewFallbackSource returns a Source whose primary entries override the secondary ones.
// A failing secondary is tolerated as long as the primary has rates for the target.
func NewFallbackSource(primary Source, secondary Source) Source {
	return &fallbackSource{
		primary:   primary,
		secondary: secondary,
	}
}

func (s *fallbackSource) Rates(ctx context.Context, to money.Currency) (money.Rates, error) {
	primary, err := s.primary.Rates(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("primary rates [%v]: %w", to, err)
	}

	secondary, err := s.secondary.Rates(ctx, to)
	if err != nil {
		if len(primary) == 0 {
			return nil, fmt.Errorf("secondary rates [%v]: %w", to, err)
		}
		return primary, nil
	}

	rates := make(money.Rates, len(primary)+len(secondary))
	for c, r := range secondary {
		rates[c] = r
	}
	for c, r := range primary {
		rates[c] = r
	}
	return rates, nil
}
