package coinbase

import (
	"context"
	"fmt"
	"github.com/go-kit/log"
	"go-currency-bank"
	"golang.org/x/sync/singleflight"
	"sync"
	"time"
)

// cachingService decorates a coinbase.Service with a cache of exchange rates.
// The cachingService is concurrency safe and will periodically refresh cached values.
type cachingService struct {
	// ctx bounds the lifetime of the refresh go-routines and of the fetches made on their behalf
	ctx context.Context

	// next the service being decorated with a cache
	next Service
	// cache the cache of rates
	cache map[money.Currency]money.Rates

	// updateFrequency how often to refresh cached values
	updateFrequency time.Duration

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	// seeding collapses concurrent first lookups of the same currency into one fetch
	seeding singleflight.Group

	logger log.Logger
}

// NewCachingService returns a new caching Service.
// Cancelling ctx stops periodic refreshes and empties the cache.
func NewCachingService(ctx context.Context, updateFrequency time.Duration, logger log.Logger, s Service) Service {
	return &cachingService{
		ctx:             ctx,
		next:            s,
		cache:           map[money.Currency]money.Rates{},
		updateFrequency: updateFrequency,
		lock:            sync.RWMutex{},
		logger:          logger,
	}
}

// Rates looks up exchange rates and caches the results
func (s *cachingService) Rates(ctx context.Context, to money.Currency) (money.Rates, error) {
	s.lock.RLock()
	rates, ok := s.cache[to]
	s.lock.RUnlock()

	if ok {
		return rates, nil
	}

	// The first lookup of a currency seeds the cache and starts its refresh go-routine.
	// Concurrent first lookups share a single fetch, which is bound to the service's
	// lifetime rather than to whichever request happened to arrive first.
	ch := s.seeding.DoChan(string(to), func() (interface{}, error) {
		rates, firstTime, err := s.refreshNow(s.ctx, to)
		if err != nil {
			return nil, err
		}
		if firstTime {
			s.logger.Log("msg", "scheduling periodic refresh", "currency", to)
			go s.refreshPeriodically(to)
		}
		return rates, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("seeding cache [%v]: %w", to, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("seeding cache [%v]: %w", to, res.Err)
		}
		return res.Val.(money.Rates), nil
	}
}

// refreshNow refreshes a cached entry immediately.
// The bool is true the first time currency is cached.
func (s *cachingService) refreshNow(ctx context.Context, currency money.Currency) (money.Rates, bool, error) {
	rates, err := s.next.Rates(ctx, currency)
	if err != nil {
		return nil, false, fmt.Errorf("refresh [%v]: %w", currency, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.ctx.Err() != nil {
		// shutting down, don't resurrect an entry uncache already removed
		return rates, false, nil
	}
	_, ok := s.cache[currency]
	s.cache[currency] = rates
	return rates, !ok, nil
}

// refreshPeriodically refreshes a cached entry on a given schedule.
// This is expected to be called from a go-routine for each currency.
func (s *cachingService) refreshPeriodically(currency money.Currency) {
	ticker := time.NewTicker(s.updateFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _, err := s.refreshNow(s.ctx, currency)
			if err != nil {
				// Don't return, just log and hope this is a transient error
				s.logger.Log("msg", "periodic refresh failed", "currency", currency, "err", err)
			}
		case <-s.ctx.Done():
			s.logger.Log("msg", "shutting down periodic refresh", "currency", currency)
			s.uncache(currency)
			return
		}
	}
}

// uncache safely removes currency from the cache
func (s *cachingService) uncache(currency money.Currency) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.cache, currency)
}
