package coinbase

import (
	"context"
	"github.com/go-kit/log"
	"go-currency-bank"
	"time"
)

// loggingService decorates a coinbase.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Rates(ctx context.Context, to money.Currency) (rates money.Rates, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rates",
			"currency", to,
			"count", len(rates),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rates(ctx, to)
}
