package exchange

import (
	"context"
	"github.com/go-kit/log"
	"go-currency-bank"
	"time"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Reduce(ctx context.Context, expr money.Expression, to money.Currency) (m money.Money, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "reduce",
			"expression", expr,
			"to", to,
			"reduced", m,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reduce(ctx, expr, to)
}

func (s *loggingService) Rate(ctx context.Context, from money.Currency, to money.Currency) (rate money.Rate, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rate",
			"from", from,
			"to", to,
			"rate", rate,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rate(ctx, from, to)
}
