package exchange

import (
	"context"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go-currency-bank"
	"time"
)

// Metrics for the exchange service, partitioned by method and outcome.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the exchange metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_exchange_requests_total",
			Help: "Total number of exchange requests by method and outcome",
		}, []string{"method", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_exchange_duration_seconds",
			Help:    "Duration of exchange requests, including rate lookups",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
	}
}

// observe records one call of method that started at begin.
func (m *Metrics) observe(method string, begin time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
	m.Duration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}

// instrumentingService decorates an exchange.Service with metrics
type instrumentingService struct {
	metrics *Metrics
	next    Service
}

// NewInstrumentingService returns a new instance of an instrumenting Service
func NewInstrumentingService(metrics *Metrics, s Service) Service {
	return &instrumentingService{
		metrics: metrics,
		next:    s,
	}
}

func (s *instrumentingService) Reduce(ctx context.Context, expr money.Expression, to money.Currency) (m money.Money, err error) {
	defer func(begin time.Time) {
		s.metrics.observe("reduce", begin, err)
	}(time.Now())
	return s.next.Reduce(ctx, expr, to)
}

func (s *instrumentingService) Rate(ctx context.Context, from money.Currency, to money.Currency) (rate money.Rate, err error) {
	defer func(begin time.Time) {
		s.metrics.observe("rate", begin, err)
	}(time.Now())
	return s.next.Rate(ctx, from, to)
}
