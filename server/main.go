package main

import (
	"context"
	"errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"go-currency-bank/coinbase"
	"go-currency-bank/config"
	"go-currency-bank/exchange"
	"go-currency-bank/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.FromEnv(".env")
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allowLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := newSource(ctx, cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "loading rates", "err", err)
		os.Exit(1)
	}

	exchangeService := exchange.NewService(source)
	exchangeService = exchange.NewLoggingService(log.With(logger, "component", "exchange"), exchangeService)
	exchangeService = exchange.NewInstrumentingService(exchange.NewMetrics(prometheus.DefaultRegisterer), exchangeService)

	handler := http.NewServer(exchangeService, log.With(logger, "component", "http"), http.Options{
		RequestTimeout: cfg.RequestTimeout,
		RateLimit:      cfg.RateLimit,
		Gatherer:       prometheus.DefaultGatherer,
	})

	server := &nhttp.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	level.Info(logger).Log("msg", "listening", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
		level.Error(logger).Log("msg", "serving", "err", err)
		os.Exit(1)
	}
}

// newSource composes the static rate table with the coinbase feed, when enabled.
func newSource(ctx context.Context, cfg *config.Config, logger log.Logger) (exchange.Source, error) {
	table := &config.RateTable{}
	if cfg.RatesFile != "" {
		var err error
		table, err = config.LoadRates(cfg.RatesFile)
		if err != nil {
			return nil, err
		}
	}
	level.Info(logger).Log("msg", "loaded static rates", "count", len(table.Rates), "file", cfg.RatesFile)

	var source exchange.Source = exchange.NewStaticSource(table.Pairs())
	if !cfg.FeedEnabled {
		return source, nil
	}

	var feed coinbase.Service
	feed = coinbase.NewService(cfg.FeedURL, log.With(logger, "component", "coinbase_rest"))
	feed = coinbase.NewLoggingService(log.With(logger, "component", "coinbase_rest"), feed)
	feed = coinbase.NewCachingService(ctx, cfg.FeedRefresh, log.With(logger, "component", "coinbase_cache"), feed)
	feed = coinbase.NewLoggingService(log.With(logger, "component", "coinbase_cache"), feed)

	return exchange.NewFallbackSource(source, feed), nil
}

// allowLevel maps a configured log level to a level filter
func allowLevel(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
