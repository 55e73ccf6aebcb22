package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"
	"go-currency-bank"
	"io"
	"net/http"
	"time"
)

const ApiUrlBase = "https://api.coinbase.com/v2"

// Service wraps the coinbase REST API as a source of exchange rates
type Service interface {
	// Rates returns the rates converting other currencies into currency to.
	Rates(ctx context.Context, to money.Currency) (money.Rates, error)
}

// service coinbase API
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client

	logger log.Logger
}

// NewService constructs a valid coinbase Service. An empty url selects ApiUrlBase.
func NewService(url string, logger log.Logger) Service {
	if url == "" {
		url = ApiUrlBase
	}
	return &service{
		url: url,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Rates loads the current exchange rates for a given currency.
// Coinbase quotes "1 to = r X"; converting X into to divides by r, so r is the Bank rate for X/to.
// Only whole rates fit a Bank, fractional quotes are skipped.
func (s *service) Rates(ctx context.Context, to money.Currency) (money.Rates, error) {
	type Response struct {
		Data struct {
			Currency string
			Rates    map[string]string // maps currency codes to rates
		}
	}

	url := fmt.Sprintf("%v/exchange-rates?currency=%v", s.url, to)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http get [%v]: unexpected status %v", to, httpResponse.Status)
	}

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	rates := money.Rates{}
	for k, v := range response.Data.Rates {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("bad rate value [%v]: %w", k, err)
		}
		rate, ok := wholeRate(d)
		if !ok {
			level.Debug(s.logger).Log("msg", "skipping fractional rate", "from", k, "to", to, "rate", v)
			continue
		}
		rates[money.Currency(k)] = rate
	}

	return rates, nil
}

// wholeRate converts d to a Rate when it is a positive integer within range.
func wholeRate(d decimal.Decimal) (money.Rate, bool) {
	if !d.IsPositive() || !d.IsInteger() {
		return 0, false
	}
	n := d.BigInt()
	if !n.IsUint64() {
		return 0, false
	}
	return money.Rate(n.Uint64()), true
}
