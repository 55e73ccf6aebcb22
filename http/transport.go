package http

import (
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go-currency-bank"
	"go-currency-bank/exchange"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// currencyTag names the validator alias for currency codes supplied by clients
const currencyTag = "currency"

// currencyRule expands currencyTag
const currencyRule = "required,len=3,alpha,uppercase"

// Options tune the HTTP server. Zero values disable the corresponding feature.
type Options struct {
	// RequestTimeout bounds each request, including rate lookups
	RequestTimeout time.Duration

	// RateLimit requests per minute per client IP
	RateLimit int

	// Gatherer exposed on /metrics
	Gatherer prometheus.Gatherer
}

// Server dependencies for HTTP Server functions
type Server struct {
	Service exchange.Service
	Logger  log.Logger

	router   chi.Router
	validate *validator.Validate
}

func NewServer(s exchange.Service, logger log.Logger, opts Options) *Server {
	validate := validator.New()
	validate.RegisterAlias(currencyTag, currencyRule)

	server := &Server{
		Service:  s,
		Logger:   logger,
		router:   chi.NewRouter(),
		validate: validate,
	}
	server.routes(opts)
	return server
}

func (s *Server) routes(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	s.router.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
		}
		r.Post("/api/reduce", s.reduce())
		r.Get("/api/rate", s.rate())
	})

	if opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// logRequests logs one line per request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Log(
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"took", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// reduce produces HTTP handler for reducing money expressions
func (s *Server) reduce() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		Expression *node          `json:"expression" validate:"required"`
		To         money.Currency `json:"to" validate:"currency"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Amount     money.Amount   `json:"amount"`
		Currency   money.Currency `json:"currency"`
		Expression string         `json:"expression"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		decoder.DisallowUnknownFields()

		var request request
		err := decoder.Decode(&request)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid json")
			return
		}

		err = s.validate.Struct(request)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}

		expr, err := request.Expression.expression(s.validate, 0)
		if err != nil {
			writeError(rw, statusFor(err), err.Error())
			return
		}

		result, err := s.Service.Reduce(r.Context(), expr, request.To)
		if err != nil {
			writeError(rw, statusFor(err), "failed reduction: "+err.Error())
			return
		}

		writeJSON(rw, http.StatusOK, response{
			Amount:     result.Amount(),
			Currency:   result.Currency(),
			Expression: expr.String(),
		})
	}
}

// rate produces HTTP handler for looking up a single exchange rate
func (s *Server) rate() http.HandlerFunc {

	type request struct {
		From money.Currency `validate:"currency"`
		To   money.Currency `validate:"currency"`
	}

	type response struct {
		From money.Currency `json:"from"`
		To   money.Currency `json:"to"`
		Rate money.Rate     `json:"rate"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		request := request{
			From: money.Currency(r.URL.Query().Get("from")),
			To:   money.Currency(r.URL.Query().Get("to")),
		}
		err := s.validate.Struct(request)
		if err != nil {
			writeError(rw, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}

		rate, err := s.Service.Rate(r.Context(), request.From, request.To)
		if err != nil {
			writeError(rw, statusFor(err), "failed rate lookup: "+err.Error())
			return
		}

		writeJSON(rw, http.StatusOK, response{
			From: request.From,
			To:   request.To,
			Rate: rate,
		})
	}
}
