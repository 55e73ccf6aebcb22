package http

import (
	"context"
	"encoding/json"
	"errors"
	"go-currency-bank"
	"net/http"
)

// statusClientClosedRequest is logged when the client goes away before a reply
const statusClientClosedRequest = 499

// statusFor maps errors from decoding and reduction to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadExpression):
		return http.StatusBadRequest
	case errors.Is(err, money.ErrRateNotFound),
		errors.Is(err, money.ErrOverflow),
		errors.Is(err, money.ErrInvalidRate),
		errors.Is(err, money.ErrNoExpression):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		// rate source failures
		return http.StatusBadGateway
	}
}

func writeError(rw http.ResponseWriter, status int, msg string) {
	writeJSON(rw, status, struct {
		Error string `json:"error"`
	}{msg})
}

func writeJSON(rw http.ResponseWriter, status int, v interface{}) {
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}
