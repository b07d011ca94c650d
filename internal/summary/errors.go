package summary

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/sony/gobreaker/v2"
)

// Messages returned by Summarize when no summary could be produced.
const (
	MessageUnavailable      = "The summarization service is currently unavailable. Please try again later."
	MessageNoSummary        = "No summary available."
	MessageConnectionFailed = "Failed to connect to the summarization service. Please ensure the service is running."
	MessageTimeout          = "The summary request timed out. Please try again, or contact support if the problem persists."
	MessageFailed           = "An error occurred while generating the summary. Please try again later."
)

// IsFailure reports whether s is one of the failure messages above rather
// than text produced by the service.
func IsFailure(s string) bool {
	switch s {
	case MessageUnavailable, MessageConnectionFailed, MessageTimeout, MessageFailed:
		return true
	}
	return false
}

const (
	outcomeSuccess     = "success"
	outcomeEmpty       = "empty"
	outcomeUnavailable = "unavailable"
	outcomeCircuitOpen = "circuit_open"
	outcomeTimeout     = "timeout"
	outcomeConnection  = "connection_error"
	outcomeError       = "error"
)

var retryableStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// StatusError is a non-2xx answer from the generation endpoint.
type StatusError struct {
	StatusCode int
	Attempts   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation service returned status %d after %d attempt(s)", e.StatusCode, e.Attempts)
}

// classify maps a generation failure to the message shown to the caller and
// an outcome label for metrics.
func classify(err error) (message, outcome string) {
	switch {
	case isTimeout(err):
		return MessageTimeout, outcomeTimeout
	case isConnectionError(err):
		return MessageConnectionFailed, outcomeConnection
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return MessageUnavailable, outcomeCircuitOpen
	default:
		return MessageFailed, outcomeError
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
