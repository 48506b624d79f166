package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// Kind classifies a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindRateLimited
	KindServerError
	KindServiceUnavailable
	KindTimeout
	KindNetworkError
	KindCancelled
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
	KindNotFound:           "not_found",
	KindValidation:         "validation",
	KindRateLimited:        "rate_limited",
	KindServerError:        "server_error",
	KindServiceUnavailable: "service_unavailable",
	KindTimeout:            "timeout",
	KindNetworkError:       "network_error",
	KindCancelled:          "cancelled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrResponseTooLarge is returned when a success body passes the 10 MB cap.
var ErrResponseTooLarge = errors.New("response exceeds 10 MB")

// User-facing messages.
const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgForbidden      = "Access denied. You don't have permission to perform this action."
	msgNotFound       = "The requested resource was not found."
	msgValidation     = "Validation failed. Please check your input."
	msgRateLimited    = "Too many requests. Please slow down and try again."
	msgServerError    = "Server error. Please try again later."
	msgUnavailable    = "Service temporarily unavailable. Please try again later."
	msgTimeout        = "Request timed out. Please check your connection and try again."
	msgNetwork        = "Network error. Please check your internet connection."
	msgUnexpected     = "An unexpected error occurred."
	msgCancelled      = "Request cancelled."
)

// Error is a classified API failure. Err holds the underlying transport
// error, or a status error when the server answered.
type Error struct {
	Kind    Kind
	Message string
	Status  int // 0 when no response was received
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindUnknown when err is not
// an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// serverMessage extracts message, then error, from a JSON error body.
func serverMessage(body []byte) string {
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return ""
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}
	return strings.TrimSpace(eb.Error)
}

// classifyStatus maps an HTTP error response to an *Error.
func classifyStatus(status int, body []byte) *Error {
	e := &Error{
		Status: status,
		Body:   body,
		Err:    fmt.Errorf("unexpected status %d", status),
	}
	switch status {
	case 401:
		e.Kind, e.Message = KindUnauthorized, msgSessionExpired
	case 403:
		e.Kind, e.Message = KindForbidden, msgForbidden
	case 404:
		e.Kind, e.Message = KindNotFound, msgNotFound
	case 422:
		e.Kind, e.Message = KindValidation, orDefault(serverMessage(body), msgValidation)
	case 429:
		e.Kind, e.Message = KindRateLimited, msgRateLimited
	case 500:
		e.Kind, e.Message = KindServerError, msgServerError
	case 502, 503, 504:
		e.Kind, e.Message = KindServiceUnavailable, msgUnavailable
	default:
		e.Kind, e.Message = KindUnknown, orDefault(serverMessage(body), msgUnexpected)
	}
	return e
}

// classifyTransport maps a failure with no HTTP response to an *Error.
// callerErr is the caller context's error at the time of failure; a caller
// cancellation wins over whatever the transport reported.
func classifyTransport(err, callerErr error) *Error {
	e := &Error{Err: err}
	switch {
	case errors.Is(callerErr, context.Canceled) || errors.Is(err, context.Canceled):
		e.Kind, e.Message = KindCancelled, msgCancelled
	case isTimeout(err):
		e.Kind, e.Message = KindTimeout, msgTimeout
	case isNetwork(err):
		e.Kind, e.Message = KindNetworkError, msgNetwork
	default:
		e.Kind, e.Message = KindUnknown, msgUnexpected
	}
	return e
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNetwork(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		var ue *url.Error
		return errors.As(err, &ue)
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
