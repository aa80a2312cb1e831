package gengo

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeNotEnoughCredits is the API error code for an insufficient balance.
const CodeNotEnoughCredits = 2700

const defaultAPIMessage = "operation failed"

var (
	// ErrNotEnoughCredits matches any *APIError with CodeNotEnoughCredits.
	ErrNotEnoughCredits = errors.New("gengo: not enough credits")
	// ErrMalformedEnvelope is returned when a successful HTTP response does
	// not carry a JSON envelope.
	ErrMalformedEnvelope = errors.New("gengo: malformed response envelope")
)

// TransportError is a connectivity, timeout or TLS failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gengo: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a response outside 200-299.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func newStatusError(code int, cause error) *StatusError {
	msg := http.StatusText(code)
	if msg == "" {
		msg = fmt.Sprintf("status %d", code)
	}
	return &StatusError{StatusCode: code, Message: msg, Err: cause}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gengo: http %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// APIError is an envelope whose opstat is not "ok".
type APIError struct {
	Code    int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gengo: api error %d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	return target == ErrNotEnoughCredits && e.Code == CodeNotEnoughCredits
}

// IsNotEnoughCredits reports whether err is the insufficient balance error.
func IsNotEnoughCredits(err error) bool {
	return errors.Is(err, ErrNotEnoughCredits)
}
