// Package upstream holds the plumbing shared by every outbound provider client:
// the error taxonomy, a JSON GET helper and the Caller that bounds each call
// with a timeout, retries and a circuit breaker.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a provider client matches exactly one of
// these with errors.Is.
var (
	ErrUnavailable   = errors.New("upstream unavailable")
	ErrMalformed     = errors.New("malformed upstream response")
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrRateLimited   = errors.New("upstream rate limited")
	ErrNotConfigured = errors.New("provider not configured")
)

// Error describes a failed provider call.
//
// It unwraps to both Kind and Err, so callers can test for the taxonomy
// (errors.Is(err, ErrRateLimited)) and for the cause
// (errors.Is(err, context.DeadlineExceeded)) on the same value.
type Error struct {
	Provider   string
	Op         string
	Kind       error
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewError builds an *Error. A nil kind defaults to ErrUnavailable.
func NewError(provider, op string, kind error, statusCode int, err error) *Error {
	if kind == nil {
		kind = ErrUnavailable
	}
	return &Error{Provider: provider, Op: op, Kind: kind, StatusCode: statusCode, Err: err}
}

// KindOf returns the taxonomy kind of err, or nil when err is nil.
// Errors outside the taxonomy are reported as ErrUnavailable.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range []error{ErrInvalidSymbol, ErrRateLimited, ErrNotConfigured, ErrMalformed, ErrUnavailable} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrUnavailable
}

// IsTimeout reports whether err was caused by a deadline expiring.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Outcome is the short label used for metrics and logs.
func Outcome(err error) string {
	switch KindOf(err) {
	case nil:
		return "ok"
	case ErrInvalidSymbol:
		return "invalid_symbol"
	case ErrRateLimited:
		return "rate_limited"
	case ErrNotConfigured:
		return "not_configured"
	case ErrMalformed:
		return "malformed"
	}
	if IsTimeout(err) {
		return "timeout"
	}
	return "unavailable"
}
