package canvas

import (
	"errors"
	"fmt"
)

// Kind categorizes why a Canvas request failed. The set is closed; agents
// branch on it, so new values need matching handling downstream.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindTimeout      Kind = "timeout"
	KindNetworkError Kind = "network_error"
	KindUnknown      Kind = "unknown"
)

// Failure is a classified Canvas error. Operations return either a payload
// or exactly one *Failure / *Empty; raw transport errors never escape this
// package.
type Failure struct {
	Kind        Kind     `json:"error"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("canvas: %s: %s", f.Kind, f.Message)
}

// Empty reports a successful request that found nothing. It travels the
// error path so that (payload, error) stays a strict two-state pair, but it
// is not a failure: callers surface its message and suggestions as guidance.
type Empty struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (e *Empty) Error() string {
	return e.Message
}

func failuref(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure unwraps err to a *Failure if there is one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// AsEmpty unwraps err to an *Empty if there is one.
func AsEmpty(err error) (*Empty, bool) {
	var e *Empty
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
