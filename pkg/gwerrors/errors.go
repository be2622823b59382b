// Package gwerrors implements the closed error taxonomy described in
// spec.md §7 as a single tagged Go error type, grounded on the teacher's
// pkg/providers/errors.go (per-kind struct family with Unwrap) and
// pkg/mpl/errors (Suggestion field, accumulated ErrorList) and
// pkg/routing/errors.go (sentinel errors usable with errors.Is).
package gwerrors

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories from spec.md §7.
type Kind string

const (
	KindNetwork            Kind = "NETWORK"
	KindTimeout            Kind = "TIMEOUT"
	KindTLS                Kind = "TLS"
	KindAuthRequired       Kind = "AUTH_REQUIRED"
	KindAuthFailed         Kind = "AUTH_FAILED"
	KindHTTPError          Kind = "HTTP_ERROR"
	KindParse              Kind = "PARSE"
	KindValidation         Kind = "VALIDATION"
	KindLLMMalformed       Kind = "LLM_MALFORMED"
	KindFederationPartial  Kind = "FEDERATION_PARTIAL"
	KindFederationFatal    Kind = "FEDERATION_FATAL"
)

// sentinels allow callers to test error category with errors.Is without
// reaching into the Error struct.
var (
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("timeout")
	ErrTLS               = errors.New("tls error")
	ErrAuthRequired      = errors.New("authentication required")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrHTTPError         = errors.New("http error")
	ErrParse             = errors.New("parse error")
	ErrValidation        = errors.New("validation error")
	ErrLLMMalformed      = errors.New("llm output malformed")
	ErrFederationPartial = errors.New("federation partial failure")
	ErrFederationFatal   = errors.New("federation fatal failure")
)

var sentinelByKind = map[Kind]error{
	KindNetwork:           ErrNetwork,
	KindTimeout:           ErrTimeout,
	KindTLS:               ErrTLS,
	KindAuthRequired:      ErrAuthRequired,
	KindAuthFailed:        ErrAuthFailed,
	KindHTTPError:         ErrHTTPError,
	KindParse:             ErrParse,
	KindValidation:        ErrValidation,
	KindLLMMalformed:      ErrLLMMalformed,
	KindFederationPartial: ErrFederationPartial,
	KindFederationFatal:   ErrFederationFatal,
}

// Error is the single structured error value every user-facing gateway
// operation returns on failure, per spec.md §7: {kind, endpoint, message,
// suggestion?}.
type Error struct {
	Kind       Kind
	Endpoint   string
	Message    string
	Suggestion string
	StatusCode int   // populated for KindHTTPError
	Cause      error // wrapped cause; stripped from user-visible text unless Debug
	Debug      bool  // when true, Error() includes Cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s]", e.Kind)
	if e.Endpoint != "" {
		msg += fmt.Sprintf(" %s:", e.Endpoint)
	}
	msg += " " + e.Message
	if e.Suggestion != "" {
		msg += " (suggestion: " + e.Suggestion + ")"
	}
	if e.Debug && e.Cause != nil {
		msg += fmt.Sprintf(" [cause: %v]", e.Cause)
	}
	return msg
}

// Unwrap supports errors.Is/As chains to the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e.Kind, enabling
// errors.Is(err, gwerrors.ErrTimeout)-style checks without a type switch.
func (e *Error) Is(target error) bool {
	return sentinelByKind[e.Kind] == target
}

// New builds an Error, attaching the standard suggestion for common kinds
// when one is not explicitly overridden by opts.
func New(kind Kind, endpoint, message string, opts ...Option) *Error {
	e := &Error{Kind: kind, Endpoint: endpoint, Message: message}
	if s, ok := defaultSuggestions[kind]; ok {
		e.Suggestion = s
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option customizes an Error built by New.
type Option func(*Error)

// WithCause attaches an underlying error.
func WithCause(err error) Option { return func(e *Error) { e.Cause = err } }

// WithSuggestion overrides the default suggestion text.
func WithSuggestion(s string) Option { return func(e *Error) { e.Suggestion = s } }

// WithStatusCode attaches an HTTP status code (KindHTTPError).
func WithStatusCode(code int) Option { return func(e *Error) { e.StatusCode = code } }

// WithDebug enables cause disclosure in Error().
func WithDebug() Option { return func(e *Error) { e.Debug = true } }

var defaultSuggestions = map[Kind]string{
	KindAuthRequired: "set credentials on the endpoint descriptor",
	KindAuthFailed:   "check the configured credentials are valid for this endpoint",
	KindTimeout:      "retry with fast_mode=true and a lower max_samples",
	KindTLS:          "verify the endpoint's certificate chain or disable verify_ssl for testing only",
}
