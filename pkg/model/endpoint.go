package model

import "time"

// AuthKind identifies the authentication scheme configured on an endpoint.
type AuthKind string

const (
	AuthNone   AuthKind = ""
	AuthBasic  AuthKind = "basic"
	AuthBearer AuthKind = "bearer"
)

// Auth holds endpoint credentials. Only the fields matching Kind are used.
type Auth struct {
	Kind     AuthKind
	Username string
	Password string
	Token    string
}

// RateLimitSpec describes the token-bucket parameters for one endpoint.
// A zero Rate means no rate limiting is applied.
type RateLimitSpec struct {
	Rate  float64 // tokens/sec
	Burst int64   // defaults to Rate truncated to an integer (at least 1) when zero
}

// EndpointDescriptor is the immutable identity of a SPARQL endpoint.
// It is created at configuration time and never mutated afterward; every
// component that needs per-endpoint behavior (rate limiting, auth, default
// graph) reads it by value or via its fields, never by copying and editing.
type EndpointDescriptor struct {
	URL          string
	Name         string
	Auth         Auth
	DefaultGraph string
	RateLimit    RateLimitSpec
	Timeout      time.Duration
}

// ConnectionConfig carries per-request overrides to the defaults declared
// on an EndpointDescriptor. Zero values mean "use the package default"
// for the fields WithDefaults fills.
type ConnectionConfig struct {
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	RetryBackoff   float64
	VerifyTLS      bool
	FollowRedirect bool
	UserAgent      string
	ExtraHeaders   map[string]string
}

// DefaultConnectionConfig returns the spec-mandated defaults: 10s timeout,
// 3 retries, 1s initial delay, 2.0 backoff multiplier, TLS verification on.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		Timeout:        10 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     1 * time.Second,
		RetryBackoff:   2.0,
		VerifyTLS:      true,
		FollowRedirect: true,
		UserAgent:      "sparqlgateway/1.0",
	}
}

// WithDefaults returns a copy of cc with zero-valued Timeout,
// RetryAttempts, RetryDelay, RetryBackoff and UserAgent filled in from
// DefaultConnectionConfig. VerifyTLS, FollowRedirect and ExtraHeaders are
// returned as given. It never mutates the receiver.
func (cc ConnectionConfig) WithDefaults() ConnectionConfig {
	d := DefaultConnectionConfig()
	if cc.Timeout == 0 {
		cc.Timeout = d.Timeout
	}
	if cc.RetryAttempts == 0 {
		cc.RetryAttempts = d.RetryAttempts
	}
	if cc.RetryDelay == 0 {
		cc.RetryDelay = d.RetryDelay
	}
	if cc.RetryBackoff == 0 {
		cc.RetryBackoff = d.RetryBackoff
	}
	if cc.UserAgent == "" {
		cc.UserAgent = d.UserAgent
	}
	return cc
}
