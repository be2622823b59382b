package logging

import (
	"regexp"
	"strings"

	"sparqlgateway/pkg/config"
)

// Redactor strips credentials from log fields before they reach a
// handler. Trimmed from the teacher's general-purpose PII redactor
// (which also matched emails, SSNs, credit cards, and phone numbers —
// irrelevant to a SPARQL gateway whose only secrets are endpoint
// credentials) down to what spec.md §4.M actually asks for: auth
// headers, bearer tokens, and basic-auth userinfo embedded in endpoint
// URLs.
type Redactor struct {
	patterns map[string]*redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

const (
	PatternBearerToken = "bearer_token"
	PatternBasicAuth   = "basic_auth_url"
	PatternAPIKey      = "api_key"
	PatternPassword    = "password"
)

// NewRedactor builds a Redactor with the default credential patterns
// plus any caller-supplied additions.
func NewRedactor(custom []config.RedactPattern) *Redactor {
	r := &Redactor{patterns: map[string]*redactPattern{}}
	r.addDefaultPatterns()
	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns[p.Name] = &redactPattern{regex: regex, replacement: p.Replacement}
	}
	return r
}

func (r *Redactor) addDefaultPatterns() {
	defaults := map[string]struct {
		regex       string
		replacement string
	}{
		PatternBearerToken: {`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
		PatternBasicAuth:   {`://[^/@\s:]+:[^/@\s]+@`, "://***:***@"},
		PatternAPIKey:      {`(sk-[a-zA-Z0-9]+|api[-_]?key[-_:]\s*[a-zA-Z0-9]+)`, "sk-***"},
		PatternPassword:    {`(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
	}
	for name, p := range defaults {
		r.patterns[name] = &redactPattern{regex: regexp.MustCompile(p.regex), replacement: p.replacement}
	}
}

// RedactString applies every pattern to value in turn.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	redacted := value
	for _, p := range r.patterns {
		redacted = p.regex.ReplaceAllString(redacted, p.replacement)
	}
	return redacted
}

// RedactArgs redacts slog-style key/value variadic args: values whose key
// name looks like a credential are fully masked; every string value
// (keyed or not) additionally passes through the pattern set, so a
// credential embedded mid-sentence in a message argument is still
// caught.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}
	out := make([]any, len(args))
	copy(out, args)

	for i := range out {
		if str, ok := out[i].(string); ok {
			out[i] = r.RedactString(str)
		}
		if i%2 == 1 {
			if key, ok := out[i-1].(string); ok && isSensitiveKey(key) {
				out[i] = redactValue(out[i])
			}
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range []string{"password", "passwd", "pwd", "secret", "token", "api_key", "apikey", "auth", "authorization"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func redactValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return "***"
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:4] + "***"
}
