package gwerrors

import "strings"

// Redact returns a copy of err suitable for a non-debug user-visible
// response: Debug is forced off and any Authorization-looking substring
// in Message is stripped, matching spec.md §7's "never surfaces raw
// credentials, auth headers, or full stack traces unless a debug flag is
// set".
func Redact(err *Error) *Error {
	if err == nil {
		return nil
	}
	out := *err
	out.Debug = false
	out.Cause = nil
	out.Message = stripCredentials(out.Message)
	return &out
}

func stripCredentials(msg string) string {
	lower := strings.ToLower(msg)
	for _, marker := range []string{"authorization:", "bearer ", "basic ", "password="} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return msg[:idx] + "[redacted]"
		}
	}
	return msg
}

// FeatureNotSupported builds the validator's standard error for a feature
// absent from a DiscoveryKnowledge's feature-support map.
func FeatureNotSupported(endpoint, feature string) *Error {
	return New(KindValidation, endpoint, "feature-not-supported: "+feature,
		WithSuggestion("the endpoint does not advertise "+feature+"; rewrite the query without it"))
}
