package logging

import "context"

// contextKey namespaces the context values this package reads and
// writes. Trimmed from the teacher's routing-era field set (api_key,
// user, team, provider, model, session — all meaningful for a
// multi-tenant LLM proxy) down to the fields a SPARQL gateway operation
// actually carries: which request, which endpoint, and the trace/span
// pair OpenTelemetry propagates.
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	EndpointKey  contextKey = "endpoint"
	TraceIDKey   contextKey = "trace_id"
	SpanIDKey    contextKey = "span_id"
)

// WithRequestID attaches a request ID to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID retrieves the request ID from ctx, if any.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithEndpoint attaches the SPARQL endpoint URL a log line concerns.
func WithEndpoint(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, EndpointKey, url)
}

// GetEndpoint retrieves the endpoint URL from ctx, if any.
func GetEndpoint(ctx context.Context) string {
	if v, ok := ctx.Value(EndpointKey).(string); ok {
		return v
	}
	return ""
}

// WithTraceID attaches a trace ID to ctx.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

// GetTraceID retrieves the trace ID from ctx, if any.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithSpanID attaches a span ID to ctx.
func WithSpanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SpanIDKey, id)
}

// GetSpanID retrieves the span ID from ctx, if any.
func GetSpanID(ctx context.Context) string {
	if v, ok := ctx.Value(SpanIDKey).(string); ok {
		return v
	}
	return ""
}

// extractContextFields turns the request/endpoint/trace fields found in
// ctx into a slog-style key/value slice, suitable as a prefix to
// Logger.With.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	if v := GetRequestID(ctx); v != "" {
		fields = append(fields, "request_id", v)
	}
	if v := GetEndpoint(ctx); v != "" {
		fields = append(fields, "endpoint", v)
	}
	if v := GetTraceID(ctx); v != "" {
		fields = append(fields, "trace_id", v)
	}
	if v := GetSpanID(ctx); v != "" {
		fields = append(fields, "span_id", v)
	}
	return fields
}

// ContextLogger pins a Logger to one context.Context so every call site
// need not thread ctx through explicitly.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger builds a ContextLogger carrying ctx's fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{logger: logger.WithContext(ctx), ctx: ctx}
}

func (cl *ContextLogger) Debug(msg string, args ...any) { cl.logger.DebugContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Info(msg string, args ...any)  { cl.logger.InfoContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Warn(msg string, args ...any)  { cl.logger.WarnContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Error(msg string, args ...any) { cl.logger.ErrorContext(cl.ctx, msg, args...) }

// With returns a ContextLogger carrying additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{logger: cl.logger.With(args...), ctx: cl.ctx}
}
