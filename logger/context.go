package logger

import "context"

type contextKey struct{}

// ContextWithRequestID attaches a request ID to the context so lower layers
// can tag their log lines with it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// RequestIDFromContext returns the request ID carried by the context, or ""
// when none was attached.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
