// Package requestctx carries the correlation id assigned at the edge so
// audit events and log lines can be tied back to one HTTP request.
package requestctx

import "context"

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKey{}).(string); ok {
		return value
	}
	return ""
}
