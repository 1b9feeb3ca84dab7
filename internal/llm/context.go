package llm

import "context"

type ctxKey struct{}

// WithPurpose labels the requests made with ctx, e.g. "reading".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, ctxKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
