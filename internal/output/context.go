package output

import "context"

type formatKey struct{}

type queryKey struct{}

// WithFormat returns a new context with the output format attached.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, formatKey{}, format)
}

// FormatFromContext returns the output format, FormatText when unset.
func FormatFromContext(ctx context.Context) Format {
	if v, ok := ctx.Value(formatKey{}).(Format); ok {
		return v
	}
	return FormatText
}

// WithQuery attaches a jq expression applied to structured output.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// QueryFromContext returns the jq expression, "" when unset.
func QueryFromContext(ctx context.Context) string {
	if q, ok := ctx.Value(queryKey{}).(string); ok {
		return q
	}
	return ""
}
