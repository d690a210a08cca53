package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerContextKey is the context key under which a scoped logger is stored.
type loggerContextKey struct{}

// ToContext returns a context carrying the provided logger.
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger stored in the context,
// falling back to the global logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerContextKey{}).(*zap.SugaredLogger); ok {
		return l
	}

	return global
}

// WithName returns a context whose logger is named for the given component.
func WithName(ctx context.Context, name string) context.Context {
	return ToContext(ctx, FromContext(ctx).Named(name))
}

// WithKV returns a context whose logger carries the given key-value pair.
func WithKV(ctx context.Context, key string, value any) context.Context {
	return ToContext(ctx, FromContext(ctx).With(key, value))
}
