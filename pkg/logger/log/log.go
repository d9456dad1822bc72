// Package log logs through the root logger, tagging entries with the request
// id carried by the context.
package log

import (
	"context"

	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func with(ctx context.Context) *logger.Logger {
	l := logger.MustNamed("app")
	if id := RequestID(ctx); id != "" {
		return &logger.Logger{SugaredLogger: l.With("request_id", id)}
	}
	return l
}

func Debugw(ctx context.Context, msg string, keysAndValues ...any) {
	with(ctx).Debugw(msg, keysAndValues...)
}

func Infow(ctx context.Context, msg string, keysAndValues ...any) {
	with(ctx).Infow(msg, keysAndValues...)
}

func Warnw(ctx context.Context, msg string, keysAndValues ...any) {
	with(ctx).Warnw(msg, keysAndValues...)
}

func Errorw(ctx context.Context, msg string, keysAndValues ...any) {
	with(ctx).Errorw(msg, keysAndValues...)
}

// Fatal logs and exits the process.
func Fatal(args ...any) {
	logger.MustNamed("app").Fatal(args...)
}
