// Package logger wraps log/slog with request-scoped enrichment. The
// HTTP middleware stores the request and user ids on the context, and
// FromContext returns a logger that carries them on every line.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

var defaultLogger = slog.New(newHandler(os.Getenv("ENV")))

func init() {
	slog.SetDefault(defaultLogger)
}

// newHandler picks the output format for the environment: JSON for
// production log aggregation, text at debug level everywhere else.
func newHandler(env string) slog.Handler {
	if env == "production" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Logger returns the process-wide logger.
func Logger() *slog.Logger {
	return defaultLogger
}

// WithRequestID stores the request id for FromContext enrichment.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID stores the authenticated user id for FromContext enrichment.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// FromContext returns the logger enriched with whatever ids the request
// middleware stored on the context.
func FromContext(ctx context.Context) *slog.Logger {
	l := defaultLogger

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		l = l.With(string(requestIDKey), requestID)
	}
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		l = l.With(string(userIDKey), userID)
	}

	return l
}

// Package-level helpers for call sites without a context.

func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
