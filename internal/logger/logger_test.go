package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture swaps the package logger for one writing into a buffer and
// returns the buffer plus a restore func. Tests using it must not run
// in parallel.
func capture() (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	old := defaultLogger
	defaultLogger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf, func() { defaultLogger = old }
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger())
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name        string
		setupCtx    func() context.Context
		contains    []string
		notContains []string
	}{
		{
			name:        "empty context",
			setupCtx:    context.Background,
			notContains: []string{"request_id", "user_id"},
		},
		{
			name: "with request id",
			setupCtx: func() context.Context {
				return WithRequestID(context.Background(), "req-123")
			},
			contains:    []string{"request_id=req-123"},
			notContains: []string{"user_id"},
		},
		{
			name: "with user id",
			setupCtx: func() context.Context {
				return WithUserID(context.Background(), "user-456")
			},
			contains:    []string{"user_id=user-456"},
			notContains: []string{"request_id"},
		},
		{
			name: "with both ids",
			setupCtx: func() context.Context {
				ctx := WithRequestID(context.Background(), "req-123")
				return WithUserID(ctx, "user-456")
			},
			contains: []string{"request_id=req-123", "user_id=user-456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, restore := capture()
			defer restore()

			FromContext(tt.setupCtx()).Info("handled")

			out := buf.String()
			assert.Contains(t, out, "handled")
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestFromContext_IgnoresEmptyIDs(t *testing.T) {
	buf, restore := capture()
	defer restore()

	ctx := WithRequestID(context.Background(), "")
	FromContext(ctx).Info("handled")

	assert.NotContains(t, buf.String(), "request_id")
}

func TestPackageHelpers(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Info("info line", "key", "value")
	Error("error line")
	Debug("debug line")
	Warn("warn line")

	out := buf.String()
	assert.Contains(t, out, "info line")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "error line")
	assert.Contains(t, out, "debug line")
	assert.Contains(t, out, "warn line")
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, newHandler("production"))
	assert.NotNil(t, newHandler("development"))
}
