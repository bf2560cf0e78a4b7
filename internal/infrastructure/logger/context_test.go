package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx := WithContext(ctx, logger)

	retrieved := FromContext(newCtx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()

	logger := FromContext(ctx)

	// Should return a no-op logger, not nil
	require.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	requestID := GetRequestID(ctx)
	assert.Empty(t, requestID)
}

func TestGetUserID_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := GetUserID(ctx)
	assert.Empty(t, userID)
}

func TestChainedContextValues(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, _ = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
}

func TestContextKeys_AreDistinct(t *testing.T) {
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, RequestIDKey)
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx = WithContext(ctx, baseLogger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-aaa")
	ctx = context.WithValue(ctx, UserIDKey, "user-ccc")

	L(ctx).Info("test message")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "req-aaa", fields["request_id"])
	assert.Equal(t, "user-ccc", fields["user_id"])
}

func TestContextLogger_NilLoggerFallsBackToNop(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	// Must not panic
	cl.Info("message into the void")
}

func TestContextLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := WithContext(context.Background(), baseLogger)
	L(ctx).With(zap.String("component", "reports")).Info("computed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "reports", logs.All()[0].ContextMap()["component"])
}

func TestWithLogger_UsesProvidedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	custom := zap.New(core)

	WithLogger(context.Background(), custom).Info("explicit logger")

	require.Equal(t, 1, logs.Len())
}
