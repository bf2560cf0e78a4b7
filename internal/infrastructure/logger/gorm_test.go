package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func queryFunc(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLoggerTraceError(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), queryFunc("SELECT 1", 0), errors.New("connection reset"))

	entries := logs.FilterMessage("sql error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
}

func TestGormLoggerTraceSkipsRecordNotFound(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), queryFunc("SELECT 1", 0), gormlogger.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLoggerTraceSlowQuery(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn)

	begin := time.Now().Add(-2 * slowQueryThreshold)
	gl.Trace(context.Background(), begin, queryFunc("SELECT pg_sleep(1)", 1), nil)

	entries := logs.FilterMessage("slow sql").All()
	require.Len(t, entries, 1)
}

func TestGormLoggerTraceSilent(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), queryFunc("SELECT 1", 1), errors.New("ignored"))

	assert.Zero(t, logs.Len())
}

func TestGormLoggerTraceTagsContextIDs(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)

	ctx, log := WithRequestID(context.Background(), zap.NewNop(), "req-7")
	ctx, _ = WithUserID(ctx, log, "user-9")
	gl.Trace(ctx, time.Now(), queryFunc("SELECT 1", 1), nil)

	entries := logs.FilterMessage("sql").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "user-9", fields["user_id"])
}

func TestGormLoggerLogMode(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Silent)

	verbose := gl.LogMode(gormlogger.Info)
	verbose.Info(context.Background(), "migrating %s", "accounts")

	assert.Equal(t, 1, logs.Len())
	assert.Zero(t, logs.FilterMessage("sql").Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
