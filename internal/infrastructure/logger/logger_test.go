package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(&Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
	assert.Contains(t, string(data), `"level":"info"`)
}

func TestNewFiltersBelowConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(&Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, zapLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, zapLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, zapLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, zapLevel(""))
	assert.Equal(t, zapcore.InfoLevel, zapLevel("nonsense"))
}

func TestOpenSinkFallsBackToStdout(t *testing.T) {
	// An unopenable path must not fail logger construction.
	sink := openSink(filepath.Join(t.TempDir(), "missing", "nested", "app.log"))
	assert.NotNil(t, sink)
}
