package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func useObserver(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	previous := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = previous })
	return logs
}

func TestNewConfig(t *testing.T) {
	prod := newConfig("production")
	assert.Equal(t, zapcore.InfoLevel, prod.Level.Level())
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, ServiceName, prod.InitialFields["service"])
	assert.Equal(t, "production", prod.InitialFields["environment"])

	dev := newConfig("development")
	assert.Equal(t, zapcore.DebugLevel, dev.Level.Level())
	assert.Equal(t, "timestamp", dev.EncoderConfig.TimeKey)
}

func TestWithRequestIDAndAccount(t *testing.T) {
	logs := useObserver(t)

	WithAccount(WithRequestID("req-7"), "acct-1").Info("handled")
	WithRequestID("").Info("no request")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{"request_id": "req-7", "account_id": "acct-1"}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
}
