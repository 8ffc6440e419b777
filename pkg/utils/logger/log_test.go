package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCallerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Info("captured", zap.Int("events", 2))
	Warn("dropped")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, int64(2), fields["events"])
	assert.Contains(t, fields["func"], "TestCallerFields")
	assert.Contains(t, fields["file"], "log_test.go")
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLogInit(t *testing.T) {
	previous := loggers
	defer func() { loggers = previous }()

	LogInit(t.TempDir(), "epcis", "log")
	Info("started")
	Sync()
}

func TestNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Error("nothing configured", zap.String("path", filepath.Join("a", "b")))
	})
}
