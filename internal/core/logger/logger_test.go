package logger

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToWriterTrimsNewlines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.InfoLevel)

	_, err := fmt.Fprintf(w, "[GIN-debug] GET /health\n")
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "[GIN-debug] GET /health", logs.All()[0].Message)
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	std, err := ToStdLogger(zap.New(core), zapcore.WarnLevel)
	require.NoError(t, err)

	std.Printf("slow sql %dms", 250)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "slow sql 250ms", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, closer := NewWithRotate("info", true, file, 1, 1, 1, false)
	l.Info("hello")
	closer()
	assert.FileExists(t, file)
}
