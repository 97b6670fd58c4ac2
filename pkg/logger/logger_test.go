package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("chatty"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestInit(t *testing.T) {
	require.NotNil(t, L())

	require.NoError(t, Init(Options{Level: zapcore.DebugLevel, JSON: true}, zap.String("service", "test")))
	first := Log
	require.NotNil(t, first)
	assert.True(t, first.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init(Options{Level: zapcore.ErrorLevel}))
	assert.Same(t, first, Log)
	assert.Same(t, first, L())
}
