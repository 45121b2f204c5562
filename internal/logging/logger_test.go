package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym")
	logger, err := NewLogger(Params{Level: "info", File: path, JSON: true})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("workout finalized")
	_ = logger.Sync()

	content, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "workout finalized"))
	assert.False(t, strings.Contains(string(content), "hidden"))
}
