package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/config"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		logger, err := New(config.LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestBuildConfig(t *testing.T) {
	zc := buildConfig(config.LoggingConfig{Format: "JSON", Level: "warning", IncludeCaller: true})
	assert.Equal(t, "json", zc.Encoding)
	assert.False(t, zc.DisableCaller)
	assert.Equal(t, zapcore.WarnLevel, zc.Level.Level())

	zc = buildConfig(config.LoggingConfig{Format: "console", Colored: true})
	assert.Equal(t, "console", zc.Encoding)
	assert.True(t, zc.DisableCaller)
	assert.Equal(t, zapcore.InfoLevel, zc.Level.Level())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(" DEBUG "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}
