package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/config"
)

// New builds a zap.Logger configured according to the provided logging config.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	return buildConfig(cfg).Build()
}

func buildConfig(cfg config.LoggingConfig) zap.Config {
	var zc zap.Config
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		if cfg.Colored {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zc.DisableCaller = !cfg.IncludeCaller
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stdout"}
	return zc
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
