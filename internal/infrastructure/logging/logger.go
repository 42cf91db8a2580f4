package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ewynne/mechbay-go/internal/infrastructure/config"
)

// NewLogger builds a zap logger from logging configuration.
func NewLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.DisableCaller = !cfg.IncludeCaller
	zapCfg.DisableStacktrace = !cfg.IncludeStacktrace

	switch cfg.Format {
	case "text":
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		zapCfg.Encoding = "json"
	}

	switch cfg.Output {
	case "stderr":
		zapCfg.OutputPaths = []string{"stderr"}
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging output is file but file_path is empty")
		}
		zapCfg.OutputPaths = []string{cfg.FilePath}
	default:
		zapCfg.OutputPaths = []string{"stdout"}
	}

	return zapCfg.Build()
}

// MustNewLogger builds a logger and panics on error (for use in main.go)
func MustNewLogger(cfg *config.LoggingConfig) *zap.Logger {
	logger, err := NewLogger(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}
