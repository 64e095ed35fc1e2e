// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config returns a production zap config for level (debug, info, warn, error) and encoding (json, console).
func Config(level, encoding string) (zap.Config, error) {
	cfg := zap.NewProductionConfig()

	switch encoding {
	case "json", "console":
		cfg.Encoding = encoding
	default:
		return zap.Config{}, fmt.Errorf("unknown log encoding %q", encoding)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("parse log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = lvl == zapcore.DebugLevel

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg, nil
}

// New builds a logger from Config.
func New(level, encoding string) (*zap.Logger, error) {
	cfg, err := Config(level, encoding)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}
