// Package logging holds the process-wide zap loggers.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger. SLog is its sugared form.
// Both are no-ops until Init is called.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// Init builds the global loggers. Development environments get a
// human-readable console encoder; everything else logs JSON.
func Init(env, level string) error {
	var cfg zap.Config
	if env == "development" || env == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Log = logger
	SLog = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
