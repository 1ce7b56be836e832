// Package logging builds the application logger. The terminal belongs to
// the TUI, so log output goes to a JSON-lines file inside the data
// directory.
package logging

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing to glint.log under dir.
func New(dir string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "glint.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Sync flushes buffered entries. Safe to call on a nil logger and more
// than once.
func Sync(log *zap.Logger) {
	if log != nil {
		_ = log.Sync()
	}
}
