// Package logger builds the structured run log. Console progress is printed
// separately with fatih/color; this log is meant for files and CI artifacts.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a production zap logger writing to outputPaths, or a
// no-op logger when no path is given.
func NewZapLogger(outputPaths []string, level string) (*zap.Logger, error) {
	if len(outputPaths) == 0 {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = outputPaths
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
