// Package logging builds the zap logger shared by the commands, the TUI and the API client.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how verbosely to log
type Options struct {
	// Path is the log file. Empty yields a no-op logger; the TUI owns the terminal.
	Path    string
	Verbose bool
}

// New builds a production JSON logger writing to opts.Path
func New(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{opts.Path}
	config.ErrorOutputPaths = []string{opts.Path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("querychat"), nil
}

// Sync flushes logger, ignoring the errors zap reports for non-file sinks
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
