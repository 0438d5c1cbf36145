package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Verbose selects the development
// encoder at debug level; otherwise JSON at info. A non-empty path
// sends output to that file instead of stderr.
func New(verbose bool, path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(Level(verbose))
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}

// ForTerminalUI returns a logger that never writes to the terminal: a
// file logger when path is set, a no-op logger otherwise.
func ForTerminalUI(verbose bool, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	return New(verbose, path)
}

// Level returns the level New would use.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
