// Package logger wraps zap construction so that callers get a usable
// logger before configuration and a leveled production logger after Init.
package logger

import "go.uber.org/zap"

// Logger carries the underlying zap logger.
type Logger struct {
	// Log is the zap logger handed to components.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger.
// Call Init to replace it with a configured one.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug",
// "Info", "Warn", "Error") and installs it on the Logger.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
