// pattern: Imperative Shell

// Package logging configures the shared zap logger backed by a rotating
// file. The TUI owns the terminal, so nothing is ever written to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the log Manager.
type Config struct {
	FilePath   string // path to the log file
	MaxSizeMB  int    // max size in MB before rotation
	MaxBackups int    // max number of old log files to keep
	MaxAgeDays int    // max days to keep old log files
	Level      string // minimum log level (debug, info, warn, error)
}

// Manager hands out scoped loggers that share one rotating JSON file.
type Manager struct {
	base   *zap.Logger
	writer *lumberjack.Logger

	mu      sync.Mutex
	loggers map[string]*zap.SugaredLogger
}

// NewManager creates a log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(writer),
		level,
	)

	return &Manager{
		base:    zap.New(core),
		writer:  writer,
		loggers: make(map[string]*zap.SugaredLogger),
	}, nil
}

// For returns a logger named after the given scope (e.g. "app", "scheduler").
// Loggers are cached and reused per scope.
func (m *Manager) For(scope string) *zap.SugaredLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger := m.base.Named(scope).Sugar()
	m.loggers[scope] = logger
	return logger
}

// Sync flushes buffered log entries.
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Close syncs and closes the underlying file writer.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.writer.Close()
}
