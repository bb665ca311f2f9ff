// Package log provides structured, category-tagged logging for ngsteer.
//
// Log output goes to a file rather than the terminal so that one-shot
// commands and the stdio MCP server (whose stdout carries the protocol)
// stay clean. Categories let noisy subsystems be grepped out of the log.
package log

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category tags a log line with the subsystem it came from.
type Category string

const (
	CatConfig   Category = "config"
	CatSteering Category = "steering"
	CatDetect   Category = "detect"
	CatIndex    Category = "index"
	CatMCP      Category = "mcp"
	CatDB       Category = "db"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger = zap.NewNop().Sugar()
)

// Init opens the log file at path and installs a file-backed logger.
// Creates the parent directory if needed. Debug lines are only emitted
// when debug is true.
func Init(path string, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(f), level)

	mu.Lock()
	logger = zap.New(core).Sugar()
	mu.Unlock()
	return nil
}

// Close flushes any buffered log entries.
func Close() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug-level message with key-value pairs.
func Debug(cat Category, msg string, keysAndValues ...any) {
	get().Debugw(msg, append([]any{"cat", string(cat)}, keysAndValues...)...)
}

// Info logs an info-level message with key-value pairs.
func Info(cat Category, msg string, keysAndValues ...any) {
	get().Infow(msg, append([]any{"cat", string(cat)}, keysAndValues...)...)
}

// Warn logs a warn-level message with key-value pairs.
func Warn(cat Category, msg string, keysAndValues ...any) {
	get().Warnw(msg, append([]any{"cat", string(cat)}, keysAndValues...)...)
}

// Error logs an error-level message with key-value pairs.
func Error(cat Category, msg string, keysAndValues ...any) {
	get().Errorw(msg, append([]any{"cat", string(cat)}, keysAndValues...)...)
}

// ErrorErr logs an error-level message with an attached error value.
func ErrorErr(cat Category, msg string, err error, keysAndValues ...any) {
	get().Errorw(msg, append([]any{"cat", string(cat), "error", err}, keysAndValues...)...)
}
