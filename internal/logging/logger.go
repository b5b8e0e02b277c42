// Package logging provides leveled key/value logging for bilvisning.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...any)
	// Info logs an informational message.
	Info(msg string, args ...any)
	// Warn logs a warning message.
	Warn(msg string, args ...any)
	// Error logs an error message.
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes and releases the log file, if any.
	Shutdown() error
}

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level to record: debug, info, warn or error.
	Level string
	// File is the log file path. Empty means stderr.
	File string
	// Prefix is prepended to every text-formatted line.
	Prefix string
}

type loggerImpl struct {
	clogger *clog.Logger
	closer  *fileCloser
}

// fileCloser is shared between a logger and everything derived via With.
type fileCloser struct {
	once sync.Once
	f    *os.File
}

func (c *fileCloser) Close() error {
	if c == nil || c.f == nil {
		return nil
	}
	var err error
	c.once.Do(func() { err = c.f.Close() })
	return err
}

// New returns a text logger writing to w.
func New(w io.Writer, cfg Config) Logger {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           ParseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
	})
	return &loggerImpl{clogger: clogger}
}

// Open builds the logger described by cfg. With a File set, the directory is
// created and entries are appended as JSON, since a terminal UI cannot share
// its screen with log output.
func Open(cfg Config) (Logger, error) {
	if cfg.File == "" {
		return New(os.Stderr, cfg), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           ParseLevel(cfg.Level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	clogger = clogger.With("pid", os.Getpid())
	return &loggerImpl{clogger: clogger, closer: &fileCloser{f: f}}, nil
}

// ParseLevel converts a level name to clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, args ...any) { l.clogger.Debug(msg, args...) }
func (l *loggerImpl) Info(msg string, args ...any)  { l.clogger.Info(msg, args...) }
func (l *loggerImpl) Warn(msg string, args ...any)  { l.clogger.Warn(msg, args...) }
func (l *loggerImpl) Error(msg string, args ...any) { l.clogger.Error(msg, args...) }

func (l *loggerImpl) With(args ...any) Logger {
	return &loggerImpl{clogger: l.clogger.With(args...), closer: l.closer}
}

func (l *loggerImpl) Shutdown() error {
	return l.closer.Close()
}

// noopLogger is a logger that discards all output.
type noopLogger struct{}

func (n noopLogger) Debug(msg string, args ...any) {}
func (n noopLogger) Info(msg string, args ...any)  {}
func (n noopLogger) Warn(msg string, args ...any)  {}
func (n noopLogger) Error(msg string, args ...any) {}
func (n noopLogger) With(args ...any) Logger       { return n }
func (n noopLogger) Shutdown() error               { return nil }

// Noop returns a logger that discards everything.
func Noop() Logger { return noopLogger{} }

// OrNoop returns l, or a no-op logger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}
