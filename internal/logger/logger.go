// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// L is the global logger instance. It discards everything until Init
// enables it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Debug   bool       // log text records to Stderr
	Stderr  io.Writer  // destination for Debug; defaults to os.Stderr
	LogFile string     // append JSON records to this file instead
	Level   slog.Level // minimum level; Debug implies slog.LevelDebug
}

// Init configures logging. The returned closer releases the log file, if
// one was opened, and is never nil.
func Init(opts Options) (io.Closer, error) {
	level := opts.Level
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch {
	case opts.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nopCloser{}, err
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nopCloser{}, err
		}
		L = slog.New(slog.NewJSONHandler(f, handlerOpts))
		return f, nil
	case opts.Debug:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		L = slog.New(slog.NewTextHandler(w, handlerOpts))
	default:
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
