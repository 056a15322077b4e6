// Package logging sets up the structured logger. The terminal belongs to the
// UI, so records go to a JSON log file rather than stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configures Setup.
type Options struct {
	// Path is the log file, created with its parent directories. Empty
	// discards all records.
	Path    string
	Level   string
	Service string
}

// Logger is a configured logger that owns its log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// Setup opens the log file and builds a JSON logger that tags every record with
// the service name and, when the context carries a span, its trace ids.
// A file that cannot be opened falls back to discarding, reported via the error.
func Setup(opts Options) (*Logger, error) {
	var (
		w    io.Writer = io.Discard
		file *os.File
		err  error
	)
	if opts.Path != "" {
		file, err = openLogFile(opts.Path)
		if err == nil {
			w = file
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: false,
	})
	service := opts.Service
	if service == "" {
		service = "pancakes"
	}
	return &Logger{
		Logger: slog.New(NewTracingHandler(handler, service)),
		file:   file,
	}, err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
