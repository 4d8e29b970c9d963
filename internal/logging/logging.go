// Package logging configures the process-wide slog logger. The TUI owns the
// terminal, so logs always go to a file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Init writes structured logs to path and installs the logger as the slog
// default. Returns a close function for the underlying file.
func Init(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
	return file.Close, nil
}

// Discard returns a logger that drops everything. Used by tests and CLI
// subcommands that print their own output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
