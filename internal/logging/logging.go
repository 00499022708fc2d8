// Package logging builds the structured loggers shared by the ytwav
// commands and carries them through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// File permissions for log sinks
const (
	LogFilePermissions = 0644
)

// Attribute keys attached to request-scoped loggers
const (
	KeyRequest = "request"
	KeyURL     = "url"
)

// Config selects the log sinks and level
type Config struct {
	// File is an optional path the log is appended to in addition to stderr
	File    string
	Verbose bool
	// Stderr overrides the console sink; nil means os.Stderr
	Stderr io.Writer
}

// New builds a text logger writing to stderr and, when configured, to a
// log file. The returned close func releases the file and is never nil.
func New(cfg Config) (*slog.Logger, func() error, error) {
	var console io.Writer = os.Stderr
	if cfg.Stderr != nil {
		console = cfg.Stderr
	}

	closeFn := func() error { return nil }
	out := console
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
		if err != nil {
			return nil, closeFn, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		out = io.MultiWriter(console, f)
		closeFn = f.Close
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewContext returns a copy of ctx carrying log
func NewContext(ctx context.Context, log *slog.Logger) context.Context {
	return logr.NewContextWithSlogLogger(ctx, log)
}

// FromContext returns the logger stored in ctx, or a discarding logger
// when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if log := logr.FromContextAsSlogLogger(ctx); log != nil {
		return log
	}
	return Discard()
}

// ForRequest returns a logger tagged with the request ID and URL
func ForRequest(log *slog.Logger, requestID, url string) *slog.Logger {
	return log.With(KeyRequest, requestID, KeyURL, url)
}
