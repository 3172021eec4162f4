// cmd/catalog/logger.go
// This file builds the structured logger from the -log-* flags.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// loggerOptions selects where and how the structured log is written.
// Logs never go to stdout, which belongs to the menus.
type loggerOptions struct {
	level  string // debug, info, warn or error; empty means info
	file   string // path to append to; empty or "-" means stderr
	format string // text or json
}

var logLevels = map[string]slog.Level{
	"":      slog.LevelInfo,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the application logger. An option that cannot be used is
// reset to its default in options, and a warning naming it is written
// through the logger that results.
func newLogger(options *loggerOptions) *slog.Logger {
	var ignored []slog.Attr

	// Resolve the minimum level.
	level, ok := logLevels[strings.ToLower(options.level)]
	if !ok {
		ignored = append(ignored, slog.String("log_level", options.level))
		options.level = ""
	}

	// Resolve the destination. The null device skips handler setup entirely.
	var output io.Writer = os.Stderr
	switch options.file {
	case "", "-":
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			ignored = append(ignored, slog.String("log_file", options.file), slog.String("err", err.Error()))
			options.file = ""
			break
		}
		output = f
	}

	// Pick the handler for the requested format.
	handlerOptions := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(options.format) {
	case "json":
		handler = slog.NewJSONHandler(output, handlerOptions)
	case "text":
		handler = slog.NewTextHandler(output, handlerOptions)
	default:
		ignored = append(ignored, slog.String("log_format", options.format))
		options.format = "text"
		handler = slog.NewTextHandler(output, handlerOptions)
	}

	logger := slog.New(handler)
	if len(ignored) > 0 {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "logger options ignored", ignored...)
	}
	return logger
}
