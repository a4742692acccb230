// Package logger wraps log/slog for consistent structured logging
// across the pipeline, the fetchers and the HTTP API.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetLevelFromString configures the level from a config value
// (debug, info, warn, error). Unknown values keep info.
func SetLevelFromString(level string) {
	switch strings.ToLower(level) {
	case "debug":
		SetLevel(slog.LevelDebug)
	case "warn", "warning":
		SetLevel(slog.LevelWarn)
	case "error":
		SetLevel(slog.LevelError)
	default:
		SetLevel(slog.LevelInfo)
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithRun returns a logger with run context.
func WithRun(runID string) *slog.Logger {
	return Logger.With("run_id", runID)
}

// WithDataset returns a logger with dataset context.
func WithDataset(dataset string) *slog.Logger {
	return Logger.With("dataset", dataset)
}
