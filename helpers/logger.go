package helpers

import (
	"log/slog"
	"os"
)

// Logger is the structured logger shared by every package
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetLogLevel changes the minimum level written by Logger
func SetLogLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// Info logs an informational message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs something unexpected which did not stop the operation
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs a failed operation
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Debug logs verbose details
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
