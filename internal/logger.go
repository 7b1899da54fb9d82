package internal

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// GetLoggingHandler builds a text or JSON handler writing to w at the given
// level. Unknown levels fall back to info.
func GetLoggingHandler(w io.Writer, level string, json bool) slog.Handler {
	var logLevel = new(slog.LevelVar)

	switch strings.ToLower(level) {
	case "trace", "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetupLogging installs the default logger, writing to stderr.
func SetupLogging(level string, json bool) {
	slog.SetDefault(slog.New(GetLoggingHandler(os.Stderr, level, json)))
}
