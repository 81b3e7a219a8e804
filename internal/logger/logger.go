package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds a slog.Logger writing to w in the given format ("text" or
// "json") at the given level.
func Setup(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupDefault installs the configured logger as the process-wide default.
func SetupDefault(format, level string) *slog.Logger {
	l := Setup(os.Stdout, format, level)
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
