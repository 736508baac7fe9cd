package config

import (
	"io"
	"log/slog"
	"os"
)

// ParseLevel maps a settings level name to a slog level. Unknown names map
// to info.
func ParseLevel(name string) slog.Level {
	switch name {
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

// InitLogger builds the process logger on stderr and installs it as the
// slog default.
func InitLogger(s *Settings) *slog.Logger {
	return InitLoggerTo(os.Stderr, s)
}

// InitLoggerTo is InitLogger with an explicit writer.
func InitLoggerTo(w io.Writer, s *Settings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(s.LogLevel)}
	var h slog.Handler
	if s.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
