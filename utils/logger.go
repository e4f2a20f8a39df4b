package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/meysamhadeli/solid/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger. By default it writes JSON lines to a
// rotating file under the solid home directory; with --debug it writes text
// to stderr at debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	if cfg.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var writer io.Writer = &lumberjack.Logger{
		Filename:   cfg.LogPath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	}
	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}))
}

// ParseLevel maps a config log level to slog. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
