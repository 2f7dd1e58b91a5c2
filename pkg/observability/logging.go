package observability

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger configures the default slog logger with JSON output at the
// given level. Level is one of debug, info, warn, error (case-insensitive).
func InitLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
