package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup builds a slog.Logger writing to w with the given level and
// format, installs it as the process default, and returns it. Level is
// one of debug, info, warn, error; format is text or json.
func Setup(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatText, "":
		handler = slog.NewTextHandler(w, opts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
