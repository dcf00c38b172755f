package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// GooseAdapter adapts an slog.Logger to the printf-style logger goose
// expects for migration output. This keeps migration lines in the same
// structured stream as the rest of the application.
type GooseAdapter struct {
	logger *slog.Logger
}

// NewGooseAdapter creates a new GooseAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewGooseAdapter(logger *slog.Logger) *GooseAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &GooseAdapter{logger: logger}
}

// Printf logs a formatted migration message at info level.
func (a *GooseAdapter) Printf(format string, v ...interface{}) {
	a.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), Operation("migrate"))
}

// Fatalf logs a formatted migration failure at error level.
// goose only calls this from its CLI paths; the migrator in this
// repository returns errors instead, so no exit happens here.
func (a *GooseAdapter) Fatalf(format string, v ...interface{}) {
	a.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), Operation("migrate"))
}
