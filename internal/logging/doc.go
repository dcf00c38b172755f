// Package logging provides structured logging utilities for the bookline application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// It standardizes attribute keys (tenant, tool, operation, event) so log lines
// stay greppable across packages, and carries the redaction helpers that keep
// credential material and customer contact details out of log output. Setup
// installs the process-wide slog handler from the CLI's log level and format
// flags.
package logging
