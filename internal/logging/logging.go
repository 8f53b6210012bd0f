// ABOUTME: Logger construction for the recovery CLI and MCP server.
// ABOUTME: Wraps charmbracelet/log with level parsing from config or environment.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvKey overrides the configured log level.
const EnvKey = "RECOVERY_LOG_LEVEL"

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q (valid: debug, info, warn, error)", s)
	}
}

// New returns a logger writing to w at the given level name.
// An empty or unknown level falls back to DefaultLevel.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl, _ = ParseLevel(DefaultLevel)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "recovery",
	})
}

// FromEnv returns a stderr logger, preferring RECOVERY_LOG_LEVEL over level.
func FromEnv(level string) *log.Logger {
	if s := os.Getenv(EnvKey); s != "" {
		level = s
	}
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
