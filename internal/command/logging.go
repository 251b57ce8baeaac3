// Where: internal/command/logging.go
// What: slog setup from global flags.
// Why: Route structured diagnostics to stderr at the requested level.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// setDefaultLogger is swapped in tests to keep the process default intact.
var setDefaultLogger = slog.SetDefault

func newLogger(out io.Writer, level string, verbose bool) (*slog.Logger, error) {
	parsed, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		parsed = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parsed})), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
