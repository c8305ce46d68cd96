package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Configure installs a process-wide slog default logger and returns a
// component-scoped logger so a terminal running all four roles locally
// (target, node, network, client) can tell their log lines apart.
//
// Supported levels: debug, info, warn, error.
func Configure(component, level string) (*slog.Logger, error) {
	parsed, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	logger := slog.New(h).With("component", component)
	slog.SetDefault(logger)
	return logger, nil
}

// LevelForVerbose maps the CLI's --verbose flag to a log level the way every
// role's cobra command does: quiet by default, debug when asked.
func LevelForVerbose(verbose bool) string {
	if verbose {
		return LevelDebug
	}
	return LevelWarn
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", LevelInfo:
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", level)
	}
}
