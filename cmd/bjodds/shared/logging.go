package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charmbracelet logger at the given level
func SetupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// SetupFileLogger logs to a file, or discards everything when path is
// empty. Full-screen programs use it so log lines never land on the terminal.
func SetupFileLogger(path, level string) (*log.Logger, func() error, error) {
	if path == "" {
		logger, err := SetupLogger(io.Discard, level)
		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := SetupLogger(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}
