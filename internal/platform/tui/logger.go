package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped charm logger. A nil writer discards output.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// OpenLogFile opens path for appending. An empty path returns a nil writer
// and a no-op closer.
func OpenLogFile(path string) (io.Writer, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
