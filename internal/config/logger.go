package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger from s. Output goes to s.File when it
// is set and to fallback otherwise; a nil fallback discards. The returned
// close function releases the log file, if any.
func NewLogger(s LogSettings, fallback io.Writer, prefix string) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(s.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	w := fallback
	closeFn := func() error { return nil }
	if s.File != "" {
		f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return logger, closeFn, nil
}
