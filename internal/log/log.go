// Package log builds the charmbracelet loggers shared by the binaries.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w (stdout when nil) at the
// named level. Unknown or empty levels mean info.
func New(prefix, level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stdout
	}

	logger := log.New(w)
	logger.SetPrefix(prefix)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps debug, warn and error to their levels and anything else to
// info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
