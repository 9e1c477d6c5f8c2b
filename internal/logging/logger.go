package logging

import (
	"bytes"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger wraps log.Logger from charmbracelet/log. Test loggers carry a
// buffer so output can be inspected.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

// New builds a stderr logger. Setting DEBUG=1 raises the level and
// reports the caller.
func New() *Logger {
	return NewWriter(os.Stderr)
}

// NewWriter builds a logger writing to w.
func NewWriter(w io.Writer) *Logger {
	if os.Getenv("DEBUG") == "1" {
		base := log.NewWithOptions(w, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Prefix:          "voxcribe",
		})
		base.SetLevel(log.DebugLevel)
		return &Logger{Logger: base}
	}
	base := log.New(w)
	base.SetLevel(log.InfoLevel)
	return &Logger{Logger: base}
}

// NewTestLogger captures output in an in-memory buffer.
func NewTestLogger() *Logger {
	var buf bytes.Buffer
	base := log.New(&buf)
	base.SetLevel(log.DebugLevel)
	return &Logger{Logger: base, Buffer: &buf}
}

// GetOutput returns everything logged so far, or "" when the logger has
// no capture buffer.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}
