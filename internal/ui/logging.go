// Package ui carries the run's terminal output: the leveled logger, the
// per-batch progress bars and the summary counters.
package ui

import (
	"fmt"
)

// Logger is the run's leveled printf logger. Degraded episodes surface
// here and nowhere else; the rendered PDFs stay free of error text.
type Logger struct {
	Debug bool
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug}
}

// Debugf prints only when debug logging is enabled, used for per-URL
// progress and HTTP tracing.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Printf("[INFO] "+format, args...)
}

// Errorf reports absorbed failures: fetches that degraded an episode and
// batches whose PDF could not be written.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Printf("[ERROR] "+format, args...)
}
