package processing

import (
	"log"
	"os"
)

// Reporter receives progress and warning events from a pipeline run. It is
// injected rather than inherited so callers can route output wherever they
// need: a console, a GUI, a test buffer.
type Reporter interface {
	Logf(format string, args ...any)
	Warnf(format string, args ...any)
}

// ConsoleReporter writes progress to a standard logger.
type ConsoleReporter struct {
	logger *log.Logger
}

// NewConsoleReporter creates a reporter logging to stderr.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// Logf logs a progress message.
func (r *ConsoleReporter) Logf(format string, args ...any) {
	r.logger.Printf(format, args...)
}

// Warnf logs a warning message.
func (r *ConsoleReporter) Warnf(format string, args ...any) {
	r.logger.Printf("warning: "+format, args...)
}

// NopReporter discards all events.
type NopReporter struct{}

// Logf discards the message.
func (NopReporter) Logf(string, ...any) {}

// Warnf discards the message.
func (NopReporter) Warnf(string, ...any) {}
