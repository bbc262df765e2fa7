// Package cli implements the netgraph command-line interface.
//
// The commands draw a layered neural network diagram and either show it in
// a window, export it to files, print its geometry, explore it in the
// terminal, or serve it over HTTP. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - show: Open the interactive window
//   - render: Write SVG, PNG, PDF, JSON or DOT files
//   - inspect: Print layout parameters and connection groups
//   - explore: Walk the neurons with the keyboard and watch hover emphasis
//   - serve: Serve diagrams over HTTP
//   - config: Print the effective configuration as TOML
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every hover transition.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Drew 33 neurons (12ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
