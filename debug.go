package flowcanvas

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger with timestamp formatting that writes to w and
// filters messages below level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "flowcanvas",
	})
}

// discardLogger returns a logger that drops everything.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// debugStats holds per-update counters. Only populated when the canvas is in
// debug mode.
type debugStats struct {
	updateTime time.Duration
	injected   int
	changes    int
	nodes      int
	edges      int
	gesture    GestureKind
}

// debugLog prints update counters at debug level.
func (c *Canvas) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	c.logger.Debug("update",
		"time", stats.updateTime,
		"injected", stats.injected,
		"changes", stats.changes,
		"nodes", stats.nodes,
		"edges", stats.edges,
		"gesture", stats.gesture,
	)
}
