package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/flowcanvas"
)

// newLogger creates the CLI logger. It shares the canvas logger format.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return flowcanvas.NewLogger(w, level)
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
