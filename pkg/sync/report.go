package sync

import (
	"fmt"
	"io"

	"github.com/buger/goterm"
)

// ConsoleReporter prints a line for each phase and each path as a plan is
// applied.
type ConsoleReporter struct {
	out   io.Writer
	color bool
}

// NewConsoleReporter creates a ConsoleReporter that writes to `out`. If
// `color` is set, actions are highlighted with terminal colors.
func NewConsoleReporter(out io.Writer, color bool) ConsoleReporter {
	return ConsoleReporter{out: out, color: color}
}

// Phase prints the name of the phase.
func (r ConsoleReporter) Phase(name string) {
	fmt.Fprintln(r.out, name)
}

// Progress prints a line like `   [1/3] COPIED: Album/01.mp3`.
func (r ConsoleReporter) Progress(p Progress) {
	fmt.Fprintf(r.out, "   [%d/%d] %s: %s\n", p.Index, p.Total, r.colorize(p.Action), p.Path)
}

func (r ConsoleReporter) colorize(action Action) string {
	if !r.color {
		return string(action)
	}

	color := goterm.BLACK
	switch action {
	case Copied, DirCreated:
		color = goterm.GREEN
	case Removed:
		color = goterm.RED
	case NotFound, NotEmpty:
		color = goterm.YELLOW
	}
	return goterm.Color(string(action), color)
}
