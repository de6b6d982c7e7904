package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// A Printer can return a new counter or print messages
// at different log levels.
// It must be safe to call its methods from concurrent goroutines.
type Printer interface {
	NewCounter(description string) *Counter

	E(msg string, args ...interface{})
	P(msg string, args ...interface{})
	V(msg string, args ...interface{})
	VV(msg string, args ...interface{})
}

// NoopPrinter discards all messages
type NoopPrinter struct{}

var _ Printer = (*NoopPrinter)(nil)

func (*NoopPrinter) NewCounter(description string) *Counter {
	return nil
}

func (*NoopPrinter) E(msg string, args ...interface{}) {}

func (*NoopPrinter) P(msg string, args ...interface{}) {}

func (*NoopPrinter) V(msg string, args ...interface{}) {}

func (*NoopPrinter) VV(msg string, args ...interface{}) {}

// TextPrinter writes messages up to its verbosity to stdout and errors to
// stderr. Verbosity 0 only prints errors, 1 is the default, 2 and 3 enable
// V and VV.
type TextPrinter struct {
	m         sync.Mutex
	stdout    io.Writer
	stderr    io.Writer
	verbosity uint
	interval  time.Duration
}

var _ Printer = (*TextPrinter)(nil)

// NewTextPrinter returns a TextPrinter. Counters report every interval.
func NewTextPrinter(stdout, stderr io.Writer, verbosity uint, interval time.Duration) *TextPrinter {
	return &TextPrinter{
		stdout:    stdout,
		stderr:    stderr,
		verbosity: verbosity,
		interval:  interval,
	}
}

func (p *TextPrinter) print(w io.Writer, msg string, args ...interface{}) {
	p.m.Lock()
	defer p.m.Unlock()

	s := fmt.Sprintf(msg, args...)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, _ = io.WriteString(w, s)
}

// NewCounter returns a byte counter that prints its progress, or nil when
// quiet.
func (p *TextPrinter) NewCounter(description string) *Counter {
	if p.verbosity == 0 {
		return nil
	}

	return NewCounter(p.interval, 0, func(value, total uint64, runtime time.Duration, final bool) {
		status := fmt.Sprintf("[%s] %s %s", FormatDuration(runtime), FormatBytes(value), description)
		if total > 0 {
			status = fmt.Sprintf("[%s] %s / %s %s", FormatDuration(runtime), FormatBytes(value), FormatBytes(total), description)
		}
		if final {
			p.print(p.stdout, "%s, done", status)
			return
		}
		p.print(p.stdout, "%s", status)
	})
}

func (p *TextPrinter) E(msg string, args ...interface{}) {
	p.print(p.stderr, msg, args...)
}

func (p *TextPrinter) P(msg string, args ...interface{}) {
	if p.verbosity >= 1 {
		p.print(p.stdout, msg, args...)
	}
}

func (p *TextPrinter) V(msg string, args ...interface{}) {
	if p.verbosity >= 2 {
		p.print(p.stdout, msg, args...)
	}
}

func (p *TextPrinter) VV(msg string, args ...interface{}) {
	if p.verbosity >= 3 {
		p.print(p.stdout, msg, args...)
	}
}
