package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/ui/progress"
)

var version = "0.1.0-dev (compiled manually)"

// GlobalOptions hold all global options for dirpack.
type GlobalOptions struct {
	Quiet    bool
	Verbose  int
	Interval time.Duration

	stdout           io.Writer
	stderr           io.Writer
	stdoutIsTerminal bool
	verbosity        uint
}

func newGlobalOptions(stdout, stderr io.Writer) *GlobalOptions {
	return &GlobalOptions{
		stdout:    stdout,
		stderr:    stderr,
		verbosity: 1,
	}
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output progress and summary")
	// use empty parameter name as `-v, --verbose n` instead of the correct `--verbose=n` is confusing
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``, max level/times is 2)")
	f.DurationVar(&opts.Interval, "progress-interval", time.Second, "report progress every `duration` (0 only reports the total)")
}

func (opts *GlobalOptions) PreRun() error {
	// set verbosity, default is one
	opts.verbosity = 1
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Verbose >= 2:
		opts.verbosity = 3
	case opts.Verbose > 0:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	}

	return nil
}

// Warnf writes the message to the configured stderr stream.
func (opts *GlobalOptions) Warnf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(opts.stderr, format, args...)
}

// printer returns a Printer writing messages to stdout, or to stderr when
// stdout carries an archive. Periodic progress updates are only shown on a
// terminal, otherwise counters just report their total.
func (opts *GlobalOptions) printer(archiveOnStdout bool) progress.Printer {
	stdout := opts.stdout
	if archiveOnStdout {
		stdout = opts.stderr
	}

	interval := opts.Interval
	if !opts.stdoutIsTerminal || archiveOnStdout {
		interval = 0
	}
	return progress.NewTextPrinter(stdout, opts.stderr, opts.verbosity, interval)
}
