package progress_test

import (
	"bytes"
	"testing"
	"time"

	rtest "github.com/restic/dirpack/internal/test"
	"github.com/restic/dirpack/internal/ui/progress"
)

func TestTextPrinterVerbosity(t *testing.T) {
	for _, test := range []struct {
		verbosity uint
		stdout    string
		stderr    string
	}{
		{0, "", "error\n"},
		{1, "print\n", "error\n"},
		{2, "print\nverbose\n", "error\n"},
		{3, "print\nverbose\ndebug\n", "error\n"},
	} {
		var stdout, stderr bytes.Buffer
		p := progress.NewTextPrinter(&stdout, &stderr, test.verbosity, 0)

		p.E("error")
		p.P("print")
		p.V("verbose\n")
		p.VV("%s", "debug")

		rtest.Equals(t, test.stdout, stdout.String())
		rtest.Equals(t, test.stderr, stderr.String())
	}
}

func TestTextPrinterCounter(t *testing.T) {
	var stdout, stderr bytes.Buffer

	quiet := progress.NewTextPrinter(&stdout, &stderr, 0, 0)
	rtest.Assert(t, quiet.NewCounter("packed") == nil, "quiet printer returned a counter")

	p := progress.NewTextPrinter(&stdout, &stderr, 1, 0)
	c := p.NewCounter("packed")
	c.Add(2048)
	c.Done()

	rtest.Equals(t, "[0:00] 2.000 KiB packed, done\n", stdout.String())
	rtest.Equals(t, "", stderr.String())
}

func TestFormat(t *testing.T) {
	rtest.Equals(t, "512 B", progress.FormatBytes(512))
	rtest.Equals(t, "1.500 MiB", progress.FormatBytes(3<<19))
	rtest.Equals(t, "1:05", progress.FormatDuration(65*time.Second))
	rtest.Equals(t, "2:00:01", progress.FormatDuration(2*time.Hour+time.Second))
}

func TestUpdaterFinal(t *testing.T) {
	var calls, finals int
	u := progress.NewUpdater(0, func(runtime time.Duration, final bool) {
		calls++
		if final {
			finals++
		}
	})
	u.Done()
	u.Done()

	rtest.Equals(t, 1, calls)
	rtest.Equals(t, 1, finals)
}
