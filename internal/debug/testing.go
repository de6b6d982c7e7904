package debug

import (
	"io"
	"log"
	"testing"
)

// TestLogTo enables the debug log for the duration of the test and sends
// all messages to w.
func TestLogTo(t testing.TB, w io.Writer) {
	prevLogger, prevEnabled := opts.logger, opts.isEnabled
	opts.logger = log.New(w, "", 0)
	opts.isEnabled = true

	t.Cleanup(func() {
		opts.logger, opts.isEnabled = prevLogger, prevEnabled
	})
}
