package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/errors"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirpack",
		Short: "Pack directories into archives",
		Long: `
dirpack stores a directory tree in a zip or tar archive. Tar archives can be
compressed with gzip, zstd or lz4, zip entries with deflate or zstd.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return gopts.PreRun()
		},
	}

	gopts.AddFlags(cmd.PersistentFlags())

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newCreateCommand(gopts),
		newVersionCommand(gopts),
	)

	registerProfiling(cmd)

	return cmd
}

func main() {
	debug.Log("main %#v", os.Args)
	debug.Log("dirpack %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	gopts := newGlobalOptions(os.Stdout, os.Stderr)
	gopts.stdoutIsTerminal = stdoutIsTerminal()

	ctx := createGlobalContext(gopts)
	err := newRootCommand(gopts).ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	var exitMessage string
	switch {
	case errors.IsFatal(err):
		exitMessage = err.Error()
	case err != nil:
		exitMessage = fmt.Sprintf("%+v", err)
	}

	var exitCode int
	switch {
	case err == nil:
		exitCode = 0
	case errors.Is(err, context.Canceled):
		exitCode = 130
	default:
		exitCode = 1
	}

	if exitCode != 0 {
		_, _ = fmt.Fprintf(gopts.stderr, "%v\n", exitMessage)
	}
	Exit(exitCode)
}
