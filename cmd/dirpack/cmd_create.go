package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restic/dirpack/internal/archive"
	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/dirpack"
	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/filter"
	"github.com/restic/dirpack/internal/fs"
)

func newCreateCommand(gopts *GlobalOptions) *cobra.Command {
	var opts CreateOptions

	cmd := &cobra.Command{
		Use:   "create [flags] archive directory",
		Short: "Pack a directory into an archive file",
		Long: `
The "create" command stores all files and directories below the given
directory in a new archive file. Symbolic links are followed, other special
files such as sockets or devices are skipped with a warning.

The archive format and compression are guessed from the archive name
(.zip, .tar, .tar.gz, .tgz, .tar.zst, .tar.lz4) unless --format is given.
Entries can be left out with --exclude and related options. Patterns are
matched against the entry names in the archive, a leading "/" anchors a
pattern at the archive root.

Use "-" as archive to write the archive to stdout, this requires --format.
Compression is written as "method[:level]", e.g. "zstd:19". Zip archives
support store, deflate and zstd, tar archives support store, gzip, zstd and lz4.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 130 if the command was interrupted.
`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), opts, gopts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// CreateOptions collects all options for the create command.
type CreateOptions struct {
	Format      archive.Format
	Compression archive.Compression
	IncludeDir  bool
	Atomic      bool
	Overwrite   bool
	Strict      bool
	filter.ExcludePatternOptions
}

func (opts *CreateOptions) AddFlags(f *pflag.FlagSet) {
	f.VarP(&opts.Format, "format", "f", "archive `format`, \"zip\" or \"tar\" (default: guessed from the archive name)")
	f.VarP(&opts.Compression, "compression", "c", "compression `method[:level]`, one of (store|deflate|gzip|zstd|lz4) (default: $DIRPACK_COMPRESSION or guessed from the archive name)")
	f.BoolVar(&opts.IncludeDir, "include-dir", false, "store the name of the directory as the first element of every path")
	f.BoolVar(&opts.Atomic, "atomic", false, "write to a temporary file which replaces the archive only on success")
	f.BoolVar(&opts.Overwrite, "overwrite", false, "replace an existing archive file")
	f.BoolVar(&opts.Strict, "strict", false, "fail on special files instead of skipping them")
	opts.ExcludePatternOptions.Add(f)

	comp := os.Getenv("DIRPACK_COMPRESSION")
	if comp != "" {
		// ignore error as there's no good way to handle it
		_ = opts.Compression.Set(comp)
	}
}

// resolve fills in format and compression from the archive name.
func (opts *CreateOptions) resolve(archivePath string) error {
	format, comp, ok := archive.FormatFromName(archivePath)

	if opts.Format == "" {
		if !ok {
			return errors.Fatalf("unable to guess the archive format of %v, use --format", archivePath)
		}
		opts.Format = format
	}

	if opts.Compression.Method == "" {
		if ok && format == opts.Format {
			opts.Compression = comp
		} else {
			opts.Compression = archive.Store
		}
	}

	if err := opts.Format.Supports(opts.Compression); err != nil {
		return errors.Fatalf("%v", err)
	}
	return nil
}

func runCreate(ctx context.Context, opts CreateOptions, gopts *GlobalOptions, args []string) error {
	if len(args) != 2 {
		return errors.Fatal("wrong number of arguments, expected archive and directory")
	}
	archivePath, dir := args[0], args[1]
	toStdout := archivePath == "-"

	if err := opts.resolve(archivePath); err != nil {
		return err
	}

	if toStdout {
		if gopts.stdoutIsTerminal {
			return errors.Fatal("stdout is the terminal, please redirect output")
		}
	} else if err := checkArchiveOutside(archivePath, dir); err != nil {
		return err
	}

	if opts.IncludeDir {
		// "." and ".." have no name to store, use the real one
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return errors.WithStack(err)
		}
		dir = absDir
	}

	debug.Log("create %v from %v, options %+v", archivePath, dir, opts)

	printer := gopts.printer(toStdout)

	excludes, err := opts.ExcludePatternOptions.CollectPatterns(printer.E)
	if err != nil {
		return err
	}

	printer.V("packing %v into %v archive %v, compression %v", dir, opts.Format, archivePath, opts.Compression)

	counter := printer.NewCounter("packed")
	packOpts := dirpack.Options{
		IncludeDirInPath: opts.IncludeDir,
		Compression:      opts.Compression,
		StrictEntries:    opts.Strict,
		Warnf:            printer.E,
		Progress:         counter,
		Excludes:         excludes,
	}

	if toStdout {
		err = packToWriter(ctx, gopts.stdout, dir, opts.Format, packOpts)
	} else {
		err = dirpack.CreateFromDirectory(ctx, archivePath, dir, dirpack.CreateOptions{
			Format:    opts.Format,
			Atomic:    opts.Atomic,
			Exclusive: !opts.Overwrite,
			Options:   packOpts,
		})
	}
	counter.Done()

	switch {
	case errors.Is(err, os.ErrExist):
		return errors.Fatalf("archive %v already exists, use --overwrite to replace it: %v", archivePath, err)
	case err != nil:
		return err
	}

	if !toStdout {
		printer.P("created archive %v", archivePath)
	}
	return nil
}

// checkArchiveOutside refuses archive paths within dir, the archive would
// end up packing itself.
func checkArchiveOutside(archivePath, dir string) error {
	absArchive, err := filepath.Abs(archivePath)
	if err != nil {
		return errors.WithStack(err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.WithStack(err)
	}

	if fs.HasPathPrefix(absDir, absArchive) {
		return errors.Fatalf("archive %v must not be located inside %v", archivePath, dir)
	}
	return nil
}

func packToWriter(ctx context.Context, out io.Writer, dir string, format archive.Format, opts dirpack.Options) error {
	bw := bufio.NewWriter(out)

	w, err := archive.New(format, bw, opts.Compression)
	if err != nil {
		return err
	}

	if err := dirpack.Pack(ctx, w, dir, opts); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "Flush")
}
