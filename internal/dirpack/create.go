package dirpack

import (
	"bufio"
	"context"
	"io"

	"github.com/restic/dirpack/internal/archive"
	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/fs"
)

// CreateOptions control how an archive file is created from a directory.
type CreateOptions struct {
	// Format of the archive, defaults to zip.
	Format archive.Format

	// Atomic writes the archive to a temporary file which only replaces
	// the target once the archive is complete.
	Atomic bool

	// Exclusive refuses to replace an existing archive file.
	Exclusive bool

	Options
}

// output is the destination of an archive file.
type output interface {
	io.Writer
	// Commit makes the archive visible at its final path.
	Commit() error
	// Abort releases the destination after an error.
	Abort()
}

// fileOutput writes directly to the target file. An aborted archive is
// left behind in whatever state it was in.
type fileOutput struct {
	*bufio.Writer
	f io.Closer
}

func newFileOutput(archivePath string, overwrite bool) (*fileOutput, error) {
	f, err := fs.Create(archivePath, overwrite)
	if err != nil {
		return nil, err
	}
	return &fileOutput{Writer: bufio.NewWriter(f), f: f}, nil
}

func (o *fileOutput) Commit() error {
	if err := o.Flush(); err != nil {
		_ = o.f.Close()
		return errors.Wrap(err, "Flush")
	}
	return errors.Wrap(o.f.Close(), "Close")
}

func (o *fileOutput) Abort() {
	_ = o.f.Close()
}

// CreateFromDirectory packs dir into a new archive file at archivePath.
func CreateFromDirectory(ctx context.Context, archivePath, dir string, opts CreateOptions) error {
	if opts.Format == "" {
		opts.Format = archive.FormatZip
	}
	if err := opts.Format.Supports(opts.Compression); err != nil {
		return err
	}

	fi, err := opts.fs().Stat(dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if !fi.IsDir() {
		return errors.Errorf("%v is not a directory", dir)
	}

	debug.Log("create %v archive %v from %v (atomic %v)", opts.Format, archivePath, dir, opts.Atomic)

	var out output
	if opts.Atomic {
		out, err = newAtomicOutput(archivePath, !opts.Exclusive)
	} else {
		out, err = newFileOutput(archivePath, !opts.Exclusive)
	}
	if err != nil {
		return err
	}

	w, err := archive.New(opts.Format, out, opts.Compression)
	if err != nil {
		out.Abort()
		return err
	}

	err = Pack(ctx, w, dir, opts.Options)
	if err != nil {
		out.Abort()
		return err
	}

	return out.Commit()
}
