//go:build !windows

package dirpack

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/restic/dirpack/internal/errors"
)

// atomicOutput writes to a temporary file in the directory of the target,
// which is renamed over the target on Commit.
type atomicOutput struct {
	*bufio.Writer
	pending *renameio.PendingFile
}

func newAtomicOutput(archivePath string, overwrite bool) (*atomicOutput, error) {
	if !overwrite {
		if _, err := os.Lstat(archivePath); err == nil {
			return nil, errors.WithStack(&os.PathError{Op: "create", Path: archivePath, Err: os.ErrExist})
		}
	}

	pending, err := renameio.TempFile(filepath.Dir(archivePath), archivePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	// temporary files are created with mode 0600
	if err := pending.Chmod(0644); err != nil {
		_ = pending.Cleanup()
		return nil, errors.WithStack(err)
	}
	return &atomicOutput{Writer: bufio.NewWriter(pending), pending: pending}, nil
}

func (o *atomicOutput) Commit() error {
	if err := o.Flush(); err != nil {
		o.Abort()
		return errors.Wrap(err, "Flush")
	}
	return errors.Wrap(o.pending.CloseAtomicallyReplace(), "CloseAtomicallyReplace")
}

func (o *atomicOutput) Abort() {
	_ = o.pending.Cleanup()
}
