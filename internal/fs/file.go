package fs

import (
	"os"

	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/errors"
)

// Create opens the file at path for writing. Unless overwrite is set, an
// existing file is left untouched and an error matching os.ErrExist is
// returned. An existing file is truncated when overwrite is set.
func Create(path string, overwrite bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(fixpath(path), flags, 0666)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// WriteAllBytes writes data to the file at path and returns the number of
// bytes written. Existing files are handled as by Create, so no bytes of
// the previous content remain after an overwrite.
func WriteAllBytes(path string, data []byte, overwrite bool) (int, error) {
	f, err := Create(path, overwrite)
	if err != nil {
		return 0, err
	}

	n, err := f.Write(data)
	debug.Log("wrote %d of %d bytes to %v (overwrite %v)", n, len(data), path, overwrite)
	if err != nil {
		_ = f.Close()
		return n, errors.WithStack(err)
	}

	return n, errors.WithStack(f.Close())
}
