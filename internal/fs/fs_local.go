package fs

import (
	"os"
	"path/filepath"
)

// Local is the local file system. Most methods are just passed on to the stdlib.
type Local struct{}

// statically ensure that Local implements FS.
var _ FS = &Local{}

// Open opens a file for reading.
func (fs Local) Open(name string) (File, error) {
	f, err := os.Open(fixpath(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Stat returns a FileInfo describing the named file, following symlinks.
// If there is an error, it will be of type *PathError.
func (fs Local) Stat(name string) (os.FileInfo, error) {
	return os.Stat(fixpath(name))
}

// Lstat returns the FileInfo structure describing the named file.
// If the file is a symbolic link, the returned FileInfo
// describes the symbolic link.
func (fs Local) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(fixpath(name))
}

// ReadDir reads the named directory, returning all its directory entries
// sorted by filename.
func (fs Local) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(fixpath(name))
}

// Join joins any number of path elements into a single path, adding a
// Separator if necessary.
func (fs Local) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Clean returns the cleaned path. For details, see filepath.Clean.
func (fs Local) Clean(p string) string {
	return filepath.Clean(p)
}

// Base returns the last element of path.
func (fs Local) Base(path string) string {
	return filepath.Base(path)
}
