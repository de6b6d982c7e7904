package fs

import (
	"io"
	"os"
)

// FS bundles all methods the directory packer needs from a file system.
type FS interface {
	// Open opens a file for reading.
	Open(name string) (File, error)
	// Stat follows symlinks, Lstat does not.
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	// ReadDir returns the entries of the directory sorted by name.
	ReadDir(name string) ([]os.DirEntry, error)

	Join(elem ...string) string
	Clean(path string) string
	Base(path string) string
}

// File is an open file on a file system.
type File interface {
	io.Reader
	io.Closer

	Stat() (os.FileInfo, error)
}
