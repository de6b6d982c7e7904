package archive

import (
	"io"
	"os"
	"time"

	"github.com/restic/dirpack/internal/errors"
)

// Writer stores entries in an archive. Names use forward slashes, directory
// names end with a slash. The io.Writer returned by CreateFile is only valid
// until the next call to CreateFile, CreateDir or Close.
type Writer interface {
	CreateFile(name string, info EntryInfo, comp Compression) (io.Writer, error)
	CreateDir(name string, info EntryInfo) error
	// Close writes the archive index and footer. It does not close the
	// underlying io.Writer.
	Close() error
}

// EntryInfo is the metadata stored with an entry.
type EntryInfo struct {
	Mode    os.FileMode
	ModTime time.Time
	// Size must match the number of bytes written for a file.
	Size int64
}

// NewEntryInfo returns the metadata of fi.
func NewEntryInfo(fi os.FileInfo) EntryInfo {
	info := EntryInfo{
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
	}
	if fi.Mode().IsRegular() {
		info.Size = fi.Size()
	}
	return info
}

// New returns a Writer for format f that writes to w. For tar archives comp
// selects the stream compression, zip archives register compressors on
// demand and ignore it.
func New(f Format, w io.Writer, comp Compression) (Writer, error) {
	if err := f.Supports(comp); err != nil {
		return nil, err
	}

	switch f {
	case FormatZip:
		return NewZipWriter(w), nil
	case FormatTar:
		return NewTarWriter(w, comp)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}
}
