package archive

import (
	"path/filepath"
	"strings"

	"github.com/restic/dirpack/internal/errors"
)

// Format is the container format of an archive.
type Format string

const (
	FormatZip Format = "zip"
	FormatTar Format = "tar"
)

// ErrUnknownFormat is returned for a container format dirpack cannot write.
var ErrUnknownFormat = errors.New("unknown archive format")

// ErrUnsupportedCompression is returned when a compression method cannot be
// used with a container format.
var ErrUnsupportedCompression = errors.New("compression not supported by archive format")

// ParseFormat parses "zip" or "tar".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatZip, FormatTar:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// FormatFromName guesses format and compression from the file name of an
// archive. It returns ok == false for unknown extensions.
func FormatFromName(name string) (f Format, c Compression, ok bool) {
	name = strings.ToLower(filepath.Base(name))

	suffixes := []struct {
		suffix string
		format Format
		method Method
	}{
		{".zip", FormatZip, MethodDeflate},
		{".tar", FormatTar, MethodStore},
		{".tar.gz", FormatTar, MethodGzip},
		{".tgz", FormatTar, MethodGzip},
		{".tar.zst", FormatTar, MethodZstd},
		{".tar.lz4", FormatTar, MethodLZ4},
	}

	for _, s := range suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.format, Compression{Method: s.method, Level: DefaultLevel}, true
		}
	}

	return "", Compression{}, false
}

// Supports returns an error wrapping ErrUnsupportedCompression if c cannot
// be used with f. Unknown methods and levels outside the method's range are
// rejected as well.
func (f Format) Supports(c Compression) error {
	if err := c.validate(); err != nil {
		return errors.Wrapf(ErrUnsupportedCompression, "%v", err)
	}

	var supported bool

	switch f {
	case FormatZip:
		switch c.method() {
		case MethodStore, MethodDeflate, MethodZstd:
			supported = true
		}
	case FormatTar:
		_, supported = levelRange[c.method()]
		supported = supported && c.method() != MethodDeflate
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}

	if !supported {
		return errors.Wrapf(ErrUnsupportedCompression, "%v with %v", c, f)
	}
	return nil
}

func (f Format) String() string {
	return string(f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}
