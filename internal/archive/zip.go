package archive

import (
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/errors"
)

// ZipMethodZstd is the method ID of zstd compressed zip entries.
const ZipMethodZstd = zstd.ZipMethodWinZip

// ZipWriter writes a zip archive, every entry is compressed on its own.
type ZipWriter struct {
	zw *zip.Writer

	// registered holds the compression the compressor for each method was
	// last registered with, so the level can change between entries.
	registered map[uint16]Compression
}

var _ Writer = &ZipWriter{}

// NewZipWriter returns a ZipWriter that writes to w.
func NewZipWriter(w io.Writer) *ZipWriter {
	return &ZipWriter{
		zw:         zip.NewWriter(w),
		registered: make(map[uint16]Compression),
	}
}

func (z *ZipWriter) prepare(comp Compression) (uint16, error) {
	var (
		method     uint16
		compressor zip.Compressor
	)

	if err := comp.validate(); err != nil {
		return 0, errors.Wrapf(ErrUnsupportedCompression, "%v", err)
	}

	switch comp.method() {
	case MethodStore:
		return zip.Store, nil
	case MethodDeflate:
		method = zip.Deflate
		level := comp.level(flate.DefaultCompression)
		compressor = func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		}
	case MethodZstd:
		method = ZipMethodZstd
		level := zstd.EncoderLevelFromZstd(comp.level(3))
		compressor = zstd.ZipCompressor(zstd.WithEncoderLevel(level))
	default:
		return 0, errors.Wrapf(ErrUnsupportedCompression, "%v with zip", comp)
	}

	if prev, ok := z.registered[method]; !ok || !prev.equal(comp) {
		debug.Log("register zip compressor %v for method %d", comp, method)
		z.zw.RegisterCompressor(method, compressor)
		z.registered[method] = comp
	}

	return method, nil
}

// CreateFile adds a file entry and returns the writer for its content.
func (z *ZipWriter) CreateFile(name string, info EntryInfo, comp Compression) (io.Writer, error) {
	method, err := z.prepare(comp)
	if err != nil {
		return nil, err
	}

	header := &zip.FileHeader{
		Name:     name,
		Modified: info.ModTime,
		Method:   method,
	}
	header.SetMode(info.Mode)

	w, err := z.zw.CreateHeader(header)
	if err != nil {
		return nil, errors.Wrap(err, "ZipHeader")
	}
	return w, nil
}

// CreateDir adds a directory entry.
func (z *ZipWriter) CreateDir(name string, info EntryInfo) error {
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}

	header := &zip.FileHeader{
		Name:     name,
		Modified: info.ModTime,
		Method:   zip.Store,
	}
	header.SetMode(info.Mode)

	_, err := z.zw.CreateHeader(header)
	return errors.Wrap(err, "ZipHeader")
}

// Close writes the central directory.
func (z *ZipWriter) Close() error {
	return errors.Wrap(z.zw.Close(), "ZipClose")
}
