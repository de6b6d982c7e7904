package archive

import (
	"archive/tar"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/restic/dirpack/internal/errors"
)

// copied from archive/tar.FileInfoHeader
const (
	// Mode constants from the USTAR spec:
	// See http://pubs.opengroup.org/onlinepubs/9699919799/utilities/pax.html#tag_20_92_13_06
	cISUID = 04000 // Set uid
	cISGID = 02000 // Set gid
	cISVTX = 01000 // Save text (sticky bit)
)

var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// TarWriter writes a tar archive through a stream compressor.
type TarWriter struct {
	tw   *tar.Writer
	zw   io.WriteCloser
	comp Compression
}

var _ Writer = &TarWriter{}

// nopWriteCloser is used for uncompressed streams.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewTarWriter returns a TarWriter that compresses the whole stream with comp
// and writes it to w.
func NewTarWriter(w io.Writer, comp Compression) (*TarWriter, error) {
	if err := comp.validate(); err != nil {
		return nil, errors.Wrapf(ErrUnsupportedCompression, "%v", err)
	}

	var (
		zw  io.WriteCloser
		err error
	)

	switch comp.method() {
	case MethodStore:
		zw = nopWriteCloser{w}
	case MethodGzip:
		zw, err = gzip.NewWriterLevel(w, comp.level(gzip.DefaultCompression))
	case MethodZstd:
		zw, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(comp.level(3))))
	case MethodLZ4:
		lw := lz4.NewWriter(w)
		err = lw.Apply(lz4.CompressionLevelOption(lz4Levels[comp.level(0)]))
		zw = lw
	default:
		return nil, errors.Wrapf(ErrUnsupportedCompression, "%v with tar", comp)
	}
	if err != nil {
		return nil, errors.Wrap(err, "NewCompressor")
	}

	return &TarWriter{
		tw:   tar.NewWriter(zw),
		zw:   zw,
		comp: comp,
	}, nil
}

func (t *TarWriter) header(name string, info EntryInfo) *tar.Header {
	header := &tar.Header{
		Name:    name,
		Mode:    int64(info.Mode.Perm()), // c_IS* constants are added below
		ModTime: info.ModTime,
	}

	// adapted from archive/tar.FileInfoHeader
	if info.Mode&os.ModeSetuid != 0 {
		header.Mode |= cISUID
	}
	if info.Mode&os.ModeSetgid != 0 {
		header.Mode |= cISGID
	}
	if info.Mode&os.ModeSticky != 0 {
		header.Mode |= cISVTX
	}

	return header
}

// CreateFile writes the header of a regular file. The stream compression is
// fixed, so comp must match the one the writer was created with.
func (t *TarWriter) CreateFile(name string, info EntryInfo, comp Compression) (io.Writer, error) {
	if !comp.equal(t.comp) {
		return nil, errors.Wrapf(ErrUnsupportedCompression, "entry compression %v in %v stream", comp, t.comp)
	}

	header := t.header(name, info)
	header.Typeflag = tar.TypeReg
	header.Size = info.Size

	if err := t.tw.WriteHeader(header); err != nil {
		return nil, errors.Wrap(err, "TarHeader")
	}
	return t.tw, nil
}

// CreateDir writes the header of a directory.
func (t *TarWriter) CreateDir(name string, info EntryInfo) error {
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}

	header := t.header(name, info)
	header.Typeflag = tar.TypeDir

	return errors.Wrap(t.tw.WriteHeader(header), "TarHeader")
}

// Close writes the tar footer and flushes the compressor.
func (t *TarWriter) Close() error {
	err := t.tw.Close()
	if cerr := t.zw.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "TarClose")
}
