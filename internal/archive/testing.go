package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// TestReadEntries extracts the archive in buf into a map from entry name to
// content. Directory entries map to the empty string.
func TestReadEntries(t testing.TB, f Format, comp Compression, buf []byte) map[string]string {
	t.Helper()

	switch f {
	case FormatZip:
		return testReadZip(t, buf)
	case FormatTar:
		return testReadTar(t, comp, buf)
	}

	t.Fatalf("unknown format %q", f)
	return nil
}

func testReadZip(t testing.TB, buf []byte) map[string]string {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		t.Fatal(err)
	}
	zr.RegisterDecompressor(ZipMethodZstd, zstd.ZipDecompressor())

	entries := make(map[string]string)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			entries[f.Name] = ""
			continue
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		_ = rc.Close()

		entries[f.Name] = string(content)
	}

	return entries
}

func testReadTar(t testing.TB, comp Compression, buf []byte) map[string]string {
	var rd io.Reader = bytes.NewReader(buf)

	switch comp.method() {
	case MethodGzip:
		gr, err := gzip.NewReader(rd)
		if err != nil {
			t.Fatal(err)
		}
		defer func() { _ = gr.Close() }()
		rd = gr
	case MethodZstd:
		zr, err := zstd.NewReader(rd)
		if err != nil {
			t.Fatal(err)
		}
		defer zr.Close()
		rd = zr
	case MethodLZ4:
		rd = lz4.NewReader(rd)
	}

	entries := make(map[string]string)
	tr := tar.NewReader(rd)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}

		if header.Typeflag == tar.TypeDir {
			entries[header.Name] = ""
			continue
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		entries[header.Name] = string(content)
	}

	return entries
}
