package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/fs"
	rtest "github.com/restic/dirpack/internal/test"
)

func TestWriteAllBytesNewFile(t *testing.T) {
	tempdir := rtest.TempDir(t)
	target := filepath.Join(tempdir, "new")
	data := rtest.Random(23, 5000)

	n, err := fs.WriteAllBytes(target, data, false)
	rtest.OK(t, err)
	rtest.Equals(t, len(data), n)

	buf, err := os.ReadFile(target)
	rtest.OK(t, err)
	rtest.Equals(t, data, buf)
}

func TestWriteAllBytesExisting(t *testing.T) {
	var tests = []struct {
		name      string
		overwrite bool
		old, new  string
		want      string
		wantExist bool
	}{
		{
			name: "refuse", overwrite: false,
			old: "original content", new: "x",
			want: "original content", wantExist: true,
		},
		{
			name: "shorter", overwrite: true,
			old: "original content", new: "x",
			want: "x",
		},
		{
			name: "longer", overwrite: true,
			old: "x", new: "replacement content",
			want: "replacement content",
		},
		{
			name: "empty", overwrite: true,
			old: "original content", new: "",
			want: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			target := filepath.Join(rtest.TempDir(t), "file")
			rtest.OK(t, os.WriteFile(target, []byte(test.old), 0644))

			n, err := fs.WriteAllBytes(target, []byte(test.new), test.overwrite)
			if test.wantExist {
				rtest.Assert(t, errors.Is(err, os.ErrExist), "expected os.ErrExist, got %v", err)
				rtest.Equals(t, 0, n)
			} else {
				rtest.OK(t, err)
				rtest.Equals(t, len(test.new), n)
			}

			buf, err := os.ReadFile(target)
			rtest.OK(t, err)
			rtest.Equals(t, test.want, string(buf))
		})
	}
}

func TestWriteAllBytesMissingDir(t *testing.T) {
	target := filepath.Join(rtest.TempDir(t), "missing", "file")

	_, err := fs.WriteAllBytes(target, []byte("data"), true)
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "expected os.ErrNotExist, got %v", err)
}
