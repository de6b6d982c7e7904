//go:build !windows

package dirpack_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/restic/dirpack/internal/archive"
	"github.com/restic/dirpack/internal/dirpack"
	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/fs"
	rtest "github.com/restic/dirpack/internal/test"
)

const atomicSupported = true

func TestCreateFromDirectoryAtomic(t *testing.T) {
	root := prepareTree(t, testTree)
	outdir := rtest.TempDir(t)
	target := filepath.Join(outdir, "archive.tar")
	rtest.OK(t, os.WriteFile(target, []byte("old"), 0644))

	opts := dirpack.CreateOptions{Format: archive.FormatTar, Atomic: true}
	rtest.OK(t, dirpack.CreateFromDirectory(context.TODO(), target, root, opts))

	buf, err := os.ReadFile(target)
	rtest.OK(t, err)
	rtest.Equals(t, rtest.TestEntries(testTree, ""), archive.TestReadEntries(t, archive.FormatTar, archive.Store, buf))

	entries, err := os.ReadDir(outdir)
	rtest.OK(t, err)
	rtest.Equals(t, 1, len(entries))
}

func TestCreateFromDirectoryAtomicError(t *testing.T) {
	root := prepareTree(t, testTree)
	outdir := rtest.TempDir(t)
	target := filepath.Join(outdir, "archive.zip")
	rtest.OK(t, os.WriteFile(target, []byte("old"), 0644))

	opts := dirpack.CreateOptions{Atomic: true}
	opts.FS = failingFS{FS: fs.Local{}, name: "random"}

	err := dirpack.CreateFromDirectory(context.TODO(), target, root, opts)
	rtest.Assert(t, errors.Is(err, errOpen), "expected open error, got %v", err)

	buf, err := os.ReadFile(target)
	rtest.OK(t, err)
	rtest.Equals(t, "old", string(buf))

	entries, err := os.ReadDir(outdir)
	rtest.OK(t, err)
	rtest.Equals(t, 1, len(entries))
}
