package fs_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/restic/dirpack/internal/fs"
	rtest "github.com/restic/dirpack/internal/test"
)

func TestLocalReadDirSorted(t *testing.T) {
	tempdir := rtest.TempDir(t)
	rtest.TestCreateFiles(t, tempdir, rtest.TestDir{
		"zeta":  rtest.TestFile{Content: "z"},
		"alpha": rtest.TestFile{Content: "a"},
		"mid":   rtest.TestDir{},
	})

	var local fs.Local
	entries, err := local.ReadDir(tempdir)
	rtest.OK(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	rtest.Equals(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestLocalOpenStatFollowsSymlink(t *testing.T) {
	tempdir := rtest.TempDir(t)
	rtest.TestCreateFiles(t, tempdir, rtest.TestDir{
		"file": rtest.TestFile{Content: "content"},
		"link": rtest.TestSymlink{Target: "file"},
	})

	var local fs.Local
	link := local.Join(tempdir, "link")

	fi, err := local.Stat(link)
	rtest.OK(t, err)
	rtest.Assert(t, fi.Mode().IsRegular(), "Stat did not follow the symlink: %v", fi.Mode())

	fi, err = local.Lstat(link)
	rtest.OK(t, err)
	rtest.Assert(t, !fi.Mode().IsRegular(), "Lstat followed the symlink")

	f, err := local.Open(link)
	rtest.OK(t, err)
	buf, err := io.ReadAll(f)
	rtest.OK(t, err)
	rtest.OK(t, f.Close())
	rtest.Equals(t, "content", string(buf))
	rtest.Equals(t, "link", local.Base(link))
	rtest.Equals(t, filepath.Clean(tempdir), local.Clean(tempdir+string(filepath.Separator)))
}
