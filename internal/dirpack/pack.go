package dirpack

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/restic/dirpack/internal/archive"
	"github.com/restic/dirpack/internal/debug"
	"github.com/restic/dirpack/internal/errors"
	"github.com/restic/dirpack/internal/filter"
	"github.com/restic/dirpack/internal/fs"
	"github.com/restic/dirpack/internal/ui/progress"
)

// ErrNotSupportedEntry is reported for entries which are neither regular
// files nor directories, e.g. sockets, fifos or device nodes.
var ErrNotSupportedEntry = errors.New("entry is neither a file nor a directory")

// Options control how a directory is packed.
type Options struct {
	// FS is the file system to read from, defaults to fs.Local.
	FS fs.FS

	// IncludeDirInPath stores the name of the packed directory as the
	// first segment of every entry.
	IncludeDirInPath bool

	// Compression is used for every file entry.
	Compression archive.Compression

	// Warnf is called for skipped entries. Nil discards the warnings.
	Warnf func(msg string, args ...interface{})

	// StrictEntries aborts on unsupported entries instead of skipping them.
	StrictEntries bool

	// Progress counts the bytes of all packed files, may be nil.
	Progress *progress.Counter

	// Excludes are called with the entry name, prefixed with a slash.
	// Rejected directories are not descended into.
	Excludes []filter.RejectByNameFunc
}

func (opts Options) fs() fs.FS {
	if opts.FS == nil {
		return fs.Local{}
	}
	return opts.FS
}

type packer struct {
	fs   fs.FS
	opts Options
	w    archive.Writer
	root string
	buf  bytes.Buffer
}

// Pack walks dir and stores every file and directory below it in w. The
// archive is closed when all entries have been written. On error the walk
// stops, w is closed and the first error is returned.
func Pack(ctx context.Context, w archive.Writer, dir string, opts Options) error {
	p := &packer{
		fs:   opts.fs(),
		opts: opts,
		w:    w,
	}
	p.root = p.fs.Clean(dir)

	debug.Log("pack %v, include dir %v, compression %v", p.root, opts.IncludeDirInPath, opts.Compression)

	err := p.walk(ctx)
	if err != nil {
		// the archive is unusable anyway, report the walk error
		_ = w.Close()
		return err
	}

	return errors.Wrap(w.Close(), "Close")
}

func (p *packer) walk(ctx context.Context) error {
	queue := []string{p.root}

	for len(queue) > 0 {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		dir := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		entries, err := p.fs.ReadDir(dir)
		if err != nil {
			return errors.Wrap(err, "ReadDir")
		}

		for _, entry := range entries {
			item := childPath(dir, entry.Name())
			name := p.entryName(item)
			if p.excluded(name) {
				continue
			}

			fi, err := p.fs.Stat(item)
			if err != nil {
				return errors.Wrap(err, "Stat")
			}

			switch {
			case fi.Mode().IsRegular():
				err = p.packFile(item, name, archive.NewEntryInfo(fi))
			case fi.IsDir():
				err = p.w.CreateDir(name+"/", archive.NewEntryInfo(fi))
				if err == nil {
					queue = append(queue, item)
				}
			default:
				err = p.unsupported(item, fi.Mode())
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}

// childPath appends name to dir without cleaning the result, so that every
// path below the root keeps the root's segments, including a leading ".".
func childPath(dir, name string) string {
	if dir != "" && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func (p *packer) entryName(item string) string {
	return path.Join(fs.RelativeComponents(p.root, item, p.opts.IncludeDirInPath)...)
}

func (p *packer) excluded(name string) bool {
	for _, reject := range p.opts.Excludes {
		if reject("/" + name) {
			return true
		}
	}
	return false
}

func (p *packer) packFile(item, name string, info archive.EntryInfo) error {
	f, err := p.fs.Open(item)
	if err != nil {
		return errors.WithStack(err)
	}

	p.buf.Reset()
	_, err = p.buf.ReadFrom(f)
	_ = f.Close()
	if err != nil {
		return errors.Wrapf(err, "read %v", item)
	}

	// the file may have changed since stat, store what was read
	info.Size = int64(p.buf.Len())

	debug.Log("add %v as %v (%d bytes)", item, name, info.Size)

	wr, err := p.w.CreateFile(name, info, p.opts.Compression)
	if err != nil {
		return err
	}

	n, err := io.Copy(wr, &p.buf)
	if err != nil {
		return errors.Wrapf(err, "write %v", name)
	}

	p.opts.Progress.Add(uint64(n))
	return nil
}

func (p *packer) unsupported(item string, mode os.FileMode) error {
	err := errors.Wrapf(ErrNotSupportedEntry, "%v (%v)", item, mode)
	if p.opts.StrictEntries {
		return err
	}

	debug.Log("skip %v", err)
	if p.opts.Warnf != nil {
		p.opts.Warnf("skipping %v\n", err)
	}
	return nil
}
