package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/restic/dirpack/internal/errors"
	rtest "github.com/restic/dirpack/internal/test"
)

func TestRejectByPattern(t *testing.T) {
	var tests = []struct {
		filename string
		reject   bool
	}{
		{filename: "/src/foo.go", reject: true},
		{filename: "/src/foo.c", reject: false},
		{filename: "/src/foobar", reject: false},
		{filename: "/src/foobar/x", reject: true},
		{filename: "/README", reject: false},
		{filename: "/docs/README.md", reject: true},
	}

	patterns := []string{"*.go", "README.md", "/src/foobar/*"}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			reject := RejectByPattern(patterns, nil)
			res := reject(tc.filename)
			if res != tc.reject {
				t.Fatalf("wrong result for filename %v: want %v, got %v",
					tc.filename, tc.reject, res)
			}
		})
	}
}

func TestRejectByInsensitivePattern(t *testing.T) {
	var tests = []struct {
		filename string
		reject   bool
	}{
		{filename: "/src/foo.GO", reject: true},
		{filename: "/src/foo.c", reject: false},
		{filename: "/src/foobar", reject: false},
		{filename: "/src/FOObar/x", reject: true},
		{filename: "/README", reject: false},
		{filename: "/docs/readme.md", reject: true},
	}

	patterns := []string{"*.go", "README.md", "/src/foobar/*"}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			reject := RejectByInsensitivePattern(patterns, nil)
			res := reject(tc.filename)
			if res != tc.reject {
				t.Fatalf("wrong result for filename %v: want %v, got %v",
					tc.filename, tc.reject, res)
			}
		})
	}
}

func TestCollectPatterns(t *testing.T) {
	t.Setenv("DIRPACK_TEST_EXT", "log")

	tempdir := rtest.TempDir(t)
	patternFile := filepath.Join(tempdir, "patterns")
	rtest.OK(t, os.WriteFile(patternFile, []byte("\xef\xbb\xbf# comment\n\n  *.$DIRPACK_TEST_EXT  \ncost$$\n"), 0644))

	opts := ExcludePatternOptions{
		Excludes:     []string{"/tmp"},
		ExcludeFiles: []string{patternFile},
	}
	rtest.Assert(t, !opts.Empty(), "options are empty")

	funcs, err := opts.CollectPatterns(nil)
	rtest.OK(t, err)
	rtest.Equals(t, 1, len(funcs))

	for name, want := range map[string]bool{
		"/tmp":          true,
		"/a/tmp":        false,
		"/a/debug.log":  true,
		"/a/debug.txt":  false,
		"/cost$":        true,
		"/costs":        false,
		"/# comment":    false,
		"/a/b/cost$":    true,
		"/a/b/debug.lo": false,
	} {
		rtest.Equals(t, want, funcs[0](name))
	}
}

func TestCollectPatternsInvalid(t *testing.T) {
	opts := ExcludePatternOptions{
		Excludes: []string{"*.foo", "*[._]log[.-][0-9]"},
	}

	_, err := opts.CollectPatterns(nil)
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)

	var invalid *InvalidPatternError
	rtest.Assert(t, errors.As(err, &invalid), "expected InvalidPatternError, got %v", err)
	rtest.Equals(t, []string{"*[._]log[.-][0-9]"}, invalid.InvalidPatterns)

	opts = ExcludePatternOptions{ExcludeFiles: []string{filepath.Join(rtest.TempDir(t), "missing")}}
	_, err = opts.CollectPatterns(nil)
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "expected ErrNotExist, got %v", err)
}
