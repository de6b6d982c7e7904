package test

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDir describes a directory structure to create for a test.
type TestDir map[string]interface{}

// TestFile describes a file created for a test.
type TestFile struct {
	Content string
}

// TestSymlink describes a symlink created for a test.
type TestSymlink struct {
	Target string
}

// TestCreateFiles creates a directory structure described by dir at target,
// which must already exist.
func TestCreateFiles(t testing.TB, target string, dir TestDir) {
	t.Helper()

	for name, item := range dir {
		targetPath := filepath.Join(target, name)

		switch it := item.(type) {
		case TestFile:
			OK(t, os.WriteFile(targetPath, []byte(it.Content), 0644))
		case TestSymlink:
			OK(t, os.Symlink(filepath.FromSlash(it.Target), targetPath))
		case TestDir:
			OK(t, os.Mkdir(targetPath, 0755))
			TestCreateFiles(t, targetPath, it)
		default:
			t.Fatalf("unknown item %T in test dir %v", item, name)
		}
	}
}

// TestEntries returns the archive entry names and file contents expected
// for dir. Directory names carry a trailing slash and map to an empty string.
func TestEntries(dir TestDir, prefix string) map[string]string {
	entries := make(map[string]string)

	for name, item := range dir {
		switch it := item.(type) {
		case TestFile:
			entries[prefix+name] = it.Content
		case TestDir:
			entries[prefix+name+"/"] = ""
			for k, v := range TestEntries(it, prefix+name+"/") {
				entries[k] = v
			}
		}
	}

	return entries
}
