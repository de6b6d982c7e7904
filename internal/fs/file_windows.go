package fs

import (
	"path/filepath"
	"strings"
)

// fixpath returns an absolute path with the extended-length prefix, so that
// paths longer than MAX_PATH can be opened.
func fixpath(name string) string {
	abspath, err := filepath.Abs(name)
	if err != nil {
		return name
	}

	switch {
	case strings.HasPrefix(abspath, `\\?\`):
		return abspath
	case strings.HasPrefix(abspath, `\\`):
		return strings.Replace(abspath, `\\`, `\\?\UNC\`, 1)
	default:
		return `\\?\` + abspath
	}
}
