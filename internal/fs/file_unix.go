//go:build !windows

package fs

// fixpath returns name unchanged, only Windows needs path rewriting.
func fixpath(name string) string {
	return name
}
