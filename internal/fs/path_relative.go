package fs

import (
	"os"
	"path/filepath"
)

// PathComponents splits p into its segments. A volume name is the first
// segment, an absolute path contributes the separator as the next one.
// Repeated separators and "." segments are dropped, except for a leading "."
// of a relative path. No other normalization happens, ".." is kept as is.
func PathComponents(p string) []string {
	var comps []string

	if vol := filepath.VolumeName(p); vol != "" {
		comps = append(comps, vol)
		p = p[len(vol):]
	}

	if len(p) > 0 && os.IsPathSeparator(p[0]) {
		comps = append(comps, string(filepath.Separator))
	}
	relative := len(comps) == 0

	start := 0
	for i := 0; i <= len(p); i++ {
		if i < len(p) && !os.IsPathSeparator(p[i]) {
			continue
		}

		seg := p[start:i]
		start = i + 1

		switch {
		case seg == "":
		case seg == "." && !(relative && len(comps) == 0):
		default:
			comps = append(comps, seg)
		}
	}

	return comps
}

// RelativeComponents returns the segments of current that lie beyond root.
// With includeDirInPath, the last segment of root is kept as the first
// element of the result (root "/media/cd1" and current "/media/cd1/a" yield
// "cd1", "a").
//
// Segments are compared by position. The walk stops at the first segment
// that differs from root, so a current path which is not below root yields
// an empty or truncated result instead of an error.
func RelativeComponents(root, current string, includeDirInPath bool) []string {
	rootComps := PathComponents(root)
	if includeDirInPath && len(rootComps) > 0 {
		rootComps = rootComps[:len(rootComps)-1]
	}

	curComps := PathComponents(current)
	result := make([]string, 0, len(curComps))

	for i, comp := range curComps {
		if i < len(rootComps) {
			if rootComps[i] != comp {
				break
			}
			continue
		}
		result = append(result, comp)
	}

	return result
}
