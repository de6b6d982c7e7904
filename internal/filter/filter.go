package filter

import (
	"path"
	"strings"

	"github.com/restic/dirpack/internal/errors"
)

// ErrBadString is returned when Match is called with the empty string as the
// second argument.
var ErrBadString = errors.New("filter.Match: string is empty")

// Pattern represents a preparsed filter pattern
type Pattern []string

// Names are archive entry names, so both names and patterns use forward
// slashes. A leading slash anchors a pattern at the archive root.
func prepareStr(str string) ([]string, error) {
	if str == "" {
		return nil, ErrBadString
	}
	return strings.Split(str, "/"), nil
}

func preparePattern(pattern string) Pattern {
	return strings.Split(path.Clean(pattern), "/")
}

// Match returns true if str matches the pattern. When the pattern is
// malformed, path.ErrBadPattern is returned. The empty pattern matches
// everything, when str is the empty string ErrBadString is returned.
//
// Pattern can be a combination of patterns suitable for path.Match, joined
// by slashes. A relative pattern matches any run of segments of str, an
// absolute one only the leading segments. In addition, the recursive wildcard
// '**' greedily matches an arbitrary number of intermediate directories.
func Match(pattern, str string) (matched bool, err error) {
	if pattern == "" {
		return true, nil
	}

	strs, err := prepareStr(str)
	if err != nil {
		return false, err
	}

	return match(preparePattern(pattern), strs)
}

func hasDoubleWildcard(list Pattern) (ok bool, pos int) {
	for i, item := range list {
		if item == "**" {
			return true, i
		}
	}

	return false, 0
}

func match(patterns Pattern, strs []string) (matched bool, err error) {
	if ok, pos := hasDoubleWildcard(patterns); ok {
		// gradually expand '**' into separate wildcards
		newPat := make(Pattern, len(strs))
		// copy static prefix once
		copy(newPat, patterns[:pos])
		for i := 0; i <= len(strs)-len(patterns)+1; i++ {
			// limit to static prefix and already appended '*'
			newPat := newPat[:pos+i]
			// in the first iteration the wildcard expands to nothing
			if i > 0 {
				newPat[pos+i-1] = "*"
			}
			newPat = append(newPat, patterns[pos+1:]...)

			matched, err := match(newPat, strs)
			if err != nil {
				return false, err
			}

			if matched {
				return true, nil
			}
		}

		return false, nil
	}

	if len(patterns) == 0 && len(strs) == 0 {
		return true, nil
	}

	if len(patterns) > len(strs) {
		return false, nil
	}

	maxOffset := len(strs) - len(patterns)
	// absolute patterns only match at the start
	if patterns[0] == "" {
		maxOffset = 0
	}

outer:
	for offset := maxOffset; offset >= 0; offset-- {
		for i := len(patterns) - 1; i >= 0; i-- {
			ok, err := path.Match(patterns[i], strs[offset+i])
			if err != nil {
				return false, errors.Wrap(err, "Match")
			}

			if !ok {
				continue outer
			}
		}

		return true, nil
	}

	return false, nil
}

// ParsePatterns prepares a list of patterns for use with List. Empty
// patterns are dropped.
func ParsePatterns(patterns []string) []Pattern {
	parsed := make([]Pattern, 0, len(patterns))
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		parsed = append(parsed, preparePattern(pat))
	}
	return parsed
}

// List returns true if str matches one of the patterns.
func List(patterns []Pattern, str string) (matched bool, err error) {
	if len(patterns) == 0 {
		return false, nil
	}

	strs, err := prepareStr(str)
	if err != nil {
		return false, err
	}

	for _, pat := range patterns {
		m, err := match(pat, strs)
		if err != nil {
			return false, err
		}
		if m {
			return true, nil
		}
	}

	return false, nil
}

// InvalidPatternError lists the patterns rejected by ValidatePatterns.
type InvalidPatternError struct {
	InvalidPatterns []string
}

func (e *InvalidPatternError) Error() string {
	return "invalid pattern(s) provided:\n" + strings.Join(e.InvalidPatterns, "\n")
}

// ValidatePatterns checks all patterns for syntax errors.
func ValidatePatterns(patterns []string) error {
	var invalid []string

	for _, pattern := range patterns {
		for _, part := range preparePattern(pattern) {
			// matching against an empty name only checks the syntax
			if _, err := path.Match(part, ""); err != nil {
				invalid = append(invalid, pattern)
				break
			}
		}
	}

	if len(invalid) > 0 {
		return &InvalidPatternError{InvalidPatterns: invalid}
	}
	return nil
}
