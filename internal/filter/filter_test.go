package filter_test

import (
	"testing"

	"github.com/restic/dirpack/internal/filter"
)

var matchTests = []struct {
	pattern string
	path    string
	match   bool
}{
	{"", "", true},
	{"", "foo", true},
	{"", "/foo", true},
	{"*", "/foo", true},
	{"*", "/foo/bar", true},
	{"*.go", "/src/main.go", true},
	{"*.go", "/src/main.go.orig", false},
	{"main.go", "/src/main.go", true},
	{"src/main.go", "/root/src/main.go", true},
	{"/src/main.go", "/root/src/main.go", false},
	{"/root/src/*.go", "/root/src/main.go", true},
	{"/root/*/*.go", "/root/src/main.go", true},
	{"/root/*/*.go", "/root/src/sub/main.go", false},
	{"/root/**/*.go", "/root/src/sub/main.go", true},
	{"/root/**/*.go", "/root/main.go", true},
	{"**/*.go", "/main.go", true},
	{"/root/**", "/root/a/b/c", true},
	{"/root/**", "/other/a", false},
	{"sub/**/main.go", "/root/sub/a/b/main.go", true},
	{"sub/**/main.go", "/root/sub/a/b/other.go", false},
	{"cache", "/root/cache", true},
	{"cache", "/root/cache/entry", true},
	{"/cache", "/root/cache/entry", false},
	{"/root", "/root/cache/entry", true},
	{"cache/*", "/root/cache/entry", true},
	{"[abc].txt", "/b.txt", true},
	{"[abc].txt", "/d.txt", false},
}

func TestMatch(t *testing.T) {
	for _, test := range matchTests {
		t.Run("", func(t *testing.T) {
			m, err := filter.Match(test.pattern, test.path)
			if err != nil {
				t.Fatalf("Match(%q, %q) returned error %v", test.pattern, test.path, err)
			}
			if m != test.match {
				t.Fatalf("Match(%q, %q) = %v, want %v", test.pattern, test.path, m, test.match)
			}
		})
	}
}

func TestMatchErrors(t *testing.T) {
	_, err := filter.Match("*.go", "")
	if err != filter.ErrBadString {
		t.Fatalf("expected ErrBadString, got %v", err)
	}

	_, err = filter.Match("[", "/foo")
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestList(t *testing.T) {
	patterns := filter.ParsePatterns([]string{"", "*.tmp", "/build"})

	for name, want := range map[string]bool{
		"/a.tmp":       true,
		"/dir/b.tmp":   true,
		"/build":       true,
		"/src/build":   false,
		"/src/main.go": false,
	} {
		m, err := filter.List(patterns, name)
		if err != nil {
			t.Fatal(err)
		}
		if m != want {
			t.Errorf("List(%q) = %v, want %v", name, m, want)
		}
	}

	m, err := filter.List(nil, "/anything")
	if err != nil || m {
		t.Fatalf("empty pattern list matched: %v, %v", m, err)
	}
}

func TestValidatePatterns(t *testing.T) {
	err := filter.ValidatePatterns([]string{"*.foo", "**/bar", "/x/[ab]"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err = filter.ValidatePatterns([]string{"*.foo", "[", "a/[x-"})
	ip, ok := err.(*filter.InvalidPatternError)
	if !ok {
		t.Fatalf("wrong error type %v", err)
	}
	if len(ip.InvalidPatterns) != 2 {
		t.Fatalf("expected two invalid patterns, got %v", ip.InvalidPatterns)
	}
}
