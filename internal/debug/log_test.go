package debug

import (
	"bytes"
	"strings"
	"testing"
)

func BenchmarkLogStatic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Log("Static string")
	}
}

func TestLogWritesPosition(t *testing.T) {
	buf := &bytes.Buffer{}
	TestLogTo(t, buf)

	Log("packing %v", "dir/file.txt")

	out := buf.String()
	if !strings.Contains(out, "debug/log_test.go:") {
		t.Errorf("position missing in %q", out)
	}
	if !strings.HasSuffix(out, "packing dir/file.txt\n") {
		t.Errorf("message missing in %q", out)
	}
}

func TestCheckFilter(t *testing.T) {
	filter := map[string]bool{
		padFile("pack.go"): true,
		padFile("zip.go"):  false,
		"all":              true,
	}

	var tests = []struct {
		key  string
		want bool
	}{
		{"dirpack/pack.go:42", true},
		{"archive/zip.go:7", false},
		{"fs/local.go:1", true},
	}

	for _, test := range tests {
		if got := checkFilter(filter, test.key); got != test.want {
			t.Errorf("checkFilter(%q) = %v, want %v", test.key, got, test.want)
		}
	}
}
