package archive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/restic/dirpack/internal/errors"
)

// Method is a compression algorithm.
type Method string

const (
	MethodStore   Method = "store"
	MethodDeflate Method = "deflate"
	MethodGzip    Method = "gzip"
	MethodZstd    Method = "zstd"
	MethodLZ4     Method = "lz4"
)

// DefaultLevel selects the default level of the compression method.
const DefaultLevel = 0

// levelRange holds the valid explicit levels per method.
var levelRange = map[Method][2]int{
	MethodStore:   {0, 0},
	MethodDeflate: {1, 9},
	MethodGzip:    {1, 9},
	MethodZstd:    {1, 22},
	MethodLZ4:     {1, 9},
}

// Compression selects how entry content is compressed. The zero value stores
// entries without compression, a zero Level selects the method's default.
type Compression struct {
	Method Method
	Level  int
}

// Store is the setting that writes content uncompressed.
var Store = Compression{Method: MethodStore}

// ParseCompression parses "method" or "method:level", e.g. "deflate:9".
func ParseCompression(s string) (Compression, error) {
	name, lvl, hasLevel := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	c := Compression{Method: Method(name), Level: DefaultLevel}
	if name == "" || name == "none" || name == "off" {
		c.Method = MethodStore
	}

	if _, ok := levelRange[c.Method]; !ok {
		return Compression{}, errors.Errorf("invalid compression method %q", name)
	}

	if hasLevel {
		level, err := strconv.Atoi(lvl)
		if err != nil {
			return Compression{}, errors.Errorf("invalid compression level %q", lvl)
		}
		if level == DefaultLevel && c.Method != MethodStore {
			return Compression{}, errors.Errorf("compression level %d for %v out of range [%d, %d]",
				level, c.Method, levelRange[c.Method][0], levelRange[c.Method][1])
		}
		c.Level = level
	}

	if err := c.validate(); err != nil {
		return Compression{}, err
	}

	return c, nil
}

// validate checks that the method is known and an explicit level lies
// within the method's range.
func (c Compression) validate() error {
	bounds, ok := levelRange[c.method()]
	if !ok {
		return errors.Errorf("invalid compression method %q", string(c.Method))
	}

	if c.Level != DefaultLevel && (c.Level < bounds[0] || c.Level > bounds[1]) {
		return errors.Errorf("compression level %d for %v out of range [%d, %d]",
			c.Level, c.method(), bounds[0], bounds[1])
	}
	return nil
}

func (c Compression) method() Method {
	if c.Method == "" {
		return MethodStore
	}
	return c.Method
}

// level returns the explicit level, or def if the default was requested.
func (c Compression) level(def int) int {
	if c.Level == DefaultLevel || c.method() == MethodStore {
		return def
	}
	return c.Level
}

func (c Compression) equal(other Compression) bool {
	return c.method() == other.method() && c.level(DefaultLevel) == other.level(DefaultLevel)
}

func (c Compression) String() string {
	if c.Level == DefaultLevel || c.method() == MethodStore {
		return string(c.method())
	}
	return fmt.Sprintf("%v:%d", c.method(), c.Level)
}

// Set implements pflag.Value.
func (c *Compression) Set(s string) error {
	parsed, err := ParseCompression(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *Compression) Type() string {
	return "method[:level]"
}
