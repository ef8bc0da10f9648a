// Package pyversion parses and orders interpreter version strings.
//
// Versions are compared segment by segment as integers, so "3.10.0" sorts
// after "3.9.0". Missing trailing segments compare as zero.
package pyversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid indicates a token did not start with a numeric segment.
var ErrInvalid = errors.New("invalid version")

// Version is a dot-separated list of numeric segments.
type Version struct {
	Segments []int
}

// New builds a Version from explicit segments.
func New(segments ...int) Version {
	return Version{Segments: append([]int(nil), segments...)}
}

// Parse reads a token such as "3.10.4", "v3.6" or "3.13.0rc1".
// A segment with a non-numeric suffix contributes its leading digits and
// ends the version.
func Parse(s string) (Version, error) {
	token := strings.TrimSpace(s)
	token = strings.TrimPrefix(token, "v")
	if token == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalid)
	}

	var segs []int
	for _, part := range strings.Split(token, ".") {
		digits := leadingDigits(part)
		if digits == "" {
			break
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
		}
		segs = append(segs, n)
		if len(digits) != len(part) {
			break
		}
	}
	if len(segs) == 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Version{Segments: segs}, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseInterpreterOutput extracts the version from `python --version`
// output, e.g. "Python 3.11.4". Output without the "Python" word is parsed
// from its first field.
func ParseInterpreterOutput(out string) (Version, error) {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return Version{}, fmt.Errorf("%w: empty interpreter output", ErrInvalid)
	}
	for i, f := range fields {
		if strings.EqualFold(f, "python") && i+1 < len(fields) {
			return Parse(fields[i+1])
		}
	}
	return Parse(fields[0])
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func (v Version) segment(i int) int {
	if i < len(v.Segments) {
		return v.Segments[i]
	}
	return 0
}

// Compare returns -1, 0 or 1 as v is older than, equal to or newer than other.
func (v Version) Compare(other Version) int {
	n := max(len(v.Segments), len(other.Segments))
	for i := 0; i < n; i++ {
		a, b := v.segment(i), other.segment(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Less reports whether v is strictly older than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v satisfies the minimum required.
func (v Version) AtLeast(required Version) bool {
	return v.Compare(required) >= 0
}

// IsZero reports whether v holds no segments.
func (v Version) IsZero() bool {
	return len(v.Segments) == 0
}

// MinorString returns "major.minor", as used in lib/pythonX.Y paths.
func (v Version) MinorString() string {
	return fmt.Sprintf("%d.%d", v.segment(0), v.segment(1))
}

func (v Version) String() string {
	if v.IsZero() {
		return ""
	}
	parts := make([]string, len(v.Segments))
	for i, n := range v.Segments {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
