// Package wpversion parses and compares WordPress version strings.
package wpversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status classifies an installed version against the latest published one.
type Status string

// Version status constants
const (
	// StatusUpToDate indicates the installed version is at least the latest published one
	StatusUpToDate Status = "up-to-date"
	// StatusOutdated indicates a newer version has been published
	StatusOutdated Status = "outdated"
	// StatusUnknown indicates the comparison could not be made
	StatusUnknown Status = "unknown"
)

// ErrUnparsable is returned when a string cannot be interpreted as a version
var ErrUnparsable = errors.New("unparsable version string")

// segment is one dot-separated component of a version.
// Numeric segments compare as integers, anything else as strings.
type segment struct {
	num     int
	text    string
	numeric bool
}

// zeroSegment pads the shorter version during comparison,
// so "5.8" and "5.8.0" compare equal.
var zeroSegment = segment{num: 0, text: "0", numeric: true}

// Version is a parsed version string: an ordered list of segments.
type Version struct {
	raw      string
	segments []segment
}

// Parse interprets a version string such as "5.8.1" or "6.4-beta2".
// A version must start with a digit and may contain alphanumeric segments
// separated by '.', '-', '_' or '+'. Anything else returns ErrUnparsable.
func Parse(raw string) (*Version, error) {
	s := strings.TrimSpace(raw)

	// Tolerate a conventional "v" prefix (v5.8.1)
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && isDigit(s[1]) {
		s = s[1:]
	}

	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrUnparsable)
	}
	if !isDigit(s[0]) {
		return nil, fmt.Errorf("%w: %q does not start with a digit", ErrUnparsable, raw)
	}

	segments, err := splitSegments(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnparsable, raw, err)
	}

	return &Version{raw: raw, segments: segments}, nil
}

// splitSegments breaks a normalized version string into segments.
// Separators are interchangeable; consecutive or trailing separators
// produce an empty segment and fail.
func splitSegments(s string) ([]segment, error) {
	norm := strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '_', '+':
			return '.'
		}
		return r
	}, s)

	parts := strings.Split(norm, ".")
	segments := make([]segment, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, errors.New("empty segment")
		}
		if !isAlphanumeric(part) {
			return nil, fmt.Errorf("illegal characters in segment %q", part)
		}

		if n, err := strconv.Atoi(part); err == nil {
			segments = append(segments, segment{num: n, text: part, numeric: true})
			continue
		}
		// Non-numeric (or out-of-range) segments keep their text and
		// fall back to string comparison.
		segments = append(segments, segment{text: part})
	}

	return segments, nil
}

// String returns the original version string.
func (v *Version) String() string {
	return v.raw
}

// Compare compares two parsed versions component-wise.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b.
// The shorter version is padded with zero segments, so missing trailing
// segments count as zero.
func Compare(a, b *Version) int {
	n := len(a.segments)
	if len(b.segments) > n {
		n = len(b.segments)
	}

	for i := 0; i < n; i++ {
		as, bs := zeroSegment, zeroSegment
		if i < len(a.segments) {
			as = a.segments[i]
		}
		if i < len(b.segments) {
			bs = b.segments[i]
		}

		if cmp := compareSegment(as, bs); cmp != 0 {
			return cmp
		}
	}

	return 0
}

// compareSegment compares a single pair of segments: numerically when both
// sides are numeric, as strings otherwise.
func compareSegment(a, b segment) int {
	if a.numeric && b.numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.text, b.text)
}

// Evaluate derives the update status of an installed version string against
// the latest published one. Either side failing to parse yields
// StatusUnknown, never StatusUpToDate.
func Evaluate(installed, latest string) Status {
	iv, err := Parse(installed)
	if err != nil {
		return StatusUnknown
	}
	lv, err := Parse(latest)
	if err != nil {
		return StatusUnknown
	}

	if Compare(iv, lv) < 0 {
		return StatusOutdated
	}
	return StatusUpToDate
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}
