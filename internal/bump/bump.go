package bump

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// versionLineRegex matches a manifest line that declares a package
	// version, e.g. `  version='1.2.3',`. It captures:
	//   1. Leading whitespace, the version= key, and the opening quote
	//   2. Every dot-terminated numeric group before the final one (may be empty)
	//   3. The final numeric group
	//   4. The closing quote and the optional trailing comma
	// Matching is case-sensitive and anchored to the whole line; any
	// other content before or after prevents a match.
	versionLineRegex = regexp.MustCompile(
		`^(\s*version=['"])` + // prefix up to the opening quote
			`((?:\d+\.)*)` + // leading numeric groups
			`(\d+)` + // final numeric group
			`(['"],?)$`, // closing quote, optional comma
	)
)

// Result summarizes one rewrite of manifest content.
type Result struct {
	// Matched is the number of version lines that were incremented.
	Matched int
	// OldVersion and NewVersion report the first incremented line's
	// version before and after the rewrite. Empty when Matched is zero.
	OldVersion string
	NewVersion string
}

// Changed reports whether the rewrite altered any line.
func (r Result) Changed() bool {
	return r.Matched > 0
}

// Rewrite increments every version line in src and returns the new
// content. Lines are delimited by '\n'; a line's terminator, or the
// absence of one on the final line, is reproduced exactly. Lines that
// do not match the version pattern pass through byte for byte, which
// includes lines ending in '\r' before the newline, since the carriage
// return sits between the version and the end of the line.
//
// Rewrite is not idempotent: applying it twice increments twice.
func Rewrite(src []byte) ([]byte, Result) {
	var res Result
	var out bytes.Buffer
	out.Grow(len(src) + 8)

	for offset := 0; offset < len(src); {
		lineEnd := len(src)
		terminated := false
		if i := bytes.IndexByte(src[offset:], '\n'); i >= 0 {
			lineEnd = offset + i
			terminated = true
		}

		line := string(src[offset:lineEnd])
		bumped, oldV, newV, ok := incrementLine(line)
		out.WriteString(bumped)
		if ok {
			res.Matched++
			if res.Matched == 1 {
				res.OldVersion = oldV
				res.NewVersion = newV
			}
		}

		if terminated {
			out.WriteByte('\n')
			lineEnd++
		}
		offset = lineEnd
	}

	return out.Bytes(), res
}

// incrementLine applies the version increment to a single line. It
// returns the rewritten line, the old and new version strings, and
// whether the line matched. Non-matching lines come back unchanged.
func incrementLine(line string) (out, oldVersion, newVersion string, ok bool) {
	m := versionLineRegex.FindStringSubmatch(line)
	if m == nil {
		return line, "", "", false
	}

	last, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil || last == math.MaxUint64 {
		// The final group does not fit a uint64; leave the line alone.
		return line, "", "", false
	}
	next := strconv.FormatUint(last+1, 10)

	oldVersion = m[2] + m[3]
	newVersion = m[2] + next
	return m[1] + m[2] + next + m[4], oldVersion, newVersion, true
}

// ExtractVersion returns the version declared by the first version
// line in src, or false when no line matches.
func ExtractVersion(src []byte) (string, bool) {
	for _, line := range strings.Split(string(src), "\n") {
		if m := versionLineRegex.FindStringSubmatch(line); m != nil {
			return m[2] + m[3], true
		}
	}
	return "", false
}

// SetVersion replaces the version on every version line in src with
// the given version, preserving all other bytes the same way Rewrite
// does. It reports whether any line matched.
func SetVersion(src []byte, version string) ([]byte, bool) {
	var out bytes.Buffer
	out.Grow(len(src) + 8)
	changed := false

	for offset := 0; offset < len(src); {
		lineEnd := len(src)
		terminated := false
		if i := bytes.IndexByte(src[offset:], '\n'); i >= 0 {
			lineEnd = offset + i
			terminated = true
		}

		line := string(src[offset:lineEnd])
		if m := versionLineRegex.FindStringSubmatch(line); m != nil {
			out.WriteString(m[1] + version + m[4])
			changed = true
		} else {
			out.WriteString(line)
		}

		if terminated {
			out.WriteByte('\n')
			lineEnd++
		}
		offset = lineEnd
	}

	return out.Bytes(), changed
}

// NextVersion increments the final dot-separated numeric group of a
// bare version string (`1.2.3` -> `1.2.4`, `9` -> `10`). Used for
// structured manifest formats where the version is a field value
// rather than a source line. Returns false when s is not a
// dot-separated sequence of decimal numbers.
func NextVersion(s string) (string, bool) {
	m := bareVersionRegex.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	last, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil || last == math.MaxUint64 {
		return "", false
	}
	return m[1] + strconv.FormatUint(last+1, 10), true
}

// bareVersionRegex matches a bare dotted numeric version with the same
// group shape as versionLineRegex, minus the line anchoring.
var bareVersionRegex = regexp.MustCompile(`^((?:\d+\.)*)(\d+)$`)
