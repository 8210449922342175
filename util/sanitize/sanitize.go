// Package sanitize checks names taken from the schema export before they are
// used as file names.
package sanitize

import (
	"regexp"
	"strings"
)

// controlRegex matches control characters and NUL
var controlRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// IsFileName reports whether s can be used unchanged as a single path
// component: not empty, not "." or "..", no path separators and no control
// characters.
func IsFileName(s string) bool {
	switch s {
	case "", ".", "..":
		return false
	}
	if strings.ContainsAny(s, `/\`) {
		return false
	}
	return !controlRegex.MatchString(s)
}
