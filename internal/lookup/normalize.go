package lookup

import (
	"strings"
	"unicode"
)

// NormalizeDomain returns the canonical form of a domain used as lookup key:
//   - lower-cased
//   - surrounding whitespace removed
//   - trailing slashes removed
//
// The result is stable: normalizing it again yields the same string.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(raw)
	d = strings.TrimLeftFunc(d, unicode.IsSpace)

	return strings.TrimRightFunc(d, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
}
