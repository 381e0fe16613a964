package updater

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// VersionFromTag strips a single leading non-numeric character from a
// release tag ("v1.2.0" → "1.2.0").
func VersionFromTag(tag string) string {
	r, size := utf8.DecodeRuneInString(tag)
	if size > 0 && !unicode.IsDigit(r) {
		return tag[size:]
	}
	return tag
}

// ParseVersion splits v on "." and parses the leading digits of each
// component. Components with no leading digits are dropped, so
// "1.2.3-rc1" parses as [1 2 3] and "1.x.3" as [1 3].
func ParseVersion(v string) []uint64 {
	var parts []uint64
	for _, comp := range strings.Split(v, ".") {
		end := 0
		for end < len(comp) && comp[end] >= '0' && comp[end] <= '9' {
			end++
		}
		if end == 0 {
			continue
		}
		n, err := strconv.ParseUint(comp[:end], 10, 64)
		if err != nil {
			continue
		}
		parts = append(parts, n)
	}
	return parts
}

// IsNewer reports whether latest is strictly greater than current, comparing
// the parsed components lexicographically. A version that is a prefix of
// another is the smaller one ("1.2" < "1.2.0").
func IsNewer(latest, current string) bool {
	return slices.Compare(ParseVersion(latest), ParseVersion(current)) > 0
}
