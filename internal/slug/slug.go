// Package slug generates URL-safe identifiers for saved templates.
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Make converts a name into a lowercase, hyphen-separated slug.
func Make(name string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			sb.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(sb.String(), "-")
}

// MakeUnique appends a numeric suffix until exists reports the slug free.
// Gives up after 100 tries and returns the last candidate.
func MakeUnique(name string, exists func(string) bool) string {
	base := Make(name)
	if base == "" {
		base = "template"
	}
	candidate := base
	for i := 2; i <= 100 && exists(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}
