// Package sanitize validates and cleans raw prompt text arriving at the
// HTTP boundary. The blocklists are simple keyword filters that keep junk
// and obvious prompt-injection phrasing out of the pipeline; they are not a
// security boundary. Bounds here (10–2000 chars) are intentionally wider
// than the generation pipeline's own validator.
package sanitize

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	minLen = 10
	maxLen = 2000
)

var (
	ErrTooShort   = errors.New("prompt too short")
	ErrTooLong    = errors.New("prompt too long")
	ErrBlocked    = errors.New("prompt contains blocked content")
	ErrRepetitive = errors.New("prompt is excessively repetitive")
)

// blockedPatterns match markup injection and the common prompt-injection
// phrasings. Checked against the lower-cased prompt.
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<script\b`),
	regexp.MustCompile(`javascript:`),
	regexp.MustCompile(`on(?:error|load|click)\s*=`),
	regexp.MustCompile(`<iframe\b`),
	regexp.MustCompile(`ignore\s+(?:all\s+)?previous\s+instructions`),
	regexp.MustCompile(`disregard\s+(?:the\s+)?(?:above|previous)`),
	regexp.MustCompile(`reveal\s+(?:your\s+)?system\s+prompt`),
}

// maxCharRun is the longest run of one repeated character tolerated.
const maxCharRun = 20

// Clean normalizes and validates a raw prompt. It strips control
// characters, collapses whitespace, then enforces length bounds and the
// blocklist. The cleaned prompt is returned on success.
func Clean(raw string) (string, error) {
	cleaned := stripControl(raw)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if len(cleaned) < minLen {
		return "", ErrTooShort
	}
	if len(cleaned) > maxLen {
		return "", ErrTooLong
	}

	lower := strings.ToLower(cleaned)
	for _, pat := range blockedPatterns {
		if pat.MatchString(lower) {
			return "", ErrBlocked
		}
	}

	if hasLongRun(cleaned) || dominantWord(lower) {
		return "", ErrRepetitive
	}

	return cleaned, nil
}

// stripControl removes non-printable characters, keeping spaces and tabs
// for the whitespace collapse that follows.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// hasLongRun reports whether any single character repeats maxCharRun or
// more times in a row.
func hasLongRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= maxCharRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// dominantWord reports whether one word makes up more than half of a
// prompt of ten or more words. Catches "buy buy buy buy ..." spam.
func dominantWord(lower string) bool {
	words := strings.Fields(lower)
	if len(words) < 10 {
		return false
	}
	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}
	for _, n := range counts {
		if n*2 > len(words) {
			return true
		}
	}
	return false
}
