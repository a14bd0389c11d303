package prompt

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"math"
	"strings"
)

// Validation bounds for the client pipeline. Deliberately narrower than the
// sanitizer's 2000-char bound: the two validators guard different call
// paths and are kept independent.
const (
	minPromptLen = 10
	maxPromptLen = 1000
)

var (
	// ErrTooShort means the prompt is under the 10-char minimum.
	ErrTooShort = errors.New("prompt too short")

	// ErrTooLong means the prompt is over the 1000-char maximum.
	ErrTooLong = errors.New("prompt too long")
)

// Validate checks the prompt length bounds used by the generation pipeline.
func Validate(userPrompt string) error {
	if len(userPrompt) < minPromptLen {
		return ErrTooShort
	}
	if len(userPrompt) > maxPromptLen {
		return ErrTooLong
	}
	return nil
}

// Enhance annotates the user prompt to reduce LLM output repetition across
// similar prompts. Non-simple prompts get a content-hash variation tag;
// complex prompts additionally get a structure hint from the first three
// detected blocks. Simple prompts pass through untouched.
func Enhance(userPrompt string, a Analysis) string {
	if a.Complexity == Simple {
		return userPrompt
	}

	sum := md5.Sum([]byte(userPrompt))
	tag := hex.EncodeToString(sum[:])[:4]
	out := userPrompt + "\n\n(variation " + tag + ")"

	if a.Complexity == Complex && len(a.Blocks) > 0 {
		n := len(a.Blocks)
		if n > 3 {
			n = 3
		}
		out += "\nStructure: " + strings.Join(a.Blocks[:n], " -> ")
	}
	return out
}

// EstimateTokens approximates a prompt's token count without a real
// tokenizer: floor(words*1.3 + chars*0.04). Cost estimation depends on this
// exact formula, so it must not be "improved".
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	chars := len(text)
	return int(math.Floor(float64(words)*1.3 + float64(chars)*0.04))
}
