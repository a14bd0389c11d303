// Package prompt turns a raw user prompt into a compact system prompt that
// constrains LLM output to valid Gutenberg markup. Everything here is a pure
// function over static tables so the heuristics are testable without I/O.
package prompt

import "strings"

// Complexity scales system-prompt verbosity.
type Complexity string

const (
	Simple   Complexity = "simple"
	Moderate Complexity = "moderate"
	Complex  Complexity = "complex"
)

// Analysis is the result of scanning a prompt: which block types the layout
// needs and how elaborate the prompt is. Identical prompt text always yields
// an identical Analysis.
type Analysis struct {
	Blocks     []string
	Complexity Complexity
}

// blockKeywords maps a block tag to the substrings that signal it. Order is
// fixed so detection output is deterministic.
var blockKeywords = []struct {
	tag      string
	keywords []string
}{
	{"cover", []string{"hero", "banner", "cover", "background", "jumbotron"}},
	{"heading", []string{"heading", "title", "headline", "section"}},
	{"paragraph", []string{"paragraph", "description", "about", "intro", "text"}},
	{"buttons", []string{"button", "cta", "call to action", "sign up", "signup", "subscribe"}},
	{"columns", []string{"column", "grid", "side by side", "two-col", "three-col"}},
	{"list", []string{"list", "features", "benefits", "steps", "bullet"}},
	{"image", []string{"image", "photo", "picture", "illustration"}},
	{"gallery", []string{"gallery", "portfolio", "showcase"}},
	{"quote", []string{"quote", "testimonial", "review"}},
	{"pricing", []string{"pricing", "price plan", "plans", "tier"}},
	{"faq", []string{"faq", "frequently asked", "questions"}},
	{"details", []string{"accordion", "collapsible", "expandable"}},
	{"video", []string{"video", "youtube", "vimeo"}},
	{"table", []string{"table", "comparison chart"}},
	{"separator", []string{"separator", "divider"}},
	{"spacer", []string{"spacer", "whitespace"}},
	{"group", []string{"container", "wrapper", "grouped"}},
	{"media-text", []string{"media text", "image beside", "split layout"}},
}

// defaultBlocks is used when no keyword matches at all.
var defaultBlocks = []string{"heading", "paragraph", "buttons"}

// Analyze scans a prompt for block-type keywords and classifies its
// complexity. Detection is substring-based over the lower-cased prompt;
// dependency rules then force-add blocks that detected ones require.
func Analyze(userPrompt string) Analysis {
	lower := strings.ToLower(userPrompt)

	var blocks []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			blocks = append(blocks, tag)
		}
	}

	for _, entry := range blockKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				add(entry.tag)
				break
			}
		}
	}

	// Dependency rules: some blocks only make sense with companions.
	if seen["pricing"] {
		add("columns")
		add("list")
		add("buttons")
	}
	if seen["faq"] {
		add("heading")
		add("details")
	}
	if seen["quote"] && (strings.Contains(lower, "section") || strings.Contains(lower, "multiple")) {
		add("columns")
	}
	if seen["gallery"] {
		add("image")
	}
	if seen["video"] && strings.Contains(lower, "section") {
		add("heading")
	}

	if len(blocks) == 0 {
		blocks = append([]string(nil), defaultBlocks...)
	}

	// The cascade is order-sensitive: the complex check runs first, then
	// moderate, else simple.
	complexity := Simple
	switch {
	case len(blocks) > 5 || strings.Contains(lower, "complex") || strings.Contains(lower, "full"):
		complexity = Complex
	case len(blocks) > 2 || strings.Contains(lower, "with"):
		complexity = Moderate
	}

	return Analysis{Blocks: blocks, Complexity: complexity}
}
