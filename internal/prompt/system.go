package prompt

import "strings"

// Options carries the generation options the system prompt cares about.
type Options struct {
	Style    string
	Industry string
	Audience string
}

// coreRules is always emitted: output format, visibility and image rules.
const coreRules = `You generate WordPress Gutenberg block markup. Follow these rules exactly:
- Output ONLY block markup using the comment syntax: <!-- wp:blockname {"attr":"value"} -->...<!-- /wp:blockname -->
- Do NOT wrap the output in markdown code fences or add any explanation.
- Every block must be visible: when text sits on a colored or image background, set a contrasting text color.
- Image URLs must be absolute (https://...); never use relative paths or placeholders like "image.jpg".
- Nest blocks correctly: inner blocks belong between their parent's opening and closing comments.`

// blockSpecs holds the per-block instruction snippet emitted only when the
// analysis detected that block, keeping the system prompt short.
var blockSpecs = map[string]string{
	"heading":    `core/heading: {"level":2-4,"textAlign":"left|center"}. Content goes in an <h2>-<h4> tag matching the level.`,
	"paragraph":  `core/paragraph: {"align":"left|center","fontSize":"small|medium|large"}. Content goes in a <p> tag.`,
	"cover":      `core/cover: {"url":"https://...","dimRatio":0-100,"overlayColor":"...","minHeight":400}. Put an inner core/heading and core/paragraph inside; use white text over dark overlays.`,
	"buttons":    `core/buttons: wrapper for core/button children. core/button: {"backgroundColor":"...","textColor":"...","width":25|50|75|100}. Link markup: <a class="wp-block-button__link">Label</a>.`,
	"columns":    `core/columns: wrapper for core/column children, each with {"width":"33.33%"} style attrs. Keep column count between 2 and 4.`,
	"list":       `core/list: {"ordered":true|false}. Items are <li> tags inside a <ul> or <ol>.`,
	"image":      `core/image: {"url":"https://...","alt":"...","sizeSlug":"large"}. Always set alt text.`,
	"gallery":    `core/gallery: {"columns":2-4,"linkTo":"none"} with core/image children.`,
	"quote":      `core/quote: {"citation":"..."}. Quote text in <p>, citation in <cite>.`,
	"pricing":    `Pricing sections: core/columns with one core/column per tier, each holding core/heading (tier name), core/list (features) and core/buttons (signup).`,
	"faq":        `FAQ sections: a core/heading followed by core/details blocks, one per question, with {"summary":"the question"} and the answer as an inner core/paragraph.`,
	"details":    `core/details: {"summary":"..."} with inner blocks as the collapsible body.`,
	"video":      `core/video: {"src":"https://..."} or core/embed for YouTube/Vimeo URLs.`,
	"table":      `core/table: {"hasFixedLayout":true}. Markup is a <figure> wrapping a <table>.`,
	"separator":  `core/separator: {"className":"is-style-wide|is-style-dots"}.`,
	"spacer":     `core/spacer: {"height":"40px"}.`,
	"group":      `core/group: {"backgroundColor":"...","layout":{"type":"constrained"}}. Use to band sections with alternating backgrounds.`,
	"media-text": `core/media-text: {"mediaPosition":"left|right","mediaUrl":"https://...","mediaType":"image"} with text blocks as children.`,
}

// blockExamples holds one worked markup example per block tag.
var blockExamples = map[string]string{
	"cover": `<!-- wp:cover {"url":"https://example.com/bg.jpg","dimRatio":60,"minHeight":480} -->
<div class="wp-block-cover"><span aria-hidden="true" class="wp-block-cover__background has-background-dim-60 has-background-dim"></span><img class="wp-block-cover__image-background" alt="" src="https://example.com/bg.jpg"/><div class="wp-block-cover__inner-container"><!-- wp:heading {"textAlign":"center","textColor":"white"} -->
<h2 class="wp-block-heading has-text-align-center has-white-color has-text-color">Build faster</h2>
<!-- /wp:heading --></div></div>
<!-- /wp:cover -->`,
	"heading": `<!-- wp:heading {"level":2} -->
<h2 class="wp-block-heading">Why choose us</h2>
<!-- /wp:heading -->`,
	"buttons": `<!-- wp:buttons {"layout":{"type":"flex","justifyContent":"center"}} -->
<div class="wp-block-buttons"><!-- wp:button {"backgroundColor":"vivid-cyan-blue"} -->
<div class="wp-block-button"><a class="wp-block-button__link has-vivid-cyan-blue-background-color has-background wp-element-button">Get started</a></div>
<!-- /wp:button --></div>
<!-- /wp:buttons -->`,
	"columns": `<!-- wp:columns -->
<div class="wp-block-columns"><!-- wp:column -->
<div class="wp-block-column"><!-- wp:paragraph -->
<p>First column.</p>
<!-- /wp:paragraph --></div>
<!-- /wp:column --><!-- wp:column -->
<div class="wp-block-column"><!-- wp:paragraph -->
<p>Second column.</p>
<!-- /wp:paragraph --></div>
<!-- /wp:column --></div>
<!-- /wp:columns -->`,
	"list": `<!-- wp:list -->
<ul class="wp-block-list"><!-- wp:list-item -->
<li>Fast setup</li>
<!-- /wp:list-item --><!-- wp:list-item -->
<li>No lock-in</li>
<!-- /wp:list-item --></ul>
<!-- /wp:list -->`,
	"group": `<!-- wp:group {"backgroundColor":"pale-cyan-blue","layout":{"type":"constrained"}} -->
<div class="wp-block-group has-pale-cyan-blue-background-color has-background"><!-- wp:paragraph -->
<p>Grouped content.</p>
<!-- /wp:paragraph --></div>
<!-- /wp:group -->`,
	"details": `<!-- wp:details {"summary":"How does billing work?"} -->
<details class="wp-block-details"><summary>How does billing work?</summary><!-- wp:paragraph -->
<p>You are billed monthly.</p>
<!-- /wp:paragraph --></details>
<!-- /wp:details -->`,
}

// examplePriority fixes which examples are shown first when present in the
// analysis. Blocks outside this list only appear via the fallback.
var examplePriority = []string{"cover", "heading", "buttons", "columns", "list", "group", "details"}

// BuildSystemPrompt assembles the system prompt from the analysis: core
// rules, the specs of detected blocks, optional style instructions, a
// bounded number of examples and (for complex prompts) a context line.
// Components are joined with blank lines; empty components are dropped.
func BuildSystemPrompt(a Analysis, opts Options) string {
	var parts []string
	parts = append(parts, coreRules)

	if specs := specsFor(a.Blocks); specs != "" {
		parts = append(parts, specs)
	}

	if a.Complexity != Simple && opts.Style != "" {
		parts = append(parts, "Style: design the layout in a "+opts.Style+
			" style. Keep colors, spacing and typography consistent with it.")
	}

	if examples := examplesFor(a); examples != "" {
		parts = append(parts, examples)
	}

	if a.Complexity == Complex {
		if line := contextLine(opts); line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, "\n\n")
}

// specsFor concatenates the spec snippets of the analyzed blocks.
func specsFor(blocks []string) string {
	var lines []string
	for _, tag := range blocks {
		if spec, ok := blockSpecs[tag]; ok {
			lines = append(lines, "- "+spec)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "Allowed blocks for this layout:\n" + strings.Join(lines, "\n")
}

// examplesFor picks up to N examples: 2 for simple prompts, 3 otherwise.
// Priority blocks come first; if none of them were analyzed, the first
// three analyzed blocks are tried instead.
func examplesFor(a Analysis) string {
	limit := 3
	if a.Complexity == Simple {
		limit = 2
	}

	analyzed := make(map[string]bool, len(a.Blocks))
	for _, tag := range a.Blocks {
		analyzed[tag] = true
	}

	var picked []string
	for _, tag := range examplePriority {
		if len(picked) == limit {
			break
		}
		if analyzed[tag] {
			if ex, ok := blockExamples[tag]; ok {
				picked = append(picked, ex)
			}
		}
	}

	if len(picked) == 0 {
		for i, tag := range a.Blocks {
			if i == 3 || len(picked) == limit {
				break
			}
			if ex, ok := blockExamples[tag]; ok {
				picked = append(picked, ex)
			}
		}
	}

	if len(picked) == 0 {
		return ""
	}
	return "Example markup:\n\n" + strings.Join(picked, "\n\n")
}

// contextLine compacts industry/audience options into one line.
func contextLine(opts Options) string {
	var bits []string
	if opts.Industry != "" {
		bits = append(bits, "industry: "+opts.Industry)
	}
	if opts.Audience != "" {
		bits = append(bits, "audience: "+opts.Audience)
	}
	if len(bits) == 0 {
		return ""
	}
	return "Context: " + strings.Join(bits, "; ")
}
