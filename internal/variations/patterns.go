package variations

import (
	"fmt"
	"strings"

	"layoutberg/internal/blocks"
)

// PatternNames lists the predefined patterns available without an AI call.
func PatternNames() []string {
	return []string{"hero", "features", "cta", "pricing", "faq"}
}

// BuildPattern constructs a predefined pattern as a block tree. seedKey
// varies the placeholder content deterministically; an unknown name
// returns nil.
func BuildPattern(name, seedKey string) []blocks.Block {
	r := NewRandomizer(seedKey + ":" + name)
	switch name {
	case "hero":
		return heroPattern(r)
	case "features":
		return featuresPattern(r)
	case "cta":
		return ctaPattern(r)
	case "pricing":
		return pricingPattern(r)
	case "faq":
		return faqPattern(r)
	}
	return nil
}

// BuildPatternMarkup is BuildPattern serialized to block markup.
func BuildPatternMarkup(name, seedKey string) string {
	tree := BuildPattern(name, seedKey)
	if tree == nil {
		return ""
	}
	return blocks.Serialize(tree)
}

func heading(level int, text string) blocks.Block {
	html := fmt.Sprintf(`<h%d class="wp-block-heading">%s</h%d>`, level, text, level)
	return blocks.Block{
		Name:         "core/heading",
		Attrs:        map[string]any{"level": level},
		InnerHTML:    html,
		InnerContent: []string{html},
	}
}

func paragraph(text string) blocks.Block {
	html := "<p>" + text + "</p>"
	return blocks.Block{
		Name:         "core/paragraph",
		InnerHTML:    html,
		InnerContent: []string{html},
	}
}

func button(label string) blocks.Block {
	inner := fmt.Sprintf(`<div class="wp-block-button"><a class="wp-block-button__link wp-element-button">%s</a></div>`, label)
	btn := blocks.Block{
		Name:         "core/button",
		InnerHTML:    inner,
		InnerContent: []string{inner},
	}
	return blocks.Block{
		Name:         "core/buttons",
		InnerBlocks:  []blocks.Block{btn},
		InnerHTML:    `<div class="wp-block-buttons"></div>`,
		InnerContent: []string{`<div class="wp-block-buttons">`, "", `</div>`},
	}
}

func group(children ...blocks.Block) blocks.Block {
	content := []string{`<div class="wp-block-group">`}
	for range children {
		content = append(content, "")
	}
	content = append(content, `</div>`)
	return blocks.Block{
		Name:         "core/group",
		Attrs:        map[string]any{"layout": map[string]any{"type": "constrained"}},
		InnerBlocks:  children,
		InnerContent: content,
	}
}

func columns(cols ...blocks.Block) blocks.Block {
	content := []string{`<div class="wp-block-columns">`}
	for range cols {
		content = append(content, "")
	}
	content = append(content, `</div>`)
	return blocks.Block{
		Name:         "core/columns",
		InnerBlocks:  cols,
		InnerContent: content,
	}
}

func column(children ...blocks.Block) blocks.Block {
	content := []string{`<div class="wp-block-column">`}
	for range children {
		content = append(content, "")
	}
	content = append(content, `</div>`)
	return blocks.Block{
		Name:         "core/column",
		InnerBlocks:  children,
		InnerContent: content,
	}
}

func heroPattern(r *Randomizer) []blocks.Block {
	inner := []blocks.Block{
		heading(2, r.Headline()),
		paragraph(r.Tagline()),
		button(r.CTALabel()),
	}
	content := []string{`<div class="wp-block-cover"><div class="wp-block-cover__inner-container">`}
	for range inner {
		content = append(content, "")
	}
	content = append(content, `</div></div>`)
	cover := blocks.Block{
		Name:         "core/cover",
		Attrs:        map[string]any{"dimRatio": 50, "minHeight": 420},
		InnerBlocks:  inner,
		InnerContent: content,
	}
	return []blocks.Block{cover}
}

func featuresPattern(r *Randomizer) []blocks.Block {
	var cols []blocks.Block
	for i := 0; i < 3; i++ {
		cols = append(cols, column(
			heading(3, r.FeatureTitle()),
			paragraph(r.Tagline()),
		))
	}
	return []blocks.Block{
		heading(2, r.Headline()),
		columns(cols...),
	}
}

func ctaPattern(r *Randomizer) []blocks.Block {
	return []blocks.Block{
		group(
			heading(2, r.Headline()),
			paragraph(r.Tagline()),
			button(r.CTALabel()),
		),
	}
}

func pricingPattern(r *Randomizer) []blocks.Block {
	tiers := []string{"Starter", "Growth", "Scale"}
	var cols []blocks.Block
	for _, tier := range tiers {
		cols = append(cols, column(
			heading(3, tier),
			paragraph(r.Tagline()),
			button(r.CTALabel()),
		))
	}
	return []blocks.Block{
		heading(2, "Pricing"),
		columns(cols...),
	}
}

func faqPattern(r *Randomizer) []blocks.Block {
	questions := []string{
		"How do I get started?",
		"Can I cancel anytime?",
		"Do you offer support?",
	}
	out := []blocks.Block{heading(2, "Frequently asked questions")}
	for _, q := range questions {
		answer := paragraph(r.Tagline())
		content := []string{
			"<details class=\"wp-block-details\"><summary>" + q + "</summary>",
			"",
			"</details>",
		}
		out = append(out, blocks.Block{
			Name:         "core/details",
			Attrs:        map[string]any{"summary": q},
			InnerBlocks:  []blocks.Block{answer},
			InnerContent: content,
		})
	}
	return out
}

// Seeded variation keys cycle through a small set so repeated inserts of
// the same pattern do not all look identical.
func VariationKey(base string, index int) string {
	return base + ":" + strings.Repeat("v", index%4)
}
