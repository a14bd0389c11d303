// Package variations builds predefined block patterns and lightly
// randomized placeholder content. It is the non-AI fallback path: output is
// deterministic for a given seed key so previews are stable.
package variations

import "hash/fnv"

// Randomizer picks placeholder content from fixed pools, seeded by a key
// so the same key always yields the same picks.
type Randomizer struct {
	seed uint64
	n    uint64
}

// NewRandomizer creates a randomizer seeded from a key string.
func NewRandomizer(key string) *Randomizer {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &Randomizer{seed: h.Sum64()}
}

// next is a splitmix64 step over the seed; cheap and reproducible.
func (r *Randomizer) next() uint64 {
	r.n++
	z := r.seed + r.n*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Pick returns one element of choices, deterministically for this
// randomizer's key and call sequence.
func (r *Randomizer) Pick(choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[r.next()%uint64(len(choices))]
}

// Content pools for placeholder text.
var (
	headlines = []string{
		"Build something great",
		"Designed for growth",
		"Your story starts here",
		"Make an impression",
		"Crafted with care",
	}
	taglines = []string{
		"Everything you need to launch, in one place.",
		"Simple tools for ambitious teams.",
		"From idea to published page in minutes.",
		"Trusted by creators around the world.",
	}
	ctaLabels = []string{
		"Get started", "Learn more", "Try it free", "Contact us",
	}
	featureTitles = []string{
		"Fast by default", "Fully customizable", "Built to scale",
		"No lock-in", "Secure foundations", "Always up to date",
	}
)

// Headline returns a seeded placeholder headline.
func (r *Randomizer) Headline() string { return r.Pick(headlines) }

// Tagline returns a seeded placeholder tagline.
func (r *Randomizer) Tagline() string { return r.Pick(taglines) }

// CTALabel returns a seeded call-to-action label.
func (r *Randomizer) CTALabel() string { return r.Pick(ctaLabels) }

// FeatureTitle returns a seeded feature title.
func (r *Randomizer) FeatureTitle() string { return r.Pick(featureTitles) }
