// Package blocks parses, filters and serializes Gutenberg block markup:
// the comment-delimited format <!-- wp:ns/name {json} -->...<!-- /wp:ns/name -->.
package blocks

// Block is one node of a parsed block tree. A Block with an empty Name is
// freeform content between blocks (the "null blockName" case) and is
// dropped before validation. InnerContent interleaves HTML chunks with ""
// placeholders marking where each inner block sits, so serialization can
// reconstruct the original nesting.
type Block struct {
	Name         string         `json:"blockName"`
	Attrs        map[string]any `json:"attrs,omitempty"`
	InnerBlocks  []Block        `json:"innerBlocks,omitempty"`
	InnerHTML    string         `json:"innerHTML"`
	InnerContent []string       `json:"innerContent,omitempty"`
}

// IsFreeform reports whether the block is unnamed inter-block content.
func (b *Block) IsFreeform() bool {
	return b.Name == ""
}
