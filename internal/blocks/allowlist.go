package blocks

// defaultAllowed is the fixed set of block names permitted in AI-generated
// output. This is a hard content boundary: anything else is dropped with
// all of its inner content.
var defaultAllowed = []string{
	"core/archives",
	"core/audio",
	"core/avatar",
	"core/button",
	"core/buttons",
	"core/calendar",
	"core/categories",
	"core/code",
	"core/column",
	"core/columns",
	"core/comments",
	"core/cover",
	"core/details",
	"core/embed",
	"core/file",
	"core/footnotes",
	"core/freeform",
	"core/gallery",
	"core/group",
	"core/heading",
	"core/html",
	"core/image",
	"core/latest-comments",
	"core/latest-posts",
	"core/list",
	"core/list-item",
	"core/loginout",
	"core/media-text",
	"core/missing",
	"core/more",
	"core/navigation",
	"core/navigation-link",
	"core/nextpage",
	"core/page-list",
	"core/paragraph",
	"core/pattern",
	"core/post-author",
	"core/post-content",
	"core/post-date",
	"core/post-excerpt",
	"core/post-featured-image",
	"core/post-template",
	"core/post-terms",
	"core/post-title",
	"core/preformatted",
	"core/pullquote",
	"core/query",
	"core/query-no-results",
	"core/query-pagination",
	"core/query-pagination-next",
	"core/query-pagination-numbers",
	"core/query-pagination-previous",
	"core/query-title",
	"core/quote",
	"core/read-more",
	"core/rss",
	"core/search",
	"core/separator",
	"core/shortcode",
	"core/site-logo",
	"core/site-tagline",
	"core/site-title",
	"core/social-link",
	"core/social-links",
	"core/spacer",
	"core/table",
	"core/table-of-contents",
	"core/tag-cloud",
	"core/term-description",
	"core/text-columns",
	"core/verse",
	"core/video",
}

// AllowList is the set of block names allowed to survive filtering.
type AllowList struct {
	names map[string]bool
}

// DefaultAllowList returns the built-in core block allow-list.
func DefaultAllowList() *AllowList {
	names := make(map[string]bool, len(defaultAllowed))
	for _, n := range defaultAllowed {
		names[n] = true
	}
	return &AllowList{names: names}
}

// Extend adds block names to the list. This is the extension point for
// site-specific custom blocks; per-request narrowing is deliberately not
// supported.
func (a *AllowList) Extend(names ...string) {
	for _, n := range names {
		a.names[n] = true
	}
}

// Allows reports whether a block name is permitted.
func (a *AllowList) Allows(name string) bool {
	return a.names[name]
}

// Filter recursively removes blocks not on the allow-list. A dropped block
// takes all of its inner content with it. Freeform (unnamed) blocks are
// dropped at every level.
func (a *AllowList) Filter(list []Block) []Block {
	var kept []Block
	for _, b := range list {
		if b.IsFreeform() || !a.Allows(b.Name) {
			continue
		}
		kept = append(kept, a.filterInner(b))
	}
	return kept
}

// filterInner filters a block's children, dropping each removed child's
// InnerContent placeholder so serialization positions stay aligned.
func (a *AllowList) filterInner(b Block) Block {
	if len(b.InnerBlocks) == 0 {
		return b
	}
	var inner []Block
	var content []string
	idx := 0
	for _, chunk := range b.InnerContent {
		if chunk != "" {
			content = append(content, chunk)
			continue
		}
		if idx >= len(b.InnerBlocks) {
			continue
		}
		child := b.InnerBlocks[idx]
		idx++
		if child.IsFreeform() || !a.Allows(child.Name) {
			continue
		}
		inner = append(inner, a.filterInner(child))
		content = append(content, "")
	}
	b.InnerBlocks = inner
	b.InnerContent = content
	return b
}
