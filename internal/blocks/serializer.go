package blocks

import (
	"encoding/json"
	"strings"
)

// Serialize reconstructs comment-delimited block markup from a tree.
// The core namespace is elided on output ("core/paragraph" serializes as
// "wp:paragraph"), matching the canonical format.
func Serialize(list []Block) string {
	var sb strings.Builder
	for i, b := range list {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		serializeBlock(&sb, b)
	}
	return sb.String()
}

func serializeBlock(sb *strings.Builder, b Block) {
	if b.IsFreeform() {
		sb.WriteString(b.InnerHTML)
		return
	}

	name := serializedName(b.Name)

	sb.WriteString("<!-- wp:")
	sb.WriteString(name)
	if len(b.Attrs) > 0 {
		if attrs, err := json.Marshal(b.Attrs); err == nil {
			sb.WriteString(" ")
			sb.Write(attrs)
		}
	}

	// No content at all serializes as a void block.
	if len(b.InnerContent) == 0 && len(b.InnerBlocks) == 0 {
		sb.WriteString(" /-->")
		return
	}
	sb.WriteString(" -->")

	writeInner(sb, b, func(dst *strings.Builder, child Block) {
		serializeBlock(dst, child)
	})

	sb.WriteString("<!-- /wp:")
	sb.WriteString(name)
	sb.WriteString(" -->")
}

// RenderHTML renders the tree to plain HTML: the inner markup with every
// block comment stripped. This is what editors preview and what the html
// response field carries.
func RenderHTML(list []Block) string {
	var sb strings.Builder
	for _, b := range list {
		renderBlock(&sb, b)
	}
	return sb.String()
}

func renderBlock(sb *strings.Builder, b Block) {
	if b.IsFreeform() {
		sb.WriteString(b.InnerHTML)
		return
	}
	writeInner(sb, b, func(dst *strings.Builder, child Block) {
		renderBlock(dst, child)
	})
}

// writeInner walks InnerContent, emitting HTML chunks directly and handing
// each "" placeholder's inner block to emit.
func writeInner(sb *strings.Builder, b Block, emit func(*strings.Builder, Block)) {
	idx := 0
	for _, chunk := range b.InnerContent {
		if chunk != "" {
			sb.WriteString(chunk)
			continue
		}
		if idx < len(b.InnerBlocks) {
			emit(sb, b.InnerBlocks[idx])
			idx++
		}
	}
	// Tolerate trees built by hand without InnerContent bookkeeping.
	if len(b.InnerContent) == 0 {
		sb.WriteString(b.InnerHTML)
		for _, child := range b.InnerBlocks {
			emit(sb, child)
		}
	}
}

// serializedName elides the core namespace.
func serializedName(name string) string {
	return strings.TrimPrefix(name, "core/")
}
